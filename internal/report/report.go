// Package report renders an analysis into downloadable files: a Markdown document and, best effort,
// a PDF copy of it.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/custompromauto"
	"github.com/hedisam/chaininvestigator/internal/facts"
)

const (
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
	ContentTypePDF      = "application/pdf"

	namePrefix = "Report"
	shortIDLen = 8
)

var rendered = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
	Namespace: custompromauto.Namespace,
	Name:      "reports_rendered_total",
	Help:      "Number of report files written, by format and outcome",
}, []string{"format", "outcome"})

// Artifact is one file written by Render.
type Artifact struct {
	Name        string `json:"name"`
	Path        string `json:"-"`
	ContentType string `json:"contentType"`
}

type config struct {
	pdf   bool
	now   func() time.Time
	newID func() string
}

type Option func(*config)

// WithPDF enables or disables the PDF copy. Enabled by default.
func WithPDF(enabled bool) Option {
	return func(c *config) {
		c.pdf = enabled
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator replaces the random id used to make file names unique.
func WithIDGenerator(newID func() string) Option {
	return func(c *config) {
		if newID != nil {
			c.newID = newID
		}
	}
}

type Renderer struct {
	logger *logrus.Logger
	outDir string
	pdf    bool
	now    func() time.Time
	newID  func() string
}

func NewRenderer(logger *logrus.Logger, outDir string, opts ...Option) *Renderer {
	cfg := &config{
		pdf:   true,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	return &Renderer{
		logger: logger,
		outDir: outDir,
		pdf:    cfg.pdf,
		now:    cfg.now,
		newID:  cfg.newID,
	}
}

// OutDir returns the directory every artifact is written to.
func (r *Renderer) OutDir() string {
	return r.outDir
}

// Render writes the report files for a and returns them, Markdown first. A failure to write the Markdown
// document is returned as an error; a PDF failure is logged and the PDF is left out.
func (r *Renderer) Render(ctx context.Context, a *facts.Analysis, aiText string) ([]Artifact, error) {
	if a == nil || a.Record == nil {
		return nil, fmt.Errorf("nothing to render")
	}

	err := os.MkdirAll(r.outDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	doc := build(a, aiText, r.now())
	base := BaseName(a.Record.Identifier, r.newID())
	logger := r.logger.WithContext(ctx).WithField("report", base)

	md := Artifact{
		Name:        base + ".md",
		Path:        filepath.Join(r.outDir, base+".md"),
		ContentType: ContentTypeMarkdown,
	}
	err = os.WriteFile(md.Path, doc.markdown(), 0o644)
	if err != nil {
		rendered.WithLabelValues("markdown", "error").Inc()
		return nil, fmt.Errorf("write markdown report: %w", err)
	}
	rendered.WithLabelValues("markdown", "ok").Inc()
	artifacts := []Artifact{md}

	if r.pdf {
		pdf := Artifact{
			Name:        base + ".pdf",
			Path:        filepath.Join(r.outDir, base+".pdf"),
			ContentType: ContentTypePDF,
		}
		err = doc.writePDF(pdf.Path)
		if err != nil {
			rendered.WithLabelValues("pdf", "error").Inc()
			logger.WithError(err).Warn("Could not render the PDF copy, skipping it")
		} else {
			rendered.WithLabelValues("pdf", "ok").Inc()
			artifacts = append(artifacts, pdf)
		}
	}

	logger.WithField("files", len(artifacts)).Debug("Report rendered")
	return artifacts, nil
}

// BaseName returns the file name stem Report_<first five characters>_<short id>. Characters outside
// [0-9A-Za-z] are replaced so the name is always a single path element.
func BaseName(identifier, id string) string {
	short := []rune(strings.TrimSpace(identifier))
	short = short[:min(len(short), 5)]
	if len(short) == 0 {
		short = []rune("XXXXX")
	}

	prefix := strings.Map(safeRune, string(short))
	id = strings.Map(safeRune, strings.ReplaceAll(id, "-", ""))
	id = id[:min(len(id), shortIDLen)]
	return fmt.Sprintf("%s_%s_%s", namePrefix, prefix, id)
}

func safeRune(r rune) rune {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return r
	default:
		return 'x'
	}
}
