// Package investigation runs one request end to end: analyze the identifier, score it, ask for the AI
// reading, render the report and index the written files for download.
package investigation

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/facts"
	"github.com/hedisam/chaininvestigator/internal/report"
	"github.com/hedisam/chaininvestigator/internal/risk"
	"github.com/hedisam/chaininvestigator/internal/store"
)

//go:generate moq -out mocks/analyzer.go -pkg mocks -skip-ensure . Analyzer
//go:generate moq -out mocks/scorer.go -pkg mocks -skip-ensure . Scorer
//go:generate moq -out mocks/enricher.go -pkg mocks -skip-ensure . Enricher
//go:generate moq -out mocks/renderer.go -pkg mocks -skip-ensure . Renderer
//go:generate moq -out mocks/artifact_store.go -pkg mocks -skip-ensure . ArtifactStore

type Analyzer interface {
	Analyze(ctx context.Context, identifier string, kind chain.Kind, requested chain.Chain) *facts.Analysis
}

type Scorer interface {
	Score(ctx context.Context, rec *facts.Record, transfers []facts.Transfer) risk.Assessment
}

type Enricher interface {
	Enrich(ctx context.Context, rec *facts.Record, events []facts.Event, transfers []facts.Transfer) string
}

type Renderer interface {
	Render(ctx context.Context, a *facts.Analysis, aiText string) ([]report.Artifact, error)
}

type ArtifactStore interface {
	Put(ctx context.Context, artifact *store.Artifact) error
}

type Request struct {
	Identifier string
	Kind       chain.Kind
	Chain      chain.Chain
}

type Result struct {
	Analysis *facts.Analysis
	AIText   string
	Files    []report.Artifact
}

type Service struct {
	logger    *logrus.Logger
	analyzer  Analyzer
	scorer    Scorer
	enricher  Enricher
	renderer  Renderer
	artifacts ArtifactStore
	now       func() time.Time
}

func NewService(
	logger *logrus.Logger,
	analyzer Analyzer,
	scorer Scorer,
	enricher Enricher,
	renderer Renderer,
	artifacts ArtifactStore,
) *Service {
	return &Service{
		logger:    logger,
		analyzer:  analyzer,
		scorer:    scorer,
		enricher:  enricher,
		renderer:  renderer,
		artifacts: artifacts,
		now:       time.Now,
	}
}

// Investigate never fails on missing data: an invalid identifier or unreachable explorers still yield a
// rendered report. It only returns an error when the report files could not be written or indexed.
func (s *Service) Investigate(ctx context.Context, req Request) (*Result, error) {
	logger := s.logger.WithContext(ctx).WithField("identifier", req.Identifier)

	an := s.analyzer.Analyze(ctx, req.Identifier, req.Kind, req.Chain)
	res := &Result{Analysis: an}

	if an.Record.Kind != chain.KindInvalid {
		assessment := s.scorer.Score(ctx, an.Record, an.Transfers)
		logger.WithFields(logrus.Fields{
			"score": assessment.Score,
			"band":  assessment.Band,
		}).Info("Identifier scored")

		res.AIText = s.enricher.Enrich(ctx, an.Record, an.Events, an.Transfers)
	}

	files, err := s.renderer.Render(ctx, an, res.AIText)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	created := s.now().UTC()
	for f := range slices.Values(files) {
		err = s.artifacts.Put(ctx, &store.Artifact{
			Name:        f.Name,
			Path:        f.Path,
			ContentType: f.ContentType,
			CreatedAt:   created,
		})
		if err != nil {
			return nil, fmt.Errorf("index report file %s: %w", f.Name, err)
		}
	}
	res.Files = files

	logger.WithField("files", len(files)).Debug("Investigation done")
	return res, nil
}
