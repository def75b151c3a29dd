package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/classify"
	"github.com/hedisam/chaininvestigator/internal/investigation"
	"github.com/hedisam/chaininvestigator/internal/store"
)

const (
	// DownloadPath is the route prefix report files are served under.
	DownloadPath = "/api/v1/download/"

	// InvalidChainMessage is returned when the requested chain is not supported.
	InvalidChainMessage = "Unsupported chain. Expected one of: auto, ethereum, polygon, tron."
)

type Investigator interface {
	Investigate(ctx context.Context, req investigation.Request) (*investigation.Result, error)
}

type ArtifactStore interface {
	Get(ctx context.Context, name string) (*store.Artifact, error)
}

type Server struct {
	logger       *logrus.Logger
	investigator Investigator
	artifacts    ArtifactStore
	outDir       string
	version      string
}

func NewServer(logger *logrus.Logger, investigator Investigator, artifacts ArtifactStore, outDir, version string) *Server {
	return &Server{
		logger:       logger,
		investigator: investigator,
		artifacts:    artifacts,
		outDir:       outDir,
		version:      version,
	}
}

// Register mounts every endpoint on mux.
func (s *Server) Register(mux *http.ServeMux) {
	RegisterFunc(s.logger, mux, http.MethodPost, "/api/v1/analyze", s.Analyze)
	RegisterFunc(s.logger, mux, http.MethodGet, "/health", s.Health)
	RegisterFunc(s.logger, mux, http.MethodGet, "/version", s.Version)
	mux.HandleFunc(http.MethodGet+" "+DownloadPath+"{name}", s.Download)
}

func (s *Server) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	logger := s.logger.WithContext(ctx).WithField("identifier", req.Identifier)

	identifier := strings.TrimSpace(req.Identifier)
	if len(identifier) > classify.MaxInputLen {
		logger.Warn("Identifier too long")
		return nil, NewErrf(http.StatusBadRequest, "Identifier too long, at most %d characters are accepted", classify.MaxInputLen)
	}

	requested := chain.Parse(req.Chain)
	if requested == chain.Unknown {
		logger.WithField("chain", req.Chain).Warn("Unsupported chain requested")
		return nil, NewErrf(http.StatusBadRequest, InvalidChainMessage)
	}

	res, err := s.investigator.Investigate(ctx, investigation.Request{
		Identifier: identifier,
		Kind:       chain.ParseKind(req.Kind),
		Chain:      requested,
	})
	if err != nil {
		logger.WithError(err).Error("Investigation failed")
		return nil, NewErrf(http.StatusBadGateway, "Analysis failed, please retry later")
	}

	rec := res.Analysis.Record
	files := make([]File, 0, len(res.Files))
	for f := range slices.Values(res.Files) {
		files = append(files, File{Name: f.Name, URL: DownloadPath + url.PathEscape(f.Name)})
	}

	return &AnalyzeResponse{
		Summary: rec.Summary,
		Classification: Classification{
			Identifier: rec.Identifier,
			Kind:       string(rec.Kind),
			Chain:      rec.Network.OrElse(chain.Unknown).String(),
			Reason:     rec.Reason,
		},
		Facts:      rec,
		Events:     res.Analysis.Events,
		Transfers:  res.Analysis.Transfers,
		AIAnalysis: res.AIText,
		Files:      files,
	}, nil
}

func (s *Server) Health(context.Context, *HealthRequest) (*HealthResponse, error) {
	return &HealthResponse{Status: "ok"}, nil
}

func (s *Server) Version(context.Context, *VersionRequest) (*VersionResponse, error) {
	return &VersionResponse{Version: s.version}, nil
}

// Download streams a stored report file. Only names registered in the artifact store that resolve inside
// the output directory are served.
func (s *Server) Download(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	logger := s.logger.WithContext(r.Context()).WithField("name", name)

	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		logger.Warn("Rejected download with an invalid file name")
		writeJSON(logger, w, http.StatusNotFound, &Err{Message: "File not found", StatusCode: http.StatusNotFound})
		return
	}

	artifact, err := s.artifacts.Get(r.Context(), name)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.WithError(err).Error("Failed to look up artifact")
		}
		writeJSON(logger, w, http.StatusNotFound, &Err{Message: "File not found", StatusCode: http.StatusNotFound})
		return
	}

	path, err := s.resolve(artifact.Path)
	if err != nil {
		logger.WithError(err).Error("Artifact path escapes the output directory")
		writeJSON(logger, w, http.StatusNotFound, &Err{Message: "File not found", StatusCode: http.StatusNotFound})
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logger.WithError(err).Warn("Artifact file is gone")
		writeJSON(logger, w, http.StatusNotFound, &Err{Message: "File not found", StatusCode: http.StatusNotFound})
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logger.WithError(err).Error("Failed to stat artifact file")
		writeJSON(logger, w, http.StatusInternalServerError, &Err{Message: "could not read file", StatusCode: http.StatusInternalServerError})
		return
	}

	if artifact.ContentType != "" {
		w.Header().Set("Content-Type", artifact.ContentType)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
	http.ServeContent(w, r, artifact.Name, info.ModTime(), f)
}

func (s *Server) resolve(path string) (string, error) {
	outDir, err := filepath.Abs(s.outDir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve artifact path: %w", err)
	}
	rel, err := filepath.Rel(outDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == "." {
		return "", fmt.Errorf("artifact path %s is outside %s", path, outDir)
	}
	return abs, nil
}
