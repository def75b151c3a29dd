package rest

import (
	"github.com/hedisam/chaininvestigator/internal/facts"
)

// request and response types are defined below
// these types can be defined as protobuf messages in a production system (specifically if using gRPC + gRPC-gateway)

type AnalyzeRequest struct {
	Identifier string `json:"identifier"`
	// Kind is one of auto, address or tx. Empty means auto.
	Kind string `json:"kind"`
	// Chain is one of auto, ethereum, polygon or tron. Empty means auto.
	Chain string `json:"chain"`
}

type Classification struct {
	Identifier string `json:"identifier"`
	Kind       string `json:"kind"`
	Chain      string `json:"chain"`
	Reason     string `json:"reason,omitempty"`
}

type File struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type AnalyzeResponse struct {
	Summary        []string         `json:"summary"`
	Classification Classification   `json:"classification"`
	Facts          *facts.Record    `json:"facts"`
	Events         []facts.Event    `json:"events"`
	Transfers      []facts.Transfer `json:"transfers"`
	AIAnalysis     string           `json:"aiAnalysis,omitempty"`
	Files          []File           `json:"files"`
}

type HealthRequest struct{}

type HealthResponse struct {
	Status string `json:"status"`
}

type VersionRequest struct{}

type VersionResponse struct {
	Version string `json:"version"`
}
