// Package facts holds the normalised per-request lookup result shared by the analyzer, the risk scorer
// and the report renderer.
package facts

import (
	"math/big"
	"time"

	"github.com/hedisam/chaininvestigator/internal/chain"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusUnknown Status = "unknown"
)

type FlowLabel string

const (
	FlowOutgoing FlowLabel = "outgoing"
	FlowIncoming FlowLabel = "incoming"
	FlowMixed    FlowLabel = "mixed"
	FlowUnknown  FlowLabel = "unknown"
)

type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Account is the balance snapshot of one address. TxCount is the nonce on EVM chains and the total
// transaction count on TRON.
type Account struct {
	Address string        `json:"address"`
	Balance Value[Amount] `json:"balance"`
	TxCount Value[uint64] `json:"txCount"`
}

type Balances struct {
	From Value[Account] `json:"from"`
	To   Value[Account] `json:"to"`
}

// TokenHolding is one fungible token position of an address.
type TokenHolding struct {
	Symbol   string  `json:"symbol"`
	Contract string  `json:"contract"`
	Balance  float64 `json:"balance"`
}

// Record is the accumulated fact set for one analysis request. Every Value field starts unknown and is
// filled at most once by the lookup responsible for it.
type Record struct {
	Identifier string                `json:"identifier"`
	Kind       chain.Kind            `json:"kind"`
	Reason     string                `json:"reason,omitempty"`
	Summary    []string              `json:"summary"`
	Targets    []string              `json:"targets"`
	Tokens     Value[[]TokenHolding] `json:"tokens"`

	Network   Value[chain.Chain] `json:"network"`
	TxHash    Value[string]      `json:"txHash"`
	Block     Value[uint64]      `json:"block"`
	Status    Value[Status]      `json:"status"`
	Timestamp Value[time.Time]   `json:"timestamp"`
	From      Value[string]      `json:"from"`
	To        Value[string]      `json:"to"`
	Fee       Value[Amount]      `json:"fee"`
	FlowLabel Value[FlowLabel]   `json:"flowLabel"`
	Balances  Balances           `json:"balances"`

	RiskScore   Value[int]  `json:"riskScore"`
	RiskBand    Value[Band] `json:"riskBand"`
	RiskReasons []string    `json:"riskReasons"`
}

// NewRecord returns an empty record for identifier with non-nil slices.
func NewRecord(identifier string, kind chain.Kind) *Record {
	return &Record{
		Identifier:  identifier,
		Kind:        kind,
		Summary:     []string{},
		Targets:     []string{},
		RiskReasons: []string{},
	}
}

// AddSummary appends a human readable line describing what the lookup found.
func (r *Record) AddSummary(line string) {
	r.Summary = append(r.Summary, line)
}

// ScoredAddress is the address the holdings heuristics look at: from, else to, else the transaction hash.
// Address records have no counterparty and return "".
func (r *Record) ScoredAddress() string {
	if from, ok := r.From.Get(); ok && from != "" {
		return from
	}
	if to, ok := r.To.Get(); ok && to != "" {
		return to
	}
	if hash, ok := r.TxHash.Get(); ok {
		return hash
	}
	return ""
}

// Transfer is one ERC-20 Transfer event decoded from a receipt log.
type Transfer struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	ValueRaw *big.Int `json:"valueRaw"`
	Contract string   `json:"contract"`
}

// Event is a discrete observation made during an analysis, used for reporting only.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	TxHash    string    `json:"txHash,omitempty"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Contract  string    `json:"contract,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

const (
	EventTxConfirmed   = "transaction confirmed"
	EventTxFailed      = "transaction failed"
	EventTxObserved    = "transaction observed"
	EventAddrScanned   = "address scanned"
	EventTokenTransfer = "token transfer"
	EventInvalidInput  = "invalid input"
)

// Analysis bundles everything one request produced.
type Analysis struct {
	Record    *Record    `json:"facts"`
	Events    []Event    `json:"events"`
	Transfers []Transfer `json:"transfers"`
}
