// Package risk scores a fact record with a fixed set of explainable heuristics. Every rule that fires adds
// points and a reason; the score is clamped to [0, 100] and mapped to a band.
package risk

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/cache"
	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/custompromauto"
	"github.com/hedisam/chaininvestigator/internal/facts"
	"github.com/hedisam/chaininvestigator/internal/labels"
	"github.com/hedisam/chaininvestigator/internal/lookup"
)

//go:generate moq -out mocks/token_source.go -pkg mocks -skip-ensure . TokenSource
//go:generate moq -out mocks/account_source.go -pkg mocks -skip-ensure . AccountSource
//go:generate moq -out mocks/label_source.go -pkg mocks -skip-ensure . LabelSource

const (
	HighThreshold   = 70
	MediumThreshold = 40

	// MinActiveTRX is the TRX balance under which a TRON account counts as low-balance.
	MinActiveTRX = 500

	MaxScore = 100

	ReasonNoSignals = "no significant signals"
)

// Stablecoins are the token symbols treated as lower-volatility holdings.
var Stablecoins = []string{"USDT", "USDC", "DAI"}

var assessments = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
	Namespace: custompromauto.Namespace,
	Name:      "risk_assessments_total",
	Help:      "Number of risk assessments, by band",
}, []string{"band"})

// TokenSource lists the fungible token holdings of an EVM address.
type TokenSource interface {
	TokenHoldings(ctx context.Context, addr string, c chain.Chain) ([]facts.TokenHolding, error)
}

// AccountSource reports the balance and transaction count of a TRON account.
type AccountSource interface {
	Account(ctx context.Context, address string) (facts.Account, error)
}

// LabelSource returns the current address labels.
type LabelSource interface {
	GetLabels(ctx context.Context, forceRefresh bool) labels.Set
}

type Assessment struct {
	Score   int        `json:"score"`
	Band    facts.Band `json:"band"`
	Reasons []string   `json:"reasons"`
}

// BandFor maps a score to its band: high from 70, medium from 40, low below.
func BandFor(score int) facts.Band {
	switch {
	case score >= HighThreshold:
		return facts.BandHigh
	case score >= MediumThreshold:
		return facts.BandMedium
	default:
		return facts.BandLow
	}
}

type Scorer struct {
	logger   *logrus.Logger
	tokens   TokenSource
	accounts AccountSource
	labels   LabelSource
	lookups  *lookup.Runner
}

// New returns a Scorer. A nil labels source disables the label rules.
func New(logger *logrus.Logger, tokens TokenSource, accounts AccountSource, labels LabelSource, lookups *lookup.Runner) *Scorer {
	return &Scorer{
		logger:   logger,
		tokens:   tokens,
		accounts: accounts,
		labels:   labels,
		lookups:  lookups,
	}
}

// Score evaluates rec and writes the result back into its risk fields. Token holdings fetched on the way
// are stored in rec.Tokens.
func (s *Scorer) Score(ctx context.Context, rec *facts.Record, transfers []facts.Transfer) Assessment {
	var acc accumulator

	network := rec.Network.OrElse(chain.Unknown)
	addr := rec.ScoredAddress()
	switch {
	case (network == chain.Ethereum || network == chain.Polygon) && strings.HasPrefix(addr, "0x"):
		s.scoreTokens(ctx, &acc, rec, addr, network)
	case network == chain.Tron && strings.HasPrefix(addr, "T"):
		s.scoreTronAccount(ctx, &acc, addr)
	}

	if rec.FlowLabel.OrElse(facts.FlowUnknown) == facts.FlowOutgoing {
		acc.add(5, "outgoing flow detected (possible fund drain)")
	}
	if rec.Kind == chain.KindTx && rec.Status.OrElse(facts.StatusUnknown) != facts.StatusSuccess {
		acc.add(10, "transaction incomplete or failed")
	}

	s.scoreLabels(ctx, &acc, rec, transfers)

	a := acc.assessment()
	rec.RiskScore.Set(a.Score)
	rec.RiskBand.Set(a.Band)
	rec.RiskReasons = slices.Clone(a.Reasons)
	assessments.WithLabelValues(string(a.Band)).Inc()

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"score": a.Score,
		"band":  a.Band,
	}).Debug("Risk assessed")
	return a
}

func (s *Scorer) scoreTokens(ctx context.Context, acc *accumulator, rec *facts.Record, addr string, c chain.Chain) {
	res := lookup.Run(ctx, s.lookups, cache.NewKey(lookup.OpTokenHoldings, addr, c), func(ctx context.Context) ([]facts.TokenHolding, error) {
		return s.tokens.TokenHoldings(ctx, addr, c)
	})
	holdings := res.Value
	if res.Ok() {
		rec.Tokens.Set(holdings)
	} else {
		acc.note("token holdings unavailable")
	}

	if len(holdings) == 0 {
		acc.add(10, "no visible token holdings (possibly inactive)")
		return
	}

	var stables int
	for h := range slices.Values(holdings) {
		if slices.Contains(Stablecoins, strings.ToUpper(h.Symbol)) {
			stables++
		}
	}
	if stables > 0 {
		acc.note(fmt.Sprintf("holds %d stablecoin position(s) (lower risk)", stables))
		return
	}
	acc.add(10, "no stablecoins detected (higher volatility)")
}

func (s *Scorer) scoreTronAccount(ctx context.Context, acc *accumulator, addr string) {
	res := lookup.Run(ctx, s.lookups, cache.NewKey(lookup.OpTronAccount, addr), func(ctx context.Context) (facts.Account, error) {
		return s.accounts.Account(ctx, addr)
	})
	if !res.Ok() {
		acc.note("tron account unavailable")
	}

	txCount := res.Value.TxCount.OrElse(0)
	if txCount == 0 {
		acc.add(20, "account has no recorded transactions (inactive)")
	} else {
		acc.note(fmt.Sprintf("%d transactions recorded on TronScan", txCount))
	}

	var balance float64
	if amount, ok := res.Value.Balance.Get(); ok {
		balance = amount.Float()
	}
	if balance < MinActiveTRX {
		acc.add(10, fmt.Sprintf("low TRX balance (<%d)", MinActiveTRX))
		return
	}
	acc.note(fmt.Sprintf("TRX balance of at least %d (active)", MinActiveTRX))
}

// scoreLabels checks the identifier, both parties and every transfer counterparty against the label lists.
// Each category counts once however many addresses match it.
func (s *Scorer) scoreLabels(ctx context.Context, acc *accumulator, rec *facts.Record, transfers []facts.Transfer) {
	if s.labels == nil {
		return
	}
	set := s.labels.GetLabels(ctx, false)

	candidates := []string{rec.Identifier, rec.From.OrElse(""), rec.To.OrElse("")}
	for tr := range slices.Values(transfers) {
		candidates = append(candidates, tr.From, tr.To, tr.Contract)
	}

	matched := map[string]string{}
	for addr := range slices.Values(candidates) {
		for category := range slices.Values(set.Match(addr)) {
			if _, ok := matched[category]; !ok {
				matched[category] = strings.ToLower(addr)
			}
		}
	}

	if addr, ok := matched[labels.CategoryScam]; ok {
		acc.add(25, "matches a known scam address list: "+addr)
	}
	if addr, ok := matched[labels.CategoryPonzi]; ok {
		acc.add(25, "matches a known ponzi/bad contract list: "+addr)
	}
	if addr, ok := matched[labels.CategoryMixers]; ok {
		acc.add(15, "interacts with a known mixer or bridge: "+addr)
	}
	if addr, ok := matched[labels.CategoryExchanges]; ok {
		acc.note("interacts with a known exchange: " + addr)
	}
	if addr, ok := matched[labels.CategoryStablecoins]; ok {
		acc.note("involves a known stablecoin contract: " + addr)
	}
}

type accumulator struct {
	score   int
	reasons []string
}

func (a *accumulator) add(points int, reason string) {
	a.score += points
	a.reasons = append(a.reasons, reason)
}

func (a *accumulator) note(reason string) {
	a.reasons = append(a.reasons, reason)
}

func (a *accumulator) assessment() Assessment {
	score := min(max(a.score, 0), MaxScore)
	reasons := a.reasons
	if len(reasons) == 0 {
		reasons = []string{ReasonNoSignals}
	}
	return Assessment{
		Score:   score,
		Band:    BandFor(score),
		Reasons: reasons,
	}
}
