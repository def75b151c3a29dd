// Package analyzer turns one raw identifier into a fact record. Every external lookup goes through
// lookup.Run at its call site and degrades to an unknown field when it ends without a value.
package analyzer

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/cache"
	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/classify"
	"github.com/hedisam/chaininvestigator/internal/explorer"
	"github.com/hedisam/chaininvestigator/internal/facts"
	"github.com/hedisam/chaininvestigator/internal/lookup"
)

//go:generate moq -out mocks/evm_source.go -pkg mocks -skip-ensure . EVMSource
//go:generate moq -out mocks/tron_source.go -pkg mocks -skip-ensure . TronSource

// EVMSource serves ethereum and polygon lookups.
type EVMSource interface {
	TxReceipt(ctx context.Context, hash string, c chain.Chain) (*explorer.Receipt, error)
	BlockByNumber(ctx context.Context, number uint64, c chain.Chain) (*explorer.Block, error)
	Balance(ctx context.Context, addr string, c chain.Chain) (*big.Int, error)
	TxCount(ctx context.Context, addr string, c chain.Chain) (uint64, error)
}

// TronSource serves TRON lookups.
type TronSource interface {
	Transaction(ctx context.Context, hash string) (*explorer.TronTx, error)
	Account(ctx context.Context, address string) (facts.Account, error)
}

type config struct {
	enableBalances bool
	now            func() time.Time
}

type Option func(*config)

// WithBalances toggles the optional balance lookups. Enabled by default.
func WithBalances(enabled bool) Option {
	return func(c *config) {
		c.enableBalances = enabled
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

type Analyzer struct {
	logger         *logrus.Logger
	classifier     *classify.Classifier
	evm            EVMSource
	tron           TronSource
	lookups        *lookup.Runner
	enableBalances bool
	now            func() time.Time
}

func New(
	logger *logrus.Logger,
	classifier *classify.Classifier,
	evm EVMSource,
	tron TronSource,
	lookups *lookup.Runner,
	opts ...Option,
) *Analyzer {
	cfg := &config{
		enableBalances: true,
		now:            time.Now,
	}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	return &Analyzer{
		logger:         logger,
		classifier:     classifier,
		evm:            evm,
		tron:           tron,
		lookups:        lookups,
		enableBalances: cfg.enableBalances,
		now:            cfg.now,
	}
}

// Analyze classifies identifier, applies the requested kind and chain, and gathers every fact the matching
// branch can find. It never fails: lookups that end without a value leave their fields unknown.
func (a *Analyzer) Analyze(ctx context.Context, identifier string, kind chain.Kind, requested chain.Chain) *facts.Analysis {
	start := time.Now()
	cl := a.classifier.Resolve(identifier, kind, requested)

	an := &facts.Analysis{
		Record:    facts.NewRecord(cl.Identifier, cl.Kind),
		Events:    []facts.Event{},
		Transfers: []facts.Transfer{},
	}

	switch {
	case !cl.IsValid():
		a.invalid(an, cl.Reason)
	case cl.Kind == chain.KindTx && cl.Chain == chain.Tron:
		a.tronTx(ctx, an)
	case cl.Kind == chain.KindTx:
		a.evmTx(ctx, an, cl.Chain)
	case cl.Chain == chain.Tron:
		a.tronAddress(ctx, an)
	default:
		a.evmAddress(ctx, an, cl.Chain)
	}

	network := an.Record.Network.OrElse(chain.Unknown)
	analyses.WithLabelValues(string(cl.Kind), string(network)).Inc()
	analysisDuration.WithLabelValues(string(cl.Kind)).Observe(time.Since(start).Seconds())
	a.logger.WithContext(ctx).WithFields(logrus.Fields{
		"kind":        cl.Kind,
		"network":     network,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Analysis done")

	return an
}

func (a *Analyzer) invalid(an *facts.Analysis, reason string) {
	an.Record.Reason = reason
	an.Record.AddSummary("Invalid input: " + reason)
	an.Events = append(an.Events, facts.Event{
		Timestamp: a.now().UTC(),
		Type:      facts.EventInvalidInput,
		Notes:     reason,
	})
}

func (a *Analyzer) evmTx(ctx context.Context, an *facts.Analysis, hint chain.Chain) {
	rec := an.Record
	hash := rec.Identifier
	rec.TxHash.Set(hash)

	fetch := func(ctx context.Context, hash string, c chain.Chain) (*explorer.Receipt, error) {
		return lookup.Cached(ctx, a.lookups, cache.NewKey(lookup.OpReceipt, hash, c), func(ctx context.Context) (*explorer.Receipt, error) {
			receipt, err := a.evm.TxReceipt(ctx, hash, c)
			if err != nil {
				return nil, err
			}
			// pending receipts are not cached
			if !receipt.HasBlock() {
				return nil, fmt.Errorf("receipt %s on %s has no block: %w", hash, c, facts.ErrNotFound)
			}
			return receipt, nil
		})
	}
	receipt, network, err := explorer.ResolveReceipt(ctx, hash, hint, fetch)
	rec.Network.Set(network)

	res := facts.OK(receipt)
	if err != nil {
		res = facts.FromError[*explorer.Receipt](err)
	}
	if !res.Ok() {
		a.lookups.Degraded(ctx, lookup.OpReceipt, res.Outcome, res.Reason)
		rec.Status.Set(facts.StatusUnknown)
		rec.FlowLabel.Set(facts.FlowUnknown)
		rec.AddSummary(fmt.Sprintf("TX on %s | status=%s | receipt %s", network, facts.StatusUnknown, res.Outcome))
		an.Events = append(an.Events, a.txEvent(rec))
		return
	}

	rec.Status.Set(receipt.TxStatus())
	if receipt.From != "" {
		rec.From.Set(normalizeEVM(receipt.From))
	}
	switch {
	case receipt.To != "":
		rec.To.Set(normalizeEVM(receipt.To))
	case receipt.ContractAddress != "":
		rec.To.Set(normalizeEVM(receipt.ContractAddress))
	}

	if number, ok := receipt.BlockNum(); ok {
		rec.Block.Set(number)
		block := lookup.Run(ctx, a.lookups, cache.NewKey(lookup.OpBlock, number, network), func(ctx context.Context) (*explorer.Block, error) {
			return a.evm.BlockByNumber(ctx, number, network)
		})
		if ts, ok := block.Value.Time(); block.Ok() && ok {
			rec.Timestamp.Set(time.Unix(int64(ts), 0).UTC())
		}
	}

	if fee, ok := receipt.Fee(); ok {
		rec.Fee.Set(facts.NewAmount(fee, facts.WeiDecimals, nativeSymbol(network)))
	}

	an.Transfers = explorer.ParseTransfers(receipt)
	rec.FlowLabel.Set(FlowLabel(rec.From.OrElse(""), an.Transfers))
	rec.Targets = targets(rec.From.OrElse(""), rec.To.OrElse(""), an.Transfers)

	if a.enableBalances {
		if from, ok := rec.From.Get(); ok {
			rec.Balances.From.Set(a.evmAccount(ctx, from, network))
		}
		if to, ok := rec.To.Get(); ok {
			rec.Balances.To.Set(a.evmAccount(ctx, to, network))
		}
	}

	rec.AddSummary(fmt.Sprintf("TX on %s | status=%s | block=%s", network, rec.Status, rec.Block))
	if ts, ok := rec.Timestamp.Get(); ok {
		rec.AddSummary("Block timestamp " + ts.Format(time.RFC3339))
	}
	if len(an.Transfers) > 0 {
		rec.AddSummary(fmt.Sprintf("ERC-20 transfers: %d", len(an.Transfers)))
	}

	an.Events = append(an.Events, a.txEvent(rec))
	for tr := range slices.Values(an.Transfers) {
		an.Events = append(an.Events, facts.Event{
			Timestamp: rec.Timestamp.OrElse(a.now().UTC()),
			Type:      facts.EventTokenTransfer,
			TxHash:    hash,
			From:      tr.From,
			To:        tr.To,
			Contract:  tr.Contract,
			Notes:     "value_raw=" + tr.ValueRaw.String(),
		})
	}
}

func (a *Analyzer) tronTx(ctx context.Context, an *facts.Analysis) {
	rec := an.Record
	hash := rec.Identifier
	rec.TxHash.Set(hash)
	rec.Network.Set(chain.Tron)

	res := lookup.Run(ctx, a.lookups, cache.NewKey(lookup.OpTronTx, hash), func(ctx context.Context) (*explorer.TronTx, error) {
		return a.tron.Transaction(ctx, hash)
	})
	if !res.Ok() {
		rec.Status.Set(facts.StatusUnknown)
		rec.FlowLabel.Set(facts.FlowUnknown)
		rec.AddSummary(fmt.Sprintf("TX on tron | status=%s | transaction %s", facts.StatusUnknown, res.Outcome))
		an.Events = append(an.Events, a.txEvent(rec))
		return
	}

	tx := res.Value
	if tx.Confirmed {
		rec.Status.Set(facts.StatusSuccess)
	} else {
		rec.Status.Set(facts.StatusUnknown)
	}
	if tx.Block > 0 {
		rec.Block.Set(tx.Block)
	}
	if tx.Timestamp > 0 {
		rec.Timestamp.Set(time.Unix(tx.Timestamp/1000, 0).UTC())
	}
	rec.Fee.Set(facts.NewAmount(big.NewInt(tx.Cost.NetFee), facts.SunDecimals, facts.SymbolTRX))
	if tx.OwnerAddress != "" {
		rec.From.Set(tx.OwnerAddress)
	}
	if tx.ToAddress != "" {
		rec.To.Set(tx.ToAddress)
		rec.Targets = append(rec.Targets, tx.ToAddress)
	}
	if rec.From.IsKnown() && rec.To.IsKnown() {
		rec.FlowLabel.Set(facts.FlowOutgoing)
	} else {
		rec.FlowLabel.Set(facts.FlowUnknown)
	}

	if a.enableBalances {
		if from, ok := rec.From.Get(); ok {
			rec.Balances.From.Set(a.tronAccount(ctx, from))
		}
		if to, ok := rec.To.Get(); ok {
			rec.Balances.To.Set(a.tronAccount(ctx, to))
		}
	}

	rec.AddSummary(fmt.Sprintf("TX on tron | status=%s | block=%s | fee=%s", rec.Status, rec.Block, rec.Fee))
	an.Events = append(an.Events, a.txEvent(rec))
}

func (a *Analyzer) evmAddress(ctx context.Context, an *facts.Analysis, c chain.Chain) {
	rec := an.Record
	network := chain.Ethereum
	if c == chain.Polygon {
		network = chain.Polygon
	}
	rec.Network.Set(network)

	addr := normalizeEVM(rec.Identifier)
	if a.enableBalances {
		account := a.evmAccount(ctx, addr, network)
		rec.Balances.From.Set(account)
		rec.AddSummary(fmt.Sprintf("Address on %s | balance=%s | nonce=%s", network, account.Balance, account.TxCount))
	} else {
		rec.AddSummary(fmt.Sprintf("Address on %s", network))
	}

	an.Events = append(an.Events, facts.Event{
		Timestamp: a.now().UTC(),
		Type:      facts.EventAddrScanned,
		From:      addr,
		Notes:     "network=" + network.String(),
	})
}

func (a *Analyzer) tronAddress(ctx context.Context, an *facts.Analysis) {
	rec := an.Record
	rec.Network.Set(chain.Tron)

	if a.enableBalances {
		account := a.tronAccount(ctx, rec.Identifier)
		rec.Balances.From.Set(account)
		rec.AddSummary(fmt.Sprintf("Address on tron | balance=%s | transactions=%s", account.Balance, account.TxCount))
	} else {
		rec.AddSummary("Address on tron")
	}

	an.Events = append(an.Events, facts.Event{
		Timestamp: a.now().UTC(),
		Type:      facts.EventAddrScanned,
		From:      rec.Identifier,
		Notes:     "network=tron",
	})
}

// evmAccount merges the balance and nonce lookups of addr; each one that fails leaves only its own field unknown.
func (a *Analyzer) evmAccount(ctx context.Context, addr string, c chain.Chain) facts.Account {
	account := facts.Account{Address: addr}

	balance := lookup.Run(ctx, a.lookups, cache.NewKey(lookup.OpBalance, addr, c), func(ctx context.Context) (*big.Int, error) {
		return a.evm.Balance(ctx, addr, c)
	})
	if balance.Ok() {
		account.Balance.Set(facts.NewAmount(balance.Value, facts.WeiDecimals, nativeSymbol(c)))
	}

	count := lookup.Run(ctx, a.lookups, cache.NewKey(lookup.OpTxCount, addr, c), func(ctx context.Context) (uint64, error) {
		return a.evm.TxCount(ctx, addr, c)
	})
	if count.Ok() {
		account.TxCount.Set(count.Value)
	}

	return account
}

func (a *Analyzer) tronAccount(ctx context.Context, addr string) facts.Account {
	res := lookup.Run(ctx, a.lookups, cache.NewKey(lookup.OpTronAccount, addr), func(ctx context.Context) (facts.Account, error) {
		return a.tron.Account(ctx, addr)
	})
	if !res.Ok() {
		return facts.Account{Address: addr}
	}
	return res.Value
}

func (a *Analyzer) txEvent(rec *facts.Record) facts.Event {
	typ := facts.EventTxObserved
	switch rec.Status.OrElse(facts.StatusUnknown) {
	case facts.StatusSuccess:
		typ = facts.EventTxConfirmed
	case facts.StatusFailed:
		typ = facts.EventTxFailed
	}
	return facts.Event{
		Timestamp: rec.Timestamp.OrElse(a.now().UTC()),
		Type:      typ,
		TxHash:    rec.Identifier,
		From:      rec.From.OrElse(""),
		To:        rec.To.OrElse(""),
		Notes:     "network=" + rec.Network.String(),
	}
}
