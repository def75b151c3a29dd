package analyzer_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chaininvestigator/internal/analyzer"
	"github.com/hedisam/chaininvestigator/internal/analyzer/mocks"
	"github.com/hedisam/chaininvestigator/internal/cache"
	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/classify"
	"github.com/hedisam/chaininvestigator/internal/explorer"
	"github.com/hedisam/chaininvestigator/internal/facts"
	"github.com/hedisam/chaininvestigator/internal/lookup"
	"github.com/hedisam/chaininvestigator/internal/retry"
)

const (
	evmTxHash   = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"
	evmSender   = "0x1111111111111111111111111111111111111111"
	evmReceiver = "0x2222222222222222222222222222222222222222"
	evmToken    = "0xdac17f958d2ee523a2206206994597c13d831ec7"
	tronTxHash  = "7c2d4206c03a883dd9066d620335dc1be272a8dc733cfa3f6d10308faa37facc"
	tronAddress = "TLa2f6VPqDgRE67v1736s7bJ8Ray5wYjU7"
)

var errUnavailable = errors.New("explorer unavailable")

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func newAnalyzer(evm analyzer.EVMSource, tron analyzer.TronSource, opts ...analyzer.Option) *analyzer.Analyzer {
	logger := quietLogger()
	opts = append([]analyzer.Option{analyzer.WithClock(fixedNow)}, opts...)
	return analyzer.New(
		logger,
		classify.New(true),
		evm,
		tron,
		lookup.NewRunner(logger, cache.New(logger), retry.NewPolicy(logger, 2, time.Millisecond), time.Minute),
		opts...,
	)
}

func transferLog(t *testing.T, from, to string, value int64) json.RawMessage {
	t.Helper()
	pad := func(addr string) string {
		return "0x" + strings.Repeat("0", 24) + strings.TrimPrefix(addr, "0x")
	}
	data := "0x" + strings.Repeat("0", 64-len(big.NewInt(value).Text(16))) + big.NewInt(value).Text(16)
	raw, err := json.Marshal(map[string]any{
		"address": evmToken,
		"topics":  []string{explorer.TransferEventSignature.Hex(), pad(from), pad(to)},
		"data":    data,
	})
	require.NoError(t, err)
	return raw
}

func TestAnalyzeEVMTx(t *testing.T) {
	receipt := &explorer.Receipt{
		TxHash:            evmTxHash,
		BlockNumber:       "0x10",
		From:              strings.ToUpper(evmSender[:4]) + evmSender[4:],
		To:                evmToken,
		Status:            "0x1",
		GasUsed:           "0x5208",
		EffectiveGasPrice: "0x3b9aca00",
		Logs:              []json.RawMessage{transferLog(t, evmSender, evmReceiver, 1_000_000)},
	}

	evm := &mocks.EVMSourceMock{
		TxReceiptFunc: func(_ context.Context, _ string, c chain.Chain) (*explorer.Receipt, error) {
			if c == chain.Polygon {
				return receipt, nil
			}
			return nil, facts.ErrNotFound
		},
		BlockByNumberFunc: func(_ context.Context, number uint64, c chain.Chain) (*explorer.Block, error) {
			assert.Equal(t, uint64(16), number)
			assert.Equal(t, chain.Polygon, c)
			return &explorer.Block{Number: "0x10", Timestamp: "0x6630f0c0"}, nil
		},
		BalanceFunc: func(_ context.Context, _ string, _ chain.Chain) (*big.Int, error) {
			return big.NewInt(2_000_000_000_000_000_000), nil
		},
		TxCountFunc: func(_ context.Context, _ string, _ chain.Chain) (uint64, error) {
			return 7, nil
		},
	}

	an := newAnalyzer(evm, nil).Analyze(context.Background(), evmTxHash, chain.KindAuto, chain.Auto)
	rec := an.Record

	assert.Equal(t, chain.KindTx, rec.Kind)
	assert.Equal(t, "polygon", rec.Network.String())
	assert.Equal(t, "success", rec.Status.String())
	assert.Equal(t, "16", rec.Block.String())
	ts, ok := rec.Timestamp.Get()
	require.True(t, ok)
	assert.Equal(t, int64(0x6630f0c0), ts.Unix())
	assert.Equal(t, "0.000021 POL", rec.Fee.String())
	assert.Equal(t, evmSender, rec.From.OrElse(""))
	assert.Equal(t, evmToken, rec.To.OrElse(""))
	assert.Equal(t, facts.FlowOutgoing, rec.FlowLabel.OrElse(facts.FlowUnknown))
	assert.Equal(t, []string{evmToken, evmReceiver}, rec.Targets)

	from, ok := rec.Balances.From.Get()
	require.True(t, ok)
	assert.Equal(t, "2 POL", from.Balance.String())
	assert.Equal(t, "7", from.TxCount.String())
	assert.True(t, rec.Balances.To.IsKnown())

	require.Len(t, an.Transfers, 1)
	assert.Equal(t, evmReceiver, an.Transfers[0].To)
	require.Len(t, an.Events, 2)
	assert.Equal(t, facts.EventTxConfirmed, an.Events[0].Type)
	assert.Equal(t, facts.EventTokenTransfer, an.Events[1].Type)
	assert.Contains(t, rec.Summary, "TX on polygon | status=success | block=16")
	assert.Contains(t, rec.Summary, "ERC-20 transfers: 1")

	assert.Len(t, evm.TxReceiptCalls(), 1, "polygon answered first")
}

func TestAnalyzeEVMTxDegraded(t *testing.T) {
	tests := map[string]struct {
		receiptErr       error
		requested        chain.Chain
		expNetwork       string
		expReceiptCalls  int
		expSummaryReason string
	}{
		"every source down falls back to ethereum": {
			receiptErr:       errUnavailable,
			requested:        chain.Auto,
			expNetwork:       "ethereum",
			expReceiptCalls:  4,
			expSummaryReason: "receipt unavailable",
		},
		"unknown hash is not retried": {
			receiptErr:       facts.ErrNotFound,
			requested:        chain.Auto,
			expNetwork:       "ethereum",
			expReceiptCalls:  2,
			expSummaryReason: "receipt not_found",
		},
		"explicit polygon is the only chain probed": {
			receiptErr:       errUnavailable,
			requested:        chain.Polygon,
			expNetwork:       "polygon",
			expReceiptCalls:  2,
			expSummaryReason: "receipt unavailable",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			evm := &mocks.EVMSourceMock{
				TxReceiptFunc: func(context.Context, string, chain.Chain) (*explorer.Receipt, error) {
					return nil, test.receiptErr
				},
			}

			an := newAnalyzer(evm, nil).Analyze(context.Background(), evmTxHash, chain.KindTx, test.requested)
			rec := an.Record

			assert.Equal(t, test.expNetwork, rec.Network.String())
			assert.Equal(t, "unknown", rec.Status.String())
			assert.Equal(t, facts.Unknown, rec.Block.String())
			assert.Equal(t, facts.Unknown, rec.Fee.String())
			assert.Equal(t, evmTxHash, rec.TxHash.OrElse(""))
			assert.NotNil(t, an.Transfers)
			assert.Empty(t, an.Transfers)
			assert.Len(t, evm.TxReceiptCalls(), test.expReceiptCalls)
			require.Len(t, rec.Summary, 1)
			assert.Contains(t, rec.Summary[0], test.expSummaryReason)
			require.Len(t, an.Events, 1)
			assert.Equal(t, facts.EventTxObserved, an.Events[0].Type)
		})
	}
}

func TestAnalyzePendingReceiptIsNotCached(t *testing.T) {
	mined := false
	evm := &mocks.EVMSourceMock{
		TxReceiptFunc: func(_ context.Context, hash string, _ chain.Chain) (*explorer.Receipt, error) {
			receipt := &explorer.Receipt{TxHash: hash, From: evmSender, To: evmReceiver}
			if mined {
				receipt.BlockNumber = "0x10"
				receipt.Status = "0x1"
			}
			return receipt, nil
		},
		BlockByNumberFunc: func(context.Context, uint64, chain.Chain) (*explorer.Block, error) {
			return &explorer.Block{Number: "0x10", Timestamp: "0x6630f0c0"}, nil
		},
	}
	a := newAnalyzer(evm, nil, analyzer.WithBalances(false))

	an := a.Analyze(context.Background(), evmTxHash, chain.KindTx, chain.Ethereum)
	assert.Equal(t, "unknown", an.Record.Status.String())
	require.Len(t, an.Record.Summary, 1)
	assert.Contains(t, an.Record.Summary[0], "receipt not_found")
	assert.Len(t, evm.TxReceiptCalls(), 1, "a pending receipt is not retried")

	mined = true
	an = a.Analyze(context.Background(), evmTxHash, chain.KindTx, chain.Ethereum)
	assert.Equal(t, "success", an.Record.Status.String())
	assert.Equal(t, "16", an.Record.Block.String())
	assert.Len(t, evm.TxReceiptCalls(), 2)
}

func TestAnalyzeEVMAddress(t *testing.T) {
	addr := "0xAbCdEf0123456789abcdef0123456789ABCDEF01"

	tests := map[string]struct {
		requested      chain.Chain
		balances       bool
		balanceErr     error
		expNetwork     string
		expBalance     string
		expTxCount     string
		expBalanceCall int
	}{
		"auto resolves to ethereum": {
			requested:      chain.Auto,
			balances:       true,
			expNetwork:     "ethereum",
			expBalance:     "1.5 ETH",
			expTxCount:     "3",
			expBalanceCall: 1,
		},
		"polygon override": {
			requested:      chain.Polygon,
			balances:       true,
			expNetwork:     "polygon",
			expBalance:     "1.5 POL",
			expTxCount:     "3",
			expBalanceCall: 1,
		},
		"balance failure keeps the nonce": {
			requested:      chain.Ethereum,
			balances:       true,
			balanceErr:     errUnavailable,
			expNetwork:     "ethereum",
			expBalance:     facts.Unknown,
			expTxCount:     "3",
			expBalanceCall: 2,
		},
		"balances disabled": {
			requested:  chain.Auto,
			expNetwork: "ethereum",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			evm := &mocks.EVMSourceMock{
				BalanceFunc: func(_ context.Context, got string, _ chain.Chain) (*big.Int, error) {
					assert.Equal(t, strings.ToLower(addr), got)
					if test.balanceErr != nil {
						return nil, test.balanceErr
					}
					return big.NewInt(1_500_000_000_000_000_000), nil
				},
				TxCountFunc: func(context.Context, string, chain.Chain) (uint64, error) {
					return 3, nil
				},
			}

			an := newAnalyzer(evm, nil, analyzer.WithBalances(test.balances)).
				Analyze(context.Background(), addr, chain.KindAuto, test.requested)
			rec := an.Record

			assert.Equal(t, chain.KindAddress, rec.Kind)
			assert.Equal(t, test.expNetwork, rec.Network.String())
			assert.Len(t, evm.BalanceCalls(), test.expBalanceCall)
			require.Len(t, an.Events, 1)
			assert.Equal(t, facts.EventAddrScanned, an.Events[0].Type)
			assert.Empty(t, an.Transfers)

			if !test.balances {
				assert.False(t, rec.Balances.From.IsKnown())
				assert.Empty(t, evm.TxCountCalls())
				return
			}
			account, ok := rec.Balances.From.Get()
			require.True(t, ok)
			assert.Equal(t, test.expBalance, account.Balance.String())
			assert.Equal(t, test.expTxCount, account.TxCount.String())
		})
	}
}

func TestAnalyzeTronTx(t *testing.T) {
	tron := &mocks.TronSourceMock{
		TransactionFunc: func(_ context.Context, hash string) (*explorer.TronTx, error) {
			tx := &explorer.TronTx{
				Hash:         hash,
				Block:        61_000_000,
				Timestamp:    1_714_564_800_123,
				OwnerAddress: tronAddress,
				ToAddress:    "TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf",
				Confirmed:    true,
			}
			tx.Cost.NetFee = 345_000
			return tx, nil
		},
		AccountFunc: func(_ context.Context, address string) (facts.Account, error) {
			return facts.Account{Address: address}, nil
		},
	}

	an := newAnalyzer(nil, tron).Analyze(context.Background(), tronTxHash, chain.KindAuto, chain.Auto)
	rec := an.Record

	assert.Equal(t, chain.KindTx, rec.Kind)
	assert.Equal(t, "tron", rec.Network.String())
	assert.Equal(t, "success", rec.Status.String())
	assert.Equal(t, "61000000", rec.Block.String())
	ts, ok := rec.Timestamp.Get()
	require.True(t, ok)
	assert.Equal(t, int64(1_714_564_800), ts.Unix())
	assert.Equal(t, "0.345 TRX", rec.Fee.String())
	assert.Equal(t, facts.FlowOutgoing, rec.FlowLabel.OrElse(facts.FlowUnknown))
	assert.Len(t, tron.AccountCalls(), 2)
	require.Len(t, an.Events, 1)
	assert.Equal(t, facts.EventTxConfirmed, an.Events[0].Type)
}

func TestAnalyzeTronTxUnavailable(t *testing.T) {
	tron := &mocks.TronSourceMock{
		TransactionFunc: func(context.Context, string) (*explorer.TronTx, error) {
			return nil, errUnavailable
		},
	}

	an := newAnalyzer(nil, tron).Analyze(context.Background(), tronTxHash, chain.KindTx, chain.Tron)
	assert.Equal(t, "tron", an.Record.Network.String())
	assert.Equal(t, "unknown", an.Record.Status.String())
	assert.Equal(t, facts.FlowUnknown, an.Record.FlowLabel.OrElse(""))
	assert.Len(t, tron.TransactionCalls(), 2)
}

func TestAnalyzeInvalid(t *testing.T) {
	tests := map[string]struct {
		identifier string
		kind       chain.Kind
		requested  chain.Chain
		expReason  string
	}{
		"empty": {
			identifier: "   ",
			expReason:  classify.ReasonEmpty,
		},
		"garbage": {
			identifier: "hello world",
			expReason:  classify.ReasonUnrecognized,
		},
		"kind mismatch": {
			identifier: evmTxHash,
			kind:       chain.KindAddress,
			expReason:  classify.ReasonKindMismatch,
		},
		"tron override on evm identifier": {
			identifier: evmTxHash,
			requested:  chain.Tron,
			expReason:  classify.ReasonChainClash,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			// mocks without funcs panic on any call
			evm := &mocks.EVMSourceMock{}
			tron := &mocks.TronSourceMock{}

			an := newAnalyzer(evm, tron).Analyze(context.Background(), test.identifier, test.kind, test.requested)
			assert.Equal(t, chain.KindInvalid, an.Record.Kind)
			assert.Equal(t, test.expReason, an.Record.Reason)
			assert.False(t, an.Record.Network.IsKnown())
			require.Len(t, an.Events, 1)
			assert.Equal(t, facts.EventInvalidInput, an.Events[0].Type)
		})
	}
}

func TestAnalyzeUsesCache(t *testing.T) {
	tron := &mocks.TronSourceMock{
		AccountFunc: func(_ context.Context, address string) (facts.Account, error) {
			account := facts.Account{Address: address}
			account.TxCount.Set(12)
			return account, nil
		},
	}

	a := newAnalyzer(nil, tron)
	for range 3 {
		an := a.Analyze(context.Background(), tronAddress, chain.KindAddress, chain.Auto)
		account, ok := an.Record.Balances.From.Get()
		require.True(t, ok)
		assert.Equal(t, "12", account.TxCount.String())
	}
	assert.Len(t, tron.AccountCalls(), 1)
}

func TestFlowLabel(t *testing.T) {
	transfer := func(from, to string) facts.Transfer {
		return facts.Transfer{From: from, To: to, ValueRaw: big.NewInt(1)}
	}

	tests := map[string]struct {
		sender    string
		transfers []facts.Transfer
		expected  facts.FlowLabel
	}{
		"no transfers": {sender: evmSender, expected: facts.FlowUnknown},
		"no sender":    {transfers: []facts.Transfer{transfer(evmSender, evmReceiver)}, expected: facts.FlowUnknown},
		"outgoing":     {sender: evmSender, transfers: []facts.Transfer{transfer(evmSender, evmReceiver)}, expected: facts.FlowOutgoing},
		"incoming":     {sender: evmSender, transfers: []facts.Transfer{transfer(evmReceiver, evmSender)}, expected: facts.FlowIncoming},
		"mixed":        {sender: evmSender, transfers: []facts.Transfer{transfer(evmSender, evmReceiver), transfer(evmReceiver, evmSender)}, expected: facts.FlowMixed},
		"case folding": {sender: strings.ToUpper(evmSender), transfers: []facts.Transfer{transfer(evmSender, evmReceiver)}, expected: facts.FlowOutgoing},
		"not a party":  {sender: evmToken, transfers: []facts.Transfer{transfer(evmSender, evmReceiver)}, expected: facts.FlowUnknown},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, analyzer.FlowLabel(test.sender, test.transfers))
		})
	}
}
