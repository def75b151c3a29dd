package facts

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chaininvestigator/internal/chain"
)

func TestValueWriteOnce(t *testing.T) {
	var v Value[string]
	assert.False(t, v.IsKnown())
	assert.Equal(t, Unknown, v.String())
	assert.Equal(t, "fallback", v.OrElse("fallback"))

	assert.True(t, v.Set("first"))
	assert.False(t, v.Set("second"))

	got, ok := v.Get()
	require.True(t, ok)
	assert.Equal(t, "first", got)
}

func TestValueJSON(t *testing.T) {
	type wrapper struct {
		Block  Value[uint64] `json:"block"`
		Status Value[Status] `json:"status"`
	}
	w := wrapper{Status: Known(StatusSuccess)}

	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"block":"unknown","status":"success"}`, string(data))
}

func TestAmount(t *testing.T) {
	tests := map[string]struct {
		amount   Amount
		expected string
		float    float64
	}{
		"ten trx": {
			amount:   NewAmount(big.NewInt(10_000_000), SunDecimals, SymbolTRX),
			expected: "10 TRX",
			float:    10,
		},
		"fractional eth": {
			amount:   NewAmount(big.NewInt(1_500_000_000_000_000_000), WeiDecimals, SymbolETH),
			expected: "1.5 ETH",
			float:    1.5,
		},
		"zero": {
			amount:   NewAmount(nil, WeiDecimals, SymbolETH),
			expected: "0 ETH",
			float:    0,
		},
		"from display units": {
			amount:   AmountFromDisplay(12.5, SunDecimals, SymbolTRX),
			expected: "12.5 TRX",
			float:    12.5,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.amount.String())
			assert.InDelta(t, test.float, test.amount.Float(), 1e-9)
		})
	}
}

func TestResult(t *testing.T) {
	ok := OK(5)
	assert.True(t, ok.Ok())
	assert.Equal(t, 5, ok.Value)

	nf := FromError[int](fmt.Errorf("receipt: %w", ErrNotFound))
	assert.Equal(t, OutcomeNotFound, nf.Outcome)
	assert.False(t, nf.Ok())

	un := FromError[int](errors.New("connection refused"))
	assert.Equal(t, OutcomeUnavailable, un.Outcome)
	assert.Equal(t, "connection refused", un.Reason)
}

func TestScoredAddress(t *testing.T) {
	assert.Empty(t, NewRecord("0xaddr", chain.KindAddress).ScoredAddress())

	r := NewRecord("0xid", chain.KindTx)
	r.TxHash.Set("0xid")
	assert.Equal(t, "0xid", r.ScoredAddress())

	r.To.Set("0xto")
	assert.Equal(t, "0xto", r.ScoredAddress())

	r.From.Set("0xfrom")
	assert.Equal(t, "0xfrom", r.ScoredAddress())
}
