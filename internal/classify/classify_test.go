package classify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/classify"
)

func TestClassify(t *testing.T) {
	tronAddr := "T" + strings.Repeat("R", 33)

	tests := map[string]struct {
		raw         string
		tronEnabled bool
		expected    classify.Classification
	}{
		"empty": {
			raw:         "",
			tronEnabled: true,
			expected:    classify.Classification{Kind: chain.KindInvalid, Chain: chain.Unknown, Reason: classify.ReasonEmpty},
		},
		"whitespace only": {
			raw:         " \t\n ",
			tronEnabled: true,
			expected:    classify.Classification{Kind: chain.KindInvalid, Chain: chain.Unknown, Reason: classify.ReasonEmpty},
		},
		"evm tx hash": {
			raw:         "0x" + strings.Repeat("a", 64),
			tronEnabled: true,
			expected:    classify.Classification{Identifier: "0x" + strings.Repeat("a", 64), Kind: chain.KindTx, Chain: chain.EVM},
		},
		"evm tx hash with surrounding spaces": {
			raw:         "  0x" + strings.Repeat("B", 64) + " ",
			tronEnabled: false,
			expected:    classify.Classification{Identifier: "0x" + strings.Repeat("B", 64), Kind: chain.KindTx, Chain: chain.EVM},
		},
		"tron tx hash": {
			raw:         strings.Repeat("c", 64),
			tronEnabled: true,
			expected:    classify.Classification{Identifier: strings.Repeat("c", 64), Kind: chain.KindTx, Chain: chain.Tron},
		},
		"tron tx hash with tron disabled": {
			raw:         strings.Repeat("c", 64),
			tronEnabled: false,
			expected:    classify.Classification{Identifier: strings.Repeat("c", 64), Kind: chain.KindInvalid, Chain: chain.Unknown, Reason: classify.ReasonUnrecognized},
		},
		"evm address": {
			raw:         "0x7a250d5630b4cf539739df2c5dacb4c659f2488d",
			tronEnabled: true,
			expected:    classify.Classification{Identifier: "0x7a250d5630b4cf539739df2c5dacb4c659f2488d", Kind: chain.KindAddress, Chain: chain.EVM},
		},
		"evm address with non hex": {
			raw:         "0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ",
			tronEnabled: true,
			expected:    classify.Classification{Identifier: "0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ", Kind: chain.KindInvalid, Chain: chain.Unknown, Reason: classify.ReasonUnrecognized},
		},
		"tron address": {
			raw:         tronAddr,
			tronEnabled: true,
			expected:    classify.Classification{Identifier: tronAddr, Kind: chain.KindAddress, Chain: chain.Tron},
		},
		"tron address with tron disabled": {
			raw:         tronAddr,
			tronEnabled: false,
			expected:    classify.Classification{Identifier: tronAddr, Kind: chain.KindInvalid, Chain: chain.Unknown, Reason: classify.ReasonUnrecognized},
		},
		"too short tron address": {
			raw:         "T" + strings.Repeat("R", 32),
			tronEnabled: true,
			expected:    classify.Classification{Identifier: "T" + strings.Repeat("R", 32), Kind: chain.KindInvalid, Chain: chain.Unknown, Reason: classify.ReasonUnrecognized},
		},
		"garbage": {
			raw:         "hello world",
			tronEnabled: true,
			expected:    classify.Classification{Identifier: "hello world", Kind: chain.KindInvalid, Chain: chain.Unknown, Reason: classify.ReasonUnrecognized},
		},
		"too long": {
			raw:         strings.Repeat("x", classify.MaxInputLen+1),
			tronEnabled: true,
			expected:    classify.Classification{Identifier: strings.Repeat("x", classify.MaxInputLen+1), Kind: chain.KindInvalid, Chain: chain.Unknown, Reason: classify.ReasonTooLong},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := classify.New(test.tronEnabled).Classify(test.raw)
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestClassifyProperties(t *testing.T) {
	c := classify.New(true)
	hexChars := "0123456789abcdefABCDEF"

	for i := range len(hexChars) {
		hash := "0x" + strings.Repeat(string(hexChars[i]), 64)
		got := c.Classify(hash)
		assert.Equal(t, chain.KindTx, got.Kind, hash)
		assert.Equal(t, chain.EVM, got.Chain, hash)

		addr := "0x" + strings.Repeat(string(hexChars[i]), 40)
		got = c.Classify(addr)
		assert.Equal(t, chain.KindAddress, got.Kind, addr)
	}

	for length := 34; length <= 36; length++ {
		addr := "T" + strings.Repeat("a", length-1)
		got := c.Classify(addr)
		assert.Equal(t, chain.KindAddress, got.Kind, addr)
		assert.Equal(t, chain.Tron, got.Chain, addr)
	}
	for _, length := range []int{33, 37} {
		got := c.Classify("T" + strings.Repeat("a", length-1))
		assert.Equal(t, chain.KindInvalid, got.Kind)
		assert.NotEmpty(t, got.Reason)
	}
}

func TestResolve(t *testing.T) {
	evmTx := "0x" + strings.Repeat("a", 64)
	evmAddr := "0x7a250d5630b4cf539739df2c5dacb4c659f2488d"
	tronAddr := "T" + strings.Repeat("R", 33)

	tests := map[string]struct {
		raw           string
		kind          chain.Kind
		requested     chain.Chain
		tronEnabled   bool
		expectedKind  chain.Kind
		expectedChain chain.Chain
		reason        string
	}{
		"auto keeps detection": {
			raw:           evmTx,
			kind:          chain.KindAuto,
			requested:     chain.Auto,
			tronEnabled:   true,
			expectedKind:  chain.KindTx,
			expectedChain: chain.EVM,
		},
		"requested polygon pins the chain": {
			raw:           evmTx,
			kind:          chain.KindAuto,
			requested:     chain.Polygon,
			tronEnabled:   true,
			expectedKind:  chain.KindTx,
			expectedChain: chain.Polygon,
		},
		"requested ethereum on address": {
			raw:           evmAddr,
			kind:          chain.KindAddress,
			requested:     chain.Ethereum,
			tronEnabled:   true,
			expectedKind:  chain.KindAddress,
			expectedChain: chain.Ethereum,
		},
		"requested kind mismatch": {
			raw:           evmAddr,
			kind:          chain.KindTx,
			requested:     chain.Auto,
			tronEnabled:   true,
			expectedKind:  chain.KindInvalid,
			expectedChain: chain.Unknown,
			reason:        classify.ReasonKindMismatch,
		},
		"tron requested for evm identifier": {
			raw:           evmAddr,
			kind:          chain.KindAuto,
			requested:     chain.Tron,
			tronEnabled:   true,
			expectedKind:  chain.KindInvalid,
			expectedChain: chain.Unknown,
			reason:        classify.ReasonChainClash,
		},
		"ethereum requested for tron identifier": {
			raw:           tronAddr,
			kind:          chain.KindAuto,
			requested:     chain.Ethereum,
			tronEnabled:   true,
			expectedKind:  chain.KindInvalid,
			expectedChain: chain.Unknown,
			reason:        classify.ReasonChainClash,
		},
		"invalid input short circuits": {
			raw:           "",
			kind:          chain.KindTx,
			requested:     chain.Tron,
			tronEnabled:   true,
			expectedKind:  chain.KindInvalid,
			expectedChain: chain.Unknown,
			reason:        classify.ReasonEmpty,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := classify.New(test.tronEnabled).Resolve(test.raw, test.kind, test.requested)
			assert.Equal(t, test.expectedKind, got.Kind)
			assert.Equal(t, test.expectedChain, got.Chain)
			assert.Equal(t, test.reason, got.Reason)
		})
	}
}
