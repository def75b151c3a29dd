package report_test

import (
	"context"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/facts"
	"github.com/hedisam/chaininvestigator/internal/report"
)

const txHash = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"

func newRenderer(t *testing.T, opts ...report.Option) (*report.Renderer, string) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	dir := filepath.Join(t.TempDir(), "outputs")
	opts = append([]report.Option{
		report.WithClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }),
		report.WithIDGenerator(func() string { return "0f8fad5b-d9cb-469f-a165-70867728950e" }),
	}, opts...)
	return report.NewRenderer(logger, dir, opts...), dir
}

func txAnalysis() *facts.Analysis {
	rec := facts.NewRecord(txHash, chain.KindTx)
	rec.Network.Set(chain.Polygon)
	rec.TxHash.Set(txHash)
	rec.Status.Set(facts.StatusSuccess)
	rec.Block.Set(16)
	rec.Timestamp.Set(time.Unix(1714564800, 0))
	rec.From.Set("0x1111111111111111111111111111111111111111")
	rec.To.Set("0xdac17f958d2ee523a2206206994597c13d831ec7")
	rec.Fee.Set(facts.NewAmount(big.NewInt(21_000_000_000_000), facts.WeiDecimals, facts.SymbolPOL))
	rec.FlowLabel.Set(facts.FlowOutgoing)
	rec.Targets = []string{"0x2222222222222222222222222222222222222222"}
	rec.Tokens.Set([]facts.TokenHolding{{Symbol: "USDT", Contract: "0xc2132d05d31c914a87c6611c10748aeb04b58e8f", Balance: 1500}})
	rec.RiskScore.Set(45)
	rec.RiskBand.Set(facts.BandMedium)
	rec.RiskReasons = []string{"outgoing flow detected (possible fund drain)"}
	rec.AddSummary("TX on polygon | status=success | block=16")

	return &facts.Analysis{
		Record: rec,
		Events: []facts.Event{{Type: facts.EventTxConfirmed, TxHash: txHash}},
		Transfers: []facts.Transfer{{
			From:     "0x1111111111111111111111111111111111111111",
			To:       "0x2222222222222222222222222222222222222222",
			ValueRaw: big.NewInt(1_000_000),
			Contract: "0xdac17f958d2ee523a2206206994597c13d831ec7",
		}},
	}
}

func TestRender(t *testing.T) {
	r, dir := newRenderer(t)

	artifacts, err := r.Render(context.Background(), txAnalysis(), "Likely a token payment.")
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	md := artifacts[0]
	assert.Equal(t, "Report_0x5c5_0f8fad5b.md", md.Name)
	assert.Equal(t, filepath.Join(dir, md.Name), md.Path)
	assert.Equal(t, report.ContentTypeMarkdown, md.ContentType)

	body, err := os.ReadFile(md.Path)
	require.NoError(t, err)
	text := string(body)
	for _, want := range []string{
		"## 1. General summary",
		"## 2. Basic data",
		"## 3. Balances",
		"## 4. Detected targets",
		"## 5. Technical interpretation",
		"## 6. Risk assessment",
		"## 7. Conclusion",
		"## 8. Recommendations",
		"## 9. Clarifications",
		"## 10. AI-assisted analysis",
		"- **Network**: polygon",
		"- **Block**: 16",
		"- **Date (UTC)**: 2024-05-01 12:00:00",
		"- **Risk**: 45/100 (MEDIUM)",
		"- **Fee (native)**: 0.000021 POL",
		"- **Source account**: N/A",
		"- USDT: 1500 (0xc2132d05d31c914a87c6611c10748aeb04b58e8f)",
		"- 0x2222222222222222222222222222222222222222",
		"- Detected flow: outgoing.",
		"- 1 token transfer(s) decoded from the receipt.",
		"- outgoing flow detected (possible fund drain)",
		"Likely a token payment.",
		"2024-05-01 12:00:00 UTC",
	} {
		assert.Contains(t, text, want)
	}

	pdf := artifacts[1]
	assert.Equal(t, "Report_0x5c5_0f8fad5b.pdf", pdf.Name)
	assert.Equal(t, report.ContentTypePDF, pdf.ContentType)
	raw, err := os.ReadFile(pdf.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF-"))
}

func TestRenderInvalidInput(t *testing.T) {
	r, _ := newRenderer(t, report.WithPDF(false))

	rec := facts.NewRecord("not-an-address", chain.KindInvalid)
	rec.Reason = "unrecognised identifier format"
	rec.AddSummary("Invalid input: unrecognised identifier format")

	artifacts, err := r.Render(context.Background(), &facts.Analysis{Record: rec}, "")
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "Report_notxa_0f8fad5b.md", artifacts[0].Name)

	body, err := os.ReadFile(artifacts[0].Path)
	require.NoError(t, err)
	text := string(body)
	for _, want := range []string{
		"- **Kind**: invalid",
		"- **Network**: N/A",
		"- **Status**: N/A",
		"- **Risk**: N/A",
		"- **Reason**: unrecognised identifier format",
		"- **Source (from)**: N/A",
		"- **Fee (native)**: N/A",
		"- No token transfers were detected in this capture.",
		"- No relevant signals with the current rules.",
		"Overall risk level: N/A. Estimated score: N/A/100.",
		"## 10. AI-assisted analysis\n\nN/A",
	} {
		assert.Contains(t, text, want)
	}
}

func TestRenderEscapesMarkdown(t *testing.T) {
	r, _ := newRenderer(t, report.WithPDF(false))

	rec := facts.NewRecord("**[x](y)**", chain.KindInvalid)
	artifacts, err := r.Render(context.Background(), &facts.Analysis{Record: rec}, "")
	require.NoError(t, err)

	body, err := os.ReadFile(artifacts[0].Path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `- **Identifier**: \*\*\[x\](y)\*\*`)
}

func TestRenderErrors(t *testing.T) {
	r, _ := newRenderer(t)
	_, err := r.Render(context.Background(), nil, "")
	assert.Error(t, err)

	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	_, err = report.NewRenderer(logger, blocked).Render(context.Background(), txAnalysis(), "")
	assert.Error(t, err)
}

func TestBaseName(t *testing.T) {
	tests := map[string]struct {
		identifier string
		id         string
		want       string
	}{
		"evm hash": {
			identifier: txHash,
			id:         "0f8fad5b-d9cb-469f-a165-70867728950e",
			want:       "Report_0x5c5_0f8fad5b",
		},
		"tron address": {
			identifier: "TLa2f6VPqDgRE67v1736s7bJ8Ray5wYjU7",
			id:         "abc",
			want:       "Report_TLa2f_abc",
		},
		"empty identifier": {
			identifier: "   ",
			id:         "12345678",
			want:       "Report_XXXXX_12345678",
		},
		"path traversal": {
			identifier: "../../etc/passwd",
			id:         "../x",
			want:       "Report_xxxxx_xxxx",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, report.BaseName(tc.identifier, tc.id))
		})
	}
}
