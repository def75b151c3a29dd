package analyzer

import (
	"slices"
	"strings"

	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/facts"
)

// FlowLabel compares sender against the sources and destinations of transfers, case-insensitively:
// outgoing if it only sends, incoming if it only receives, mixed if both and unknown if neither.
func FlowLabel(sender string, transfers []facts.Transfer) facts.FlowLabel {
	sender = strings.ToLower(sender)
	if sender == "" {
		return facts.FlowUnknown
	}

	var sends, receives bool
	for tr := range slices.Values(transfers) {
		if strings.ToLower(tr.From) == sender {
			sends = true
		}
		if strings.ToLower(tr.To) == sender {
			receives = true
		}
	}

	switch {
	case sends && receives:
		return facts.FlowMixed
	case sends:
		return facts.FlowOutgoing
	case receives:
		return facts.FlowIncoming
	default:
		return facts.FlowUnknown
	}
}

// targets lists the distinct counterparties seen in a transaction, sender excluded, in first-seen order.
func targets(sender, to string, transfers []facts.Transfer) []string {
	sender = strings.ToLower(sender)
	out := []string{}
	add := func(addr string) {
		addr = strings.ToLower(addr)
		if addr == "" || addr == sender || slices.Contains(out, addr) {
			return
		}
		out = append(out, addr)
	}

	add(to)
	for tr := range slices.Values(transfers) {
		add(tr.To)
	}
	return out
}

func normalizeEVM(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

func nativeSymbol(c chain.Chain) string {
	if c == chain.Polygon {
		return facts.SymbolPOL
	}
	return facts.SymbolETH
}
