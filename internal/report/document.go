package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hedisam/chaininvestigator/internal/chain"
	"github.com/hedisam/chaininvestigator/internal/facts"
)

// NA is printed for every field the analysis could not establish.
const NA = "N/A"

const maxTargets = 50

type line struct {
	label string
	text  string
}

type section struct {
	title   string
	fields  []line
	bullets []string
	text    string
}

type document struct {
	title    string
	band     facts.Band
	sections []section
	footer   []string
}

func na[T any](v facts.Value[T]) string {
	if !v.IsKnown() {
		return NA
	}
	s := v.String()
	if s == "" {
		return NA
	}
	return s
}

func timestamp(v facts.Value[time.Time]) string {
	ts, ok := v.Get()
	if !ok {
		return NA
	}
	return ts.UTC().Format(time.DateTime)
}

func riskLine(rec *facts.Record) string {
	if !rec.RiskScore.IsKnown() {
		return NA
	}
	return fmt.Sprintf("%s/100 (%s)", na(rec.RiskScore), strings.ToUpper(na(rec.RiskBand)))
}

func account(v facts.Value[facts.Account]) string {
	acc, ok := v.Get()
	if !ok {
		return NA
	}
	return fmt.Sprintf("%s (transactions: %s)", na(acc.Balance), na(acc.TxCount))
}

func build(a *facts.Analysis, aiText string, now time.Time) *document {
	rec := a.Record
	doc := &document{
		title: "Analysis Report: Wallet / Transaction",
		band:  rec.RiskBand.OrElse(facts.BandLow),
	}

	general := section{
		title: "1. General summary",
		fields: []line{
			{"Identifier", rec.Identifier},
			{"Kind", string(rec.Kind)},
			{"Network", na(rec.Network)},
			{"Block", na(rec.Block)},
			{"Date (UTC)", timestamp(rec.Timestamp)},
			{"Status", na(rec.Status)},
			{"Risk", riskLine(rec)},
		},
		bullets: slices.Clone(rec.Summary),
	}
	if rec.Kind == chain.KindInvalid {
		general.fields = append(general.fields, line{"Reason", rec.Reason})
	}
	doc.sections = append(doc.sections, general)

	doc.sections = append(doc.sections, section{
		title: "2. Basic data",
		fields: []line{
			{"Source (from)", na(rec.From)},
			{"Destination (to)", na(rec.To)},
			{"Transaction hash", na(rec.TxHash)},
			{"Fee (native)", na(rec.Fee)},
			{"Flow", na(rec.FlowLabel)},
		},
	})

	balances := section{
		title: "3. Balances",
		fields: []line{
			{"Source account", account(rec.Balances.From)},
			{"Destination account", account(rec.Balances.To)},
		},
	}
	if tokens, ok := rec.Tokens.Get(); ok {
		for h := range slices.Values(tokens) {
			balances.bullets = append(balances.bullets, fmt.Sprintf("%s: %g (%s)", h.Symbol, h.Balance, h.Contract))
		}
		if len(tokens) == 0 {
			balances.bullets = append(balances.bullets, "No token holdings visible.")
		}
	}
	doc.sections = append(doc.sections, balances)

	targets := section{title: "4. Detected targets"}
	for addr := range slices.Values(rec.Targets[:min(len(rec.Targets), maxTargets)]) {
		targets.bullets = append(targets.bullets, addr)
	}
	if len(targets.bullets) == 0 {
		targets.text = NA
	}
	doc.sections = append(doc.sections, targets)

	doc.sections = append(doc.sections, section{
		title:   "5. Technical interpretation",
		bullets: interpretation(a),
	})

	reasons := rec.RiskReasons
	if len(reasons) == 0 {
		reasons = []string{"No relevant signals with the current rules."}
	}
	doc.sections = append(doc.sections, section{
		title:   "6. Risk assessment",
		bullets: slices.Clone(reasons),
	})

	doc.sections = append(doc.sections, section{
		title: "7. Conclusion",
		text: fmt.Sprintf("Overall risk level: %s. Estimated score: %s/100. This result combines public list "+
			"matches (when available) with on-chain heuristics on flow, activity and token usage.",
			strings.ToUpper(na(rec.RiskBand)), na(rec.RiskScore)),
	})

	doc.sections = append(doc.sections, section{
		title: "8. Recommendations",
		bullets: []string{
			"Manually verify the destination when the risk is MEDIUM or HIGH.",
			"Avoid interacting with contracts or addresses flagged as scam or ponzi.",
			"If the wallet is your own operational wallet, enable alerts and spending limits.",
		},
	})

	doc.sections = append(doc.sections, section{
		title: "9. Clarifications",
		bullets: []string{
			NA + ": not available in this capture or not applicable to the kind of input.",
			"This report reflects the data collected at query time. The risk rating may change with new on-chain events.",
		},
	})

	if aiText == "" {
		aiText = NA
	}
	doc.sections = append(doc.sections, section{
		title: "10. AI-assisted analysis",
		text:  aiText,
	})

	doc.footer = []string{
		"Issued by the blockchain analysis service, " + now.UTC().Format(time.DateTime) + " UTC.",
		"Preliminary document for internal or academic use. It is not forensic evidence.",
	}
	return doc
}

func interpretation(a *facts.Analysis) []string {
	rec := a.Record
	var notes []string
	if flow, ok := rec.FlowLabel.Get(); ok {
		notes = append(notes, fmt.Sprintf("Detected flow: %s.", flow))
	}
	if network, ok := rec.Network.Get(); ok {
		notes = append(notes, fmt.Sprintf("Analysis performed on %s.", strings.ToUpper(network.String())))
	}
	if len(a.Transfers) == 0 {
		notes = append(notes, "No token transfers were detected in this capture.")
	} else {
		notes = append(notes, fmt.Sprintf("%d token transfer(s) decoded from the receipt.", len(a.Transfers)))
	}
	if len(a.Events) > 0 {
		notes = append(notes, fmt.Sprintf("%d event(s) observed.", len(a.Events)))
	}
	return notes
}
