package labels

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	CategoryStablecoins = "stable_contracts"
	CategoryExchanges   = "exchanges"
	CategoryMixers      = "mixers_bridges"
	CategoryPonzi       = "ponzi_contracts"
	CategoryScam        = "scam_addresses"
)

// Categories lists every category a Set is guaranteed to carry, possibly empty.
var Categories = []string{
	CategoryStablecoins,
	CategoryExchanges,
	CategoryMixers,
	CategoryPonzi,
	CategoryScam,
}

// Set maps a category to the lower-cased addresses labelled with it.
type Set map[string]map[string]struct{}

// Contains reports whether addr carries the category label. Matching is case-insensitive.
func (s Set) Contains(category, addr string) bool {
	_, ok := s[category][normalize(addr)]
	return ok
}

// Match lists the categories addr is labelled with, in Categories order followed by any extra ones sorted.
func (s Set) Match(addr string) []string {
	addr = normalize(addr)
	if addr == "" {
		return nil
	}

	var out []string
	for category := range slices.Values(categoryOrder(s)) {
		if _, ok := s[category][addr]; ok {
			out = append(out, category)
		}
	}
	return out
}

// Len returns the number of labelled addresses across all categories.
func (s Set) Len() int {
	var n int
	for addrs := range maps.Values(s) {
		n += len(addrs)
	}
	return n
}

func (s Set) add(category string, addrs ...string) {
	bucket, ok := s[category]
	if !ok {
		bucket = make(map[string]struct{}, len(addrs))
		s[category] = bucket
	}
	for addr := range slices.Values(addrs) {
		addr = normalize(addr)
		if addr == "" {
			continue
		}
		bucket[addr] = struct{}{}
	}
}

func (s Set) merge(other Set) {
	for category, addrs := range other {
		s.add(category, slices.Collect(maps.Keys(addrs))...)
	}
}

func categoryOrder(s Set) []string {
	order := slices.Clone(Categories)
	var extra []string
	for category := range maps.Keys(s) {
		if !slices.Contains(Categories, category) {
			extra = append(extra, category)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}

func normalize(addr string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(addr), `"'`))
}

// Seeds returns the built-in labels that are always present, even when every remote source is down:
// the major stablecoin contracts on ethereum, polygon and tron.
func Seeds() Set {
	s := make(Set, len(Categories))
	for category := range slices.Values(Categories) {
		s[category] = map[string]struct{}{}
	}
	s.add(CategoryStablecoins,
		// ethereum: USDT, USDC, DAI
		"0xdac17f958d2ee523a2206206994597c13d831ec7",
		"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		"0x6b175474e89094c44da98b954eedeac495271d0f",
		// polygon: USDT, USDC (bridged), DAI
		"0xc2132d05d31c914a87c6611c10748aeb04b58e8f",
		"0x2791bca1f2de4661ed88a30c99a7a9449aa84174",
		"0x8f3cf7ad23cd3cadbd9735aff958023239c6a063",
		// tron: USDT TRC-20
		"TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t",
	)
	return s
}

// Sources maps a category to the URLs its addresses are fetched from.
type Sources map[string][]string

// DefaultSources returns the public community lists used when no sources file replaces them.
func DefaultSources() Sources {
	return Sources{
		CategoryExchanges: {
			"https://raw.githubusercontent.com/bitcoin/bitcoin.org/master/exchanges.json",
		},
		CategoryMixers: {
			"https://raw.githubusercontent.com/OffcierCia/DeFi-Developer-Road-Map/main/src/resources/addresses/mixers.txt",
		},
		CategoryPonzi: {
			"https://raw.githubusercontent.com/MythXSecurity/known-bad-contracts/master/addresses.txt",
		},
		CategoryScam: {
			"https://raw.githubusercontent.com/WatchPug/scam-addresses/main/addresses.txt",
		},
		CategoryStablecoins: {
			"https://raw.githubusercontent.com/ethereum-lists/tokens/master/tokens/eth/0xdac17f958d2ee523a2206206994597c13d831ec7.json",
			"https://raw.githubusercontent.com/ethereum-lists/tokens/master/tokens/eth/0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48.json",
			"https://raw.githubusercontent.com/ethereum-lists/tokens/master/tokens/eth/0x6b175474e89094c44da98b954eedeac495271d0f.json",
		},
	}
}

// Extend returns a copy of s with the URLs of other appended per category, duplicates dropped.
func (s Sources) Extend(other Sources) Sources {
	out := make(Sources, len(s)+len(other))
	for category, urls := range s {
		out[category] = slices.Clone(urls)
	}
	for category, urls := range other {
		for url := range slices.Values(urls) {
			if !slices.Contains(out[category], url) {
				out[category] = append(out[category], url)
			}
		}
	}
	return out
}

// Count returns the total number of URLs.
func (s Sources) Count() int {
	var n int
	for urls := range maps.Values(s) {
		n += len(urls)
	}
	return n
}

// ParseURLOverride decodes a JSON object of category to URL list, e.g. the LABELS_URLS_JSON variable.
// Blank input is an empty override.
func ParseURLOverride(raw string) (Sources, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sources{}, nil
	}

	var out Sources
	err := json.Unmarshal([]byte(raw), &out)
	if err != nil {
		return nil, fmt.Errorf("parse label url override: %w", err)
	}
	return out, nil
}
