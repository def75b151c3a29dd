package labels

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// parseList extracts addresses from a downloaded list. JSON bodies may be an array of strings, an object
// with an "address" string, an object with an "addresses" array, or an object whose array values hold
// strings. Anything else is read as text: one address per line, blank lines, '#' comments and lines
// containing spaces ignored.
func parseList(body []byte, contentType string) []string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	looksJSON := strings.Contains(strings.ToLower(contentType), "application/json") ||
		body[0] == '{' || body[0] == '['
	if looksJSON {
		addrs, err := parseJSONList(body)
		if err == nil {
			return addrs
		}
	}

	return parseTextList(body)
}

func parseJSONList(body []byte) ([]string, error) {
	var doc any
	err := json.Unmarshal(body, &doc)
	if err != nil {
		return nil, fmt.Errorf("decode json list: %w", err)
	}

	switch v := doc.(type) {
	case []any:
		return scalars(v), nil
	case map[string]any:
		if addr, ok := v["address"].(string); ok {
			return nonEmpty(addr), nil
		}
		if list, ok := v["addresses"].([]any); ok {
			return scalars(list), nil
		}
		var out []string
		for key := range slices.Values(slices.Sorted(maps.Keys(v))) {
			if list, ok := v[key].([]any); ok {
				out = append(out, scalars(list)...)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected json list shape %T", doc)
	}
}

// scalars keeps the string and number entries of list.
func scalars(list []any) []string {
	var out []string
	for item := range slices.Values(list) {
		switch v := item.(type) {
		case string:
			out = append(out, nonEmpty(v)...)
		case float64:
			out = append(out, fmt.Sprintf("%.0f", v))
		}
	}
	return out
}

func parseTextList(body []byte) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.ContainsAny(line, " \t") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func nonEmpty(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return []string{s}
}
