// Package normalize expands search terms through a static synonym map and
// offers a fuzzy search that unions literal matches across every variant.
package normalize

import (
	"fmt"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
)

// synonyms maps a canonical term to its surface variants. Canonical forms
// are the terms an operator is most likely to type; variants are the
// strings that actually show up in log payloads.
var synonyms = map[string][]string{
	"error":        {"error", "err", "fail", "failure", "exception", "critical"},
	"registration": {"registration", "reg", "register", "registering"},
	"timeout":      {"timeout", "timed out", "expired"},
	"disconnect":   {"disconnect", "disconnected", "offline", "lost connection"},
	"reboot":       {"reboot", "rebooted", "restart", "restarted"},
	"rf":           {"rf", "radio frequency", "signal"},
	"dhcp":         {"dhcp", "dynamic host configuration"},
}

// Normalize returns the configured variants for term. If term has no
// configured entry, the result is just [term] — normalize always contains
// at least the original term.
func Normalize(term string) []string {
	if variants, ok := synonyms[term]; ok {
		return variants
	}
	return []string{term}
}

// FuzzySearch unions search_substring(rowset, variant) across every variant
// of term, preserving original row order. A row matching more than one
// variant is kept only once, at its original position.
func FuzzySearch(rs logstore.RowSet, term string) (logstore.RowSet, error) {
	if term == "" {
		return logstore.RowSet{}, fmt.Errorf("normalize: fuzzy_search: term must not be empty")
	}
	variants := Normalize(term)

	var out []logstore.Row
	for _, row := range rs.Rows() {
		for _, variant := range variants {
			if logstore.MatchesSubstring(row, variant, nil) {
				out = append(out, row)
				break
			}
		}
	}
	return logstore.NewRowSet(out), nil
}
