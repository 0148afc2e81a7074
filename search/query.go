package search

import (
	"regexp"
	"strings"

	"github.com/poiesic/callsearch/core"
)

// Quoted spans, non-greedy, no nesting or escapes. Empty contents are
// matched so that a bare `""` is consumed rather than leaking into the
// keyword split, but only non-empty contents become terms.
var phrasePattern = regexp.MustCompile(`"([^"]*)"`)

// ParseQuery turns a raw query string into an ordered term set.
//
// Double-quoted substrings become phrase terms and are removed from the
// working string; the remainder is split on ';' into keyword terms.
// Phrases come first (in order of appearance), then keywords. An empty
// phrase (`""`) yields no term. A query that parses to zero terms must be
// treated by callers exactly like an empty query.
func ParseQuery(raw string) []core.SearchTerm {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var terms []core.SearchTerm
	remaining := raw

	for _, m := range phrasePattern.FindAllStringSubmatch(raw, -1) {
		remaining = strings.Replace(remaining, m[0], "", 1)
		if m[1] == "" {
			continue
		}
		terms = append(terms, core.SearchTerm{Kind: core.TermPhrase, Value: m[1]})
	}

	for _, part := range strings.Split(remaining, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		terms = append(terms, core.SearchTerm{Kind: core.TermKeyword, Value: part})
	}

	return terms
}
