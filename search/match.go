package search

import (
	"strings"

	"github.com/poiesic/callsearch/core"
)

// MatchesAll reports whether text contains every term as a literal
// substring (AND semantics). Phrase and keyword terms match identically.
// When caseSensitive is false, folding is applied uniformly to both text
// and term values. An empty term list matches nothing: the parser never
// produces one for a live query, but the matcher fails closed regardless.
func MatchesAll(text string, terms []core.SearchTerm, caseSensitive bool) bool {
	if len(terms) == 0 {
		return false
	}

	searchText := text
	if !caseSensitive {
		searchText = strings.ToLower(text)
	}

	for _, term := range terms {
		value := term.Value
		if !caseSensitive {
			value = strings.ToLower(value)
		}
		if !strings.Contains(searchText, value) {
			return false
		}
	}
	return true
}

// CountMatches returns the sum, over all terms, of the number of
// non-overlapping left-to-right occurrences of the term's value in text.
// Scanning restarts immediately after each occurrence's end, so
// overlapping occurrences of the same term are not double-counted.
// Occurrences of different terms at overlapping positions each count:
// every term is scanned independently.
func CountMatches(text string, terms []core.SearchTerm, caseSensitive bool) int {
	searchText := text
	if !caseSensitive {
		searchText = strings.ToLower(text)
	}

	count := 0
	for _, term := range terms {
		value := term.Value
		if !caseSensitive {
			value = strings.ToLower(value)
		}
		if value == "" {
			continue
		}

		pos := 0
		for {
			i := strings.Index(searchText[pos:], value)
			if i < 0 {
				break
			}
			count++
			pos += i + len(value)
		}
	}
	return count
}
