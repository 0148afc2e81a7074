package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/poiesic/callsearch/core"
)

const markOpen = `<mark class="highlight">`
const markClose = `</mark>`

// Highlighter wraps every occurrence of any query term in a highlight
// marker. It must only ever run against plain utterance text, before any
// surrounding HTML is generated, so markers never land inside markup.
type Highlighter struct {
	re *regexp.Regexp
}

// NewHighlighter builds a single alternation pattern from all term values.
// Every value is literal-escaped, so user input can never inject regex
// syntax; a compile failure after escaping is an internal invariant
// violation reported as ErrPatternInvalid. A nil or empty term list yields
// a pass-through highlighter.
func NewHighlighter(terms []core.SearchTerm, caseSensitive bool) (*Highlighter, error) {
	if len(terms) == 0 {
		return &Highlighter{}, nil
	}

	escaped := make([]string, 0, len(terms))
	for _, term := range terms {
		if term.Value == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(term.Value))
	}
	if len(escaped) == 0 {
		return &Highlighter{}, nil
	}

	pattern := "(" + strings.Join(escaped, "|") + ")"
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatternInvalid, err)
	}
	return &Highlighter{re: re}, nil
}

// Highlight marks all term occurrences in text. Text without terms, or a
// pass-through highlighter, returns the input unmodified.
func (h *Highlighter) Highlight(text string) string {
	if h == nil || h.re == nil {
		return text
	}
	return h.re.ReplaceAllString(text, markOpen+"$1"+markClose)
}

// HighlightWith marks occurrences like Highlight but passes every span,
// matched and unmatched alike, through transform before writing it out.
// Matching runs on the untransformed text, so the transform can never
// create or destroy occurrences. This is the entry point for HTML
// output: escaping text before matching would let a term match inside
// an entity the escaper produced.
func (h *Highlighter) HighlightWith(text string, transform func(string) string) string {
	if h == nil || h.re == nil {
		return transform(text)
	}

	locs := h.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return transform(text)
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(transform(text[last:loc[0]]))
		b.WriteString(markOpen)
		b.WriteString(transform(text[loc[0]:loc[1]]))
		b.WriteString(markClose)
		last = loc[1]
	}
	b.WriteString(transform(text[last:]))
	return b.String()
}

// Active reports whether the highlighter carries any terms.
func (h *Highlighter) Active() bool {
	return h != nil && h.re != nil
}
