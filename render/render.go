// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/poiesic/callsearch/core"
	"github.com/poiesic/callsearch/search"
)

// Renderer turns search results into HTML fragments for one query.
type Renderer struct {
	highlighter *search.Highlighter
}

// NewRenderer creates a renderer for the given query terms.
func NewRenderer(terms []core.SearchTerm, caseSensitive bool) (*Renderer, error) {
	highlighter, err := search.NewHighlighter(terms, caseSensitive)
	if err != nil {
		return nil, err
	}
	return &Renderer{highlighter: highlighter}, nil
}

// markText wraps term occurrences in highlight markers and escapes
// everything else. Matching runs on the raw text and each span escapes
// separately: escaping first would let a term match inside an entity
// the escaper produced (the term "amp" splitting "&amp;" in two).
func (r *Renderer) markText(text string) string {
	return r.highlighter.HighlightWith(text, html.EscapeString)
}

// Results renders the full set of result cards.
func (r *Renderer) Results(result *core.SearchResult) string {
	if len(result.Matches) == 0 {
		return NoMatchesHTML()
	}

	var b strings.Builder
	for _, match := range result.Matches {
		r.writeCard(&b, match)
	}
	return b.String()
}

func (r *Renderer) writeCard(b *strings.Builder, match core.TranscriptMatches) {
	plural := "es"
	if match.Total == 1 {
		plural = ""
	}

	fmt.Fprintf(b, `<div class="transcript-card" data-key="%s">`, html.EscapeString(match.Transcript.Key))
	b.WriteString(`<div class="card-header" onclick="toggleCard(this)">`)
	fmt.Fprintf(b, `<div class="card-title"><span class="card-name">%s</span></div>`, html.EscapeString(match.Transcript.Name))
	b.WriteString(`<div class="card-meta">`)
	fmt.Fprintf(b, `<button class="view-full-btn" onclick="event.stopPropagation(); openTranscriptModal('%s')">View Full</button>`, html.EscapeString(match.Transcript.Key))
	fmt.Fprintf(b, `<span class="match-count">%d match%s</span>`, match.Total, plural)
	b.WriteString(`</div></div>`)

	b.WriteString(`<div class="card-content"><div class="utterances-list">`)
	r.writeUtterances(b, match.Utterances)
	b.WriteString(`</div></div></div>`)
}

// writeUtterances renders matched utterances in transcript order,
// marking every skipped stretch between two shown utterances with a
// context indicator. No indicator before the first utterance, even
// when it isn't the transcript's opening line.
func (r *Renderer) writeUtterances(b *strings.Builder, utterances []core.UtteranceMatch) {
	prev := -2
	for _, m := range utterances {
		if m.Index > prev+1 && prev >= 0 {
			b.WriteString(`<div class="context-indicator"><div class="context-dots"><span></span><span></span><span></span></div></div>`)
		}

		b.WriteString(`<div class="utterance">`)
		fmt.Fprintf(b, `<div class="utterance-speaker"><span class="speaker-badge %s">%s</span></div>`,
			m.Utterance.Type.String(), speakerLabel(m.Utterance.Type))
		b.WriteString(`<div class="utterance-content">`)
		fmt.Fprintf(b, `<div class="utterance-time">%s - %s</div>`,
			html.EscapeString(m.Utterance.Start), html.EscapeString(m.Utterance.End))
		fmt.Fprintf(b, `<div class="utterance-text">%s</div>`, r.markText(m.Utterance.Text))
		b.WriteString(`</div></div>`)

		prev = m.Index
	}
}

// Transcript renders a full transcript as the modal body: every
// utterance, with the same highlighting as the cards.
func (r *Renderer) Transcript(t *core.Transcript) string {
	var b strings.Builder
	for _, u := range t.Utterances {
		b.WriteString(`<div class="modal-utterance">`)
		fmt.Fprintf(&b, `<div class="modal-speaker"><span class="speaker-badge %s">%s</span></div>`,
			u.Type.String(), speakerLabel(u.Type))
		b.WriteString(`<div class="modal-content">`)
		fmt.Fprintf(&b, `<div class="modal-time">%s - %s</div>`,
			html.EscapeString(u.Start), html.EscapeString(u.End))
		fmt.Fprintf(&b, `<div class="modal-text">%s</div>`, r.markText(u.Text))
		b.WriteString(`</div></div>`)
	}
	return b.String()
}

func speakerLabel(t core.SpeakerType) string {
	if t == core.SpeakerAgent {
		return "Agent"
	}
	return "Customer"
}

// EmptyStateHTML is shown before any query is entered, or when the
// query parses to zero terms.
func EmptyStateHTML(transcriptCount int) string {
	return fmt.Sprintf(`<div class="empty-state"><h3>Start typing to search</h3><p>Search through %d transcripts. Use quotes for exact phrases and semicolons for multiple terms.</p></div>`, transcriptCount)
}

// NoMatchesHTML is shown when a live query matched nothing.
func NoMatchesHTML() string {
	return `<div class="empty-state"><h3>No matches found</h3><p>Try different keywords or adjust your filters.</p></div>`
}
