package assistant

import (
	"strings"

	"github.com/poiesic/callsearch/core"
)

// Words that signal a question about the corpus as a whole rather than
// a specific call. Aggregate questions sample evenly; specific ones
// rank by keyword overlap.
var aggregateKeywords = []string{
	"main", "common", "most", "overall", "general", "typical",
	"usually", "often", "frequently", "issues", "problems",
	"painpoints", "pain points", "challenges", "complaints",
	"summarize", "summary", "patterns", "trends",
}

// condensed is a transcript flattened to "Speaker: text" lines, the
// form the model sees.
type condensed struct {
	transcript *core.Transcript
	text       string
}

func condense(t *core.Transcript) condensed {
	var b strings.Builder
	for i, u := range t.Utterances {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(u.Speaker)
		b.WriteString(": ")
		b.WriteString(u.Text)
	}
	return condensed{transcript: t, text: b.String()}
}

func isAggregateQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range aggregateKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// selectTranscripts picks the transcripts that go into the prompt,
// within the character budget.
func (a *Assistant) selectTranscripts(question string, transcripts []*core.Transcript) []condensed {
	all := make([]condensed, len(transcripts))
	for i, t := range transcripts {
		all[i] = condense(t)
	}

	if isAggregateQuestion(question) {
		return a.sampleEvenly(all)
	}

	selected := a.rankByKeywords(question, all)
	if len(selected) == 0 {
		// Nothing overlapped the question; a representative sample
		// beats an empty context.
		return a.sampleEvenly(all)
	}
	return selected
}

// sampleEvenly strides across the corpus so the sample spans early and
// late calls alike.
func (a *Assistant) sampleEvenly(all []condensed) []condensed {
	step := len(all) / a.config.SampleTarget
	if step < 1 {
		step = 1
	}

	var selected []condensed
	total := 0
	for i := 0; i < len(all); i += step {
		c := all[i]
		if total+len(c.text) > a.config.MaxContextChars {
			break
		}
		selected = append(selected, c)
		total += len(c.text)
	}
	return selected
}

// rankByKeywords scores each transcript by how many question words it
// contains, then fills the budget highest-scoring first.
func (a *Assistant) rankByKeywords(question string, all []condensed) []condensed {
	var keywords []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		if len(w) >= a.config.MinKeywordLength {
			keywords = append(keywords, w)
		}
	}
	if len(keywords) == 0 {
		return nil
	}

	type scored struct {
		c     condensed
		score int
	}
	var ranked []scored
	for _, c := range all {
		text := strings.ToLower(c.text)
		score := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{c: c, score: score})
		}
	}

	// Stable: equal scores keep corpus order.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	var selected []condensed
	total := 0
	for _, s := range ranked {
		if total+len(s.c.text) > a.config.MaxContextChars {
			break
		}
		selected = append(selected, s.c)
		total += len(s.c.text)
	}
	return selected
}
