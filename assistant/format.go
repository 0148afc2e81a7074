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

package assistant

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Models leak their scaffolding: reasoning tags, instruction echoes,
// half-markdown. FormatResponse scrubs the raw output and shapes it
// into the HTML fragments the answer panel renders.

var (
	thinkBlockPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

	cotPrefixPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)^Answer with just text.*?\.\s*`),
		regexp.MustCompile(`(?is)^Okay,?\s*so I need to.*?carefully\.\s*`),
		regexp.MustCompile(`(?is)^Let me go through.*?\.\s*`),
		regexp.MustCompile(`(?is)^Looking at the.*?:\s*`),
		regexp.MustCompile(`(?is)^I see that.*?\.\s*`),
	}

	instructionPrefixPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^Now,?\s*Answer.*?:\s*`),
		regexp.MustCompile(`(?im)^Based on the transcripts.*?:\s*`),
		regexp.MustCompile(`(?im)^Here is my analysis:?\s*`),
		regexp.MustCompile(`(?im)^Format as per example.*?\.\s*`),
		regexp.MustCompile(`(?im)^Avoid unnecessary details\.?\s*`),
		regexp.MustCompile(`(?im)^\([^)]*\)\s*`),
		regexp.MustCompile(`(?im)^Use bold.*?\.\s*`),
		regexp.MustCompile(`(?im)^Note:.*?\.\s*`),
		regexp.MustCompile(`(?im)^The example.*?\.\s*`),
		regexp.MustCompile(`(?im)^I'll.*?\.\s*`),
		regexp.MustCompile(`(?im)^Okay,?\s*`),
	}

	boldPattern          = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strayBoldPattern     = regexp.MustCompile(`\*\*\\`)
	escapedQuotePattern  = regexp.MustCompile(`\\+"`)
	transcriptNumPattern = regexp.MustCompile(`Transcript\s*(\d+)`)
	transcriptIDPattern  = regexp.MustCompile(`\(ID:\s*([a-f0-9-]+)\)`)
	sentenceSplitPattern = regexp.MustCompile(`(?:[.!?])\s+`)
	stepPattern          = regexp.MustCompile(`(?i)^(First|Second|Third|Then|Next|Finally|Once|After|If)`)
	examplePattern       = regexp.MustCompile(`(?i)^(For example|In Transcript|As seen in)`)
)

// jsonFindings is the structured shape some models answer in despite
// being asked for prose.
type jsonFindings struct {
	Summary     string `json:"summary"`
	KeyFindings []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"key_findings"`
	Recommendations []string `json:"recommendations"`
}

// FormatResponse turns raw model output into display HTML.
func FormatResponse(raw string) string {
	text := strings.TrimSpace(raw)

	// Reasoning models emit their chain of thought before </think>;
	// only what follows is the answer.
	if i := strings.LastIndex(text, "</think>"); i >= 0 {
		text = strings.TrimSpace(text[i+len("</think>"):])
	}
	text = thinkBlockPattern.ReplaceAllString(text, "")

	for _, p := range cotPrefixPatterns {
		text = p.ReplaceAllString(text, "")
	}
	for _, p := range instructionPrefixPatterns {
		text = p.ReplaceAllString(text, "")
	}

	text = strayBoldPattern.ReplaceAllString(text, "")
	text = escapedQuotePattern.ReplaceAllString(text, `"`)
	text = strings.ReplaceAll(text, "---", "")
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "{") {
		if html, ok := formatJSONFindings(text); ok {
			return html
		}
	}

	return formatProse(text)
}

// formatJSONFindings renders a structured findings answer. Returns
// ok=false when the text isn't usable JSON, falling back to prose.
func formatJSONFindings(text string) (string, bool) {
	jsonStr, ok := completeJSONObject(text)
	if !ok {
		return "", false
	}

	var data jsonFindings
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", false
	}

	var b strings.Builder
	if data.Summary != "" {
		fmt.Fprintf(&b, "<p><strong>%s</strong></p>", data.Summary)
	}
	if len(data.KeyFindings) > 0 {
		b.WriteString("<div class='findings'>")
		for i, finding := range data.KeyFindings {
			title := finding.Title
			if title == "" {
				title = fmt.Sprintf("Finding %d", i+1)
			}
			b.WriteString("<div class='finding'>")
			fmt.Fprintf(&b, "<div class='finding-title'>%d. %s</div>", i+1, title)
			fmt.Fprintf(&b, "<div class='finding-desc'>%s</div>", finding.Description)
			b.WriteString("</div>")
		}
		b.WriteString("</div>")
	}
	if len(data.Recommendations) > 0 {
		b.WriteString("<div class='recommendations'>")
		b.WriteString("<div class='rec-title'>Recommendations</div>")
		for _, rec := range data.Recommendations {
			fmt.Fprintf(&b, "<div class='rec-item'>%s</div>", rec)
		}
		b.WriteString("</div>")
	}

	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// completeJSONObject extracts the first brace-balanced object from text.
// Model output often trails the JSON with commentary.
func completeJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// formatProse shapes a plain-text answer: transcript references become
// styled spans, step-like sentences become numbered items, the rest
// groups into short paragraphs.
func formatProse(text string) string {
	text = transcriptNumPattern.ReplaceAllString(text, `<span class="transcript-ref">Transcript $1</span>`)
	text = transcriptIDPattern.ReplaceAllString(text, `<span class="transcript-ref">$1</span>`)

	sentences := splitSentences(text)

	if len(sentences) <= 3 {
		text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
		return fmt.Sprintf("<div class='response-content'><p>%s</p></div>", text)
	}

	var b strings.Builder
	b.WriteString("<div class='response-content'>")

	var para []string
	flush := func() {
		if len(para) > 0 {
			fmt.Fprintf(&b, "<p>%s</p>", strings.Join(para, " "))
			para = nil
		}
	}

	stepCount := 0
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		sentence = boldPattern.ReplaceAllString(sentence, "<strong>$1</strong>")

		switch {
		case stepPattern.MatchString(sentence):
			flush()
			stepCount++
			fmt.Fprintf(&b, "<div class='step-item'><div class='step-number'>%d</div><div class='step-content'>%s</div></div>", stepCount, sentence)
		case examplePattern.MatchString(sentence):
			flush()
			fmt.Fprintf(&b, "<div class='finding'><div class='finding-desc'>%s</div></div>", sentence)
		default:
			para = append(para, sentence)
			if len(para) >= 2 {
				flush()
			}
		}
	}
	flush()

	b.WriteString("</div>")
	return b.String()
}

// splitSentences breaks text on sentence-ending punctuation, keeping
// the punctuation with its sentence.
func splitSentences(text string) []string {
	locs := sentenceSplitPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var sentences []string
	prev := 0
	for _, loc := range locs {
		// loc[0]+1 keeps the terminator with the preceding sentence.
		sentences = append(sentences, text[prev:loc[0]+1])
		prev = loc[1]
	}
	if prev < len(text) {
		sentences = append(sentences, text[prev:])
	}
	return sentences
}
