package assistant

import (
	"fmt"
	"strings"
)

// buildContext renders the selected transcripts as numbered sections
// the model can cite by ID.
func buildContext(selected []condensed) string {
	var b strings.Builder
	for i, c := range selected {
		fmt.Fprintf(&b, "=== Transcript %d (ID: %s) ===\n%s\n", i+1, c.transcript.Name, c.text)
		if i < len(selected)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// buildPrompt assembles the full prompt for the generator.
func buildPrompt(question, context string, numTranscripts int) string {
	return fmt.Sprintf(`You are reviewing %d customer service transcripts. Answer the question directly.

%s

Question: %s

Answer directly. Cite transcript IDs when giving examples.`, numTranscripts, context, question)
}
