package assistant

import (
	"context"

	"github.com/poiesic/callsearch/core"
)

// Generator produces a text completion for a prompt.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate sends the prompt to the model and returns its raw text
	// output. Blocking; honors ctx cancellation. Returns ErrJobFailed,
	// ErrJobTimeout, or ErrUnknownStatus for the corresponding terminal
	// states of asynchronous backends.
	Generate(ctx context.Context, prompt string) (string, error)

	// Close releases resources held by the generator.
	Close() error
}

// Corpus is the transcript collection the assistant draws context from.
type Corpus interface {
	Transcripts() []*core.Transcript
}

// Answer is the assistant's response to a question.
type Answer struct {
	// HTML is the formatted response suitable for direct rendering.
	HTML string

	// Raw is the unprocessed model output, kept for debugging.
	Raw string

	// TranscriptsAnalyzed is how many transcripts made it into the
	// context window.
	TranscriptsAnalyzed int

	// TotalTranscripts is the size of the full corpus.
	TotalTranscripts int
}
