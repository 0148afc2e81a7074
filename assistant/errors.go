package assistant

import "errors"

var (
	// ErrCorpusRequired is returned when a corpus is not provided.
	ErrCorpusRequired = errors.New("corpus required")

	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrQuestionRequired is returned when the question is empty.
	ErrQuestionRequired = errors.New("question required")

	// ErrNoTranscripts is returned when the corpus holds no transcripts.
	ErrNoTranscripts = errors.New("no transcripts loaded")

	// ErrJobFailed indicates the generation job reached the failed state.
	ErrJobFailed = errors.New("generation job failed")

	// ErrJobTimeout indicates the generation job did not finish within
	// the configured wait window.
	ErrJobTimeout = errors.New("generation job timed out")

	// ErrUnknownStatus indicates the backend reported a status outside
	// its documented state machine.
	ErrUnknownStatus = errors.New("unknown job status")
)
