package corpus

import "errors"

var (
	// ErrDirectoryRequired is returned when a transcript directory is not provided.
	ErrDirectoryRequired = errors.New("transcript directory required")

	// ErrCorpusClosed is returned when a closed corpus is reloaded or watched.
	ErrCorpusClosed = errors.New("corpus is closed")

	// ErrNoUtterances indicates a file produced no parsable utterance lines.
	ErrNoUtterances = errors.New("no utterances parsed")
)
