package storage

import (
	"context"

	"github.com/poiesic/callsearch/core"
)

// TranscriptRepository caches parsed transcripts across restarts.
// Implementations must be thread-safe and support concurrent access.
type TranscriptRepository interface {
	// PutTranscripts stores or replaces transcripts, keyed by StorageID.
	PutTranscripts(ctx context.Context, transcripts ...*core.Transcript) error

	// GetTranscript retrieves a transcript by its file key.
	// Returns ErrNotFound if the transcript doesn't exist.
	GetTranscript(ctx context.Context, key string) (*core.Transcript, error)

	// AllTranscripts retrieves every cached transcript, ordered by key.
	AllTranscripts(ctx context.Context) ([]*core.Transcript, error)

	// DeleteTranscripts removes transcripts by their file keys.
	// Missing keys are ignored: deletes are reconciliation, not lookups.
	DeleteTranscripts(ctx context.Context, keys ...string) error

	// CountTranscripts returns the number of cached transcripts.
	CountTranscripts(ctx context.Context) (int, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
