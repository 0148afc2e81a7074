package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/callsearch/core"
	"github.com/poiesic/callsearch/storage"
)

// TranscriptRepository implements storage.TranscriptRepository for BadgerDB.
type TranscriptRepository struct {
	backend *Backend
}

var _ storage.TranscriptRepository = (*TranscriptRepository)(nil)

// NewTranscriptRepository creates a new TranscriptRepository.
func NewTranscriptRepository(backend *Backend) (*TranscriptRepository, error) {
	return &TranscriptRepository{backend: backend}, nil
}

// Close is a no-op; the repository owns no resources beyond the backend.
func (r *TranscriptRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TranscriptRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutTranscripts stores or replaces transcripts, keyed by StorageID.
// The file-key index is written alongside so lookups and ordered scans
// never touch record bodies.
func (r *TranscriptRepository) PutTranscripts(ctx context.Context, transcripts ...*core.Transcript) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, transcript := range transcripts {
			if err := core.ValidateTranscript(transcript); err != nil {
				return err
			}
			id := transcript.StorageID()

			key := makeTranscriptKey(id)
			value := storage.MarshalTranscript(transcript)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			fileKey := makeTranscriptFileKey(transcript.Key)
			if err := tx.Set(fileKey, storage.MarshalID(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetTranscript retrieves a transcript by its file key.
func (r *TranscriptRepository) GetTranscript(ctx context.Context, key string) (*core.Transcript, error) {
	var transcript *core.Transcript

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := r.readFileKeyIndex(tx, key)
		if err != nil {
			return err
		}

		transcript, err = r.readTranscript(tx, makeTranscriptKey(id))
		if err != nil {
			return err
		}
		if transcript == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return transcript, nil
}

// AllTranscripts retrieves every cached transcript, ordered by file key.
func (r *TranscriptRepository) AllTranscripts(ctx context.Context) ([]*core.Transcript, error) {
	var transcripts []*core.Transcript

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(transcriptKeyPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			transcript, err := r.readTranscript(tx, makeTranscriptKey(id))
			if err != nil {
				return err
			}
			if transcript == nil {
				// Dangling index entry; the record was removed out of band.
				continue
			}
			transcripts = append(transcripts, transcript)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return transcripts, nil
}

// DeleteTranscripts removes transcripts by their file keys.
// Missing keys are ignored.
func (r *TranscriptRepository) DeleteTranscripts(ctx context.Context, keys ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range keys {
			id, err := r.readFileKeyIndex(tx, key)
			if err == storage.ErrNotFound {
				continue
			}
			if err != nil {
				return err
			}

			if err := tx.Delete(makeTranscriptKey(id)); err != nil {
				return err
			}
			if err := tx.Delete(makeTranscriptFileKey(key)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountTranscripts returns the number of cached transcripts.
func (r *TranscriptRepository) CountTranscripts(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(transcriptKeyPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// readFileKeyIndex resolves a file key to a record ID.
func (r *TranscriptRepository) readFileKeyIndex(tx *badger.Txn, key string) (core.ID, error) {
	item, err := tx.Get(makeTranscriptFileKey(key))
	if err == badger.ErrKeyNotFound {
		return 0, storage.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	var id core.ID
	err = item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	})
	return id, err
}

// readTranscript reads and deserializes a transcript record.
// Returns nil (no error) if the key doesn't exist.
func (r *TranscriptRepository) readTranscript(tx *badger.Txn, key []byte) (*core.Transcript, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var transcript *core.Transcript
	err = item.Value(func(val []byte) error {
		var err error
		transcript, err = storage.UnmarshalTranscript(val)
		return err
	})
	return transcript, err
}
