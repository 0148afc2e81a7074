package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/callsearch/core"
	"github.com/poiesic/callsearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.TranscriptRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testTranscript(key string) *core.Transcript {
	return &core.Transcript{
		Key:      key,
		Name:     key,
		LoadedAt: time.Now().UTC().Truncate(time.Microsecond),
		Utterances: []core.Utterance{
			{Speaker: "Agent", Type: core.SpeakerAgent, Start: "0:00", End: "0:05", Text: "hello from " + key},
			{Speaker: "Customer", Type: core.SpeakerCustomer, Start: "0:06", End: "0:10", Text: "hi"},
		},
	}
}

func TestTranscriptRepository_PutAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	original := testTranscript("call1.txt")
	require.NoError(t, repo.PutTranscripts(ctx, original))

	got, err := repo.GetTranscript(ctx, "call1.txt")
	require.NoError(t, err)
	assert.Equal(t, original.Key, got.Key)
	assert.Equal(t, original.Name, got.Name)
	assert.Equal(t, original.Utterances, got.Utterances)
	assert.True(t, original.LoadedAt.Equal(got.LoadedAt))
}

func TestTranscriptRepository_PutRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	missing := testTranscript("call1.txt")
	missing.Key = ""
	err := repo.PutTranscripts(context.Background(), missing)
	assert.ErrorIs(t, err, core.ErrInvalidTranscript)
}

func TestTranscriptRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetTranscript(context.Background(), "nope.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTranscriptRepository_PutReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testTranscript("call1.txt")
	require.NoError(t, repo.PutTranscripts(ctx, first))

	updated := testTranscript("call1.txt")
	updated.Utterances = updated.Utterances[:1]
	require.NoError(t, repo.PutTranscripts(ctx, updated))

	got, err := repo.GetTranscript(ctx, "call1.txt")
	require.NoError(t, err)
	assert.Len(t, got.Utterances, 1)

	count, err := repo.CountTranscripts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTranscriptRepository_AllTranscriptsOrderedByKey(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.PutTranscripts(ctx,
		testTranscript("c.txt"),
		testTranscript("a.txt"),
		testTranscript("b.txt"),
	))

	all, err := repo.AllTranscripts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a.txt", all[0].Key)
	assert.Equal(t, "b.txt", all[1].Key)
	assert.Equal(t, "c.txt", all[2].Key)
}

func TestTranscriptRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.PutTranscripts(ctx, testTranscript("call1.txt"), testTranscript("call2.txt")))
	require.NoError(t, repo.DeleteTranscripts(ctx, "call1.txt"))

	_, err := repo.GetTranscript(ctx, "call1.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	count, err := repo.CountTranscripts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTranscriptRepository_DeleteMissingKeyIgnored(t *testing.T) {
	repo := newTestRepo(t)
	assert.NoError(t, repo.DeleteTranscripts(context.Background(), "never-existed.txt"))
}

func TestTranscriptRepository_CountEmpty(t *testing.T) {
	repo := newTestRepo(t)

	count, err := repo.CountTranscripts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
