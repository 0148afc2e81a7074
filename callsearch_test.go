package callsearch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/callsearch/assistant/mock"
	"github.com/poiesic/callsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, dir, name, speaker, text string) {
	t.Helper()
	line := speaker + " [starttime: 0:00 - endtime: 0:05]: " + text + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(line), 0o644))
}

func TestNewApp_LoadsAndSearches(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "call1.txt", "Agent", "thanks for calling about your refund")
	writeTranscript(t, dir, "call2.txt", "Customer", "my internet is down")

	app, err := NewApp(dir)
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, 2, app.Corpus().Len())
	assert.Nil(t, app.Assistant())

	result, err := app.Searcher().Search(context.Background(), "refund", core.FilterAll, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Transcripts)
}

func TestNewApp_WithCacheSurvivesRestart(t *testing.T) {
	transcriptDir := t.TempDir()
	cacheDir := t.TempDir()
	writeTranscript(t, transcriptDir, "call1.txt", "Agent", "hello there")

	app, err := NewApp(transcriptDir, WithCache(cacheDir))
	require.NoError(t, err)
	require.NoError(t, app.Close())

	// Second start reads the cache before rescanning.
	app, err = NewApp(transcriptDir, WithCache(cacheDir))
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, 1, app.Corpus().Len())
	assert.NotNil(t, app.Corpus().Get("call1.txt"))
}

func TestNewApp_WithGenerator(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "call1.txt", "Agent", "billing question resolved")

	app, err := NewApp(dir, WithGenerator(mock.NewMockGenerator()))
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.Assistant())
	answer, err := app.Assistant().Ask(context.Background(), "what was the billing question about?")
	require.NoError(t, err)
	assert.Equal(t, 1, answer.TotalTranscripts)
}

func TestNewApp_MissingDirectory(t *testing.T) {
	_, err := NewApp(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
