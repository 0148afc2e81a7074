package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/poiesic/callsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCorpus struct {
	transcripts []*core.Transcript
}

func (c *staticCorpus) Transcripts() []*core.Transcript {
	return c.transcripts
}

func testCorpus() *staticCorpus {
	return &staticCorpus{transcripts: []*core.Transcript{
		{
			Key:  "call1",
			Name: "Call1",
			Utterances: []core.Utterance{
				{Speaker: "Agent", Type: core.SpeakerAgent, Start: "0:00", End: "0:05", Text: "Hello, how can I help you today?"},
				{Speaker: "Customer", Type: core.SpeakerCustomer, Start: "0:06", End: "0:12", Text: "I need help with my refund."},
				{Speaker: "Agent", Type: core.SpeakerAgent, Start: "0:13", End: "0:20", Text: "Sure, I can help with that refund."},
			},
		},
		{
			Key:  "call2",
			Name: "Call2",
			Utterances: []core.Utterance{
				{Speaker: "Agent", Type: core.SpeakerAgent, Start: "0:00", End: "0:04", Text: "Thanks for calling billing support."},
				{Speaker: "Customer", Type: core.SpeakerCustomer, Start: "0:05", End: "0:10", Text: "My bill looks wrong this month."},
			},
		},
	}}
}

func TestNewSearcher(t *testing.T) {
	corpus := testCorpus()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(corpus)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(corpus, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(corpus, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil corpus", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrCorpusRequired, err)
	})
}

func TestSearch_EmptyQuery(t *testing.T) {
	searcher, err := NewSearcher(testCorpus())
	require.NoError(t, err)

	ctx := context.Background()
	for _, query := range []string{"", "   ", `""`, ";;"} {
		_, err := searcher.Search(ctx, query, core.FilterAll, false)
		assert.ErrorIs(t, err, ErrEmptyQuery, "query %q", query)
	}
}

func TestSearch_MatchesAndCounts(t *testing.T) {
	searcher, err := NewSearcher(testCorpus())
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), "help", core.FilterAll, false)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, 1, result.Transcripts)
	assert.Equal(t, "call1", result.Matches[0].Transcript.Key)

	utterances := result.Matches[0].Utterances
	require.Len(t, utterances, 3)
	assert.Equal(t, 0, utterances[0].Index)
	assert.Equal(t, 1, utterances[1].Index)
	assert.Equal(t, 2, utterances[2].Index)
	for _, m := range utterances {
		assert.Equal(t, 1, m.Count)
	}
	assert.Equal(t, 3, result.Matches[0].Total)
	assert.Equal(t, 3, result.Total)
	assert.GreaterOrEqual(t, result.Elapsed.Nanoseconds(), int64(0))
}

func TestSearch_ZeroMatchTranscriptsOmitted(t *testing.T) {
	searcher, err := NewSearcher(testCorpus())
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), "billing", core.FilterAll, false)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "call2", result.Matches[0].Transcript.Key)
}

func TestSearch_AndAcrossTerms(t *testing.T) {
	searcher, err := NewSearcher(testCorpus())
	require.NoError(t, err)

	// Both terms must land in the same utterance.
	result, err := searcher.Search(context.Background(), "help;refund", core.FilterAll, false)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	utterances := result.Matches[0].Utterances
	require.Len(t, utterances, 2)
	assert.Equal(t, 1, utterances[0].Index)
	assert.Equal(t, 2, utterances[1].Index)
}

func TestSearch_SpeakerFilterInvisibility(t *testing.T) {
	searcher, err := NewSearcher(testCorpus())
	require.NoError(t, err)
	ctx := context.Background()

	all, err := searcher.Search(ctx, "help", core.FilterAll, false)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	// Filtered utterances vanish from both matching and counting.
	agentOnly, err := searcher.Search(ctx, "help", core.FilterAgent, false)
	require.NoError(t, err)
	assert.Equal(t, 2, agentOnly.Total)

	customerOnly, err := searcher.Search(ctx, "help", core.FilterCustomer, false)
	require.NoError(t, err)
	assert.Equal(t, 1, customerOnly.Total)

	// Filtering to a speaker who never says the term drops the transcript.
	none, err := searcher.Search(ctx, "billing", core.FilterCustomer, false)
	require.NoError(t, err)
	assert.Empty(t, none.Matches)
	assert.Equal(t, 0, none.Transcripts)
}

func TestSearch_CaseSensitivity(t *testing.T) {
	searcher, err := NewSearcher(testCorpus())
	require.NoError(t, err)
	ctx := context.Background()

	insensitive, err := searcher.Search(ctx, "hello", core.FilterAll, false)
	require.NoError(t, err)
	assert.Equal(t, 1, insensitive.Total)

	sensitive, err := searcher.Search(ctx, "hello", core.FilterAll, true)
	require.NoError(t, err)
	assert.Empty(t, sensitive.Matches)
}

func TestSearch_Idempotent(t *testing.T) {
	searcher, err := NewSearcher(testCorpus())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := searcher.Search(ctx, "refund", core.FilterAll, false)
	require.NoError(t, err)
	second, err := searcher.Search(ctx, "refund", core.FilterAll, false)
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Transcripts, second.Transcripts)
	assert.Equal(t, first.Matches, second.Matches)
}

type recordingMonitor struct {
	started     string
	termCount   int
	skipped     int
	matched     []string
	finished    bool
	finalResult *core.SearchResult
}

func (m *recordingMonitor) Start(query string)                 { m.started = query }
func (m *recordingMonitor) AfterParse(terms []core.SearchTerm) { m.termCount = len(terms) }
func (m *recordingMonitor) UtteranceSkipped(key string, index int) {
	m.skipped++
}
func (m *recordingMonitor) TranscriptMatched(key string, matches int) {
	m.matched = append(m.matched, key)
}
func (m *recordingMonitor) Finish(result *core.SearchResult) {
	m.finished = true
	m.finalResult = result
}

func TestSearchWithMonitor(t *testing.T) {
	searcher, err := NewSearcher(testCorpus())
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	result, err := searcher.SearchWithMonitor(context.Background(), "help", core.FilterAgent, false, monitor)
	require.NoError(t, err)

	assert.Equal(t, "help", monitor.started)
	assert.Equal(t, 1, monitor.termCount)
	assert.Equal(t, 2, monitor.skipped)
	assert.Equal(t, []string{"call1"}, monitor.matched)
	assert.True(t, monitor.finished)
	assert.Same(t, result, monitor.finalResult)
}
