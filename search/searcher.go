package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/callsearch/core"
)

// Corpus is the read-only transcript collection the searcher scans.
// Implementations must return transcripts in stable original order.
type Corpus interface {
	Transcripts() []*core.Transcript
}

// Searcher runs the full search pipeline over an injected corpus.
// The corpus is read-only for the searcher's lifetime, so concurrent
// searches are safe without locking.
type Searcher struct {
	corpus Corpus
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the given corpus.
func NewSearcher(corpus Corpus, opts ...Option) (*Searcher, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}

	s := &Searcher{
		corpus: corpus,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search scans every utterance of every transcript against the query.
// Returns ErrEmptyQuery when the query parses to zero terms; that is the
// defined no-op state, not a failure. Search itself never fails: malformed
// utterances degrade to empty text and the scan always completes.
func (s *Searcher) Search(ctx context.Context, query string, filter core.SpeakerFilter, caseSensitive bool) (*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, filter, caseSensitive, nil)
}

// SearchWithMonitor runs Search with monitoring callbacks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, filter core.SpeakerFilter, caseSensitive bool, monitor SearchMonitor) (*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)
	started := time.Now()

	terms := ParseQuery(query)
	monitor.AfterParse(terms)
	if len(terms) == 0 {
		return nil, ErrEmptyQuery
	}

	result := &core.SearchResult{}

	for _, transcript := range s.corpus.Transcripts() {
		var matches []core.UtteranceMatch
		total := 0

		for i, utterance := range transcript.Utterances {
			// Filtered utterances are invisible to matching and counting,
			// not merely hidden from display.
			if !filter.Allows(utterance.Type) {
				monitor.UtteranceSkipped(transcript.Key, i)
				continue
			}

			if !MatchesAll(utterance.Text, terms, caseSensitive) {
				continue
			}

			count := CountMatches(utterance.Text, terms, caseSensitive)
			matches = append(matches, core.UtteranceMatch{
				Utterance: utterance,
				Index:     i,
				Count:     count,
			})
			total += count
		}

		// Transcripts with no qualifying match are omitted entirely.
		if len(matches) == 0 {
			continue
		}

		monitor.TranscriptMatched(transcript.Key, len(matches))
		result.Matches = append(result.Matches, core.TranscriptMatches{
			Transcript: transcript,
			Utterances: matches,
			Total:      total,
		})
		result.Total += total
	}

	result.Transcripts = len(result.Matches)
	result.Elapsed = time.Since(started)

	s.logger.Debug("search complete",
		"query", query,
		"transcripts", result.Transcripts,
		"matches", result.Total,
		"elapsed", result.Elapsed)
	monitor.Finish(result)

	return result, nil
}
