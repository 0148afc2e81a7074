package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SpeakerType identifies which side of a call an utterance belongs to.
type SpeakerType int

const (
	// SpeakerAgent represents the service agent side of the call.
	SpeakerAgent SpeakerType = iota + 1
	// SpeakerCustomer represents the customer side of the call.
	SpeakerCustomer
)

// SpeakerTypeFromLabel derives the speaker type from a raw transcript label.
// "agent" and "speaker 2" (case-insensitive) map to agent, everything else
// to customer. The mapping happens once at ingestion and is never
// recomputed downstream.
func SpeakerTypeFromLabel(label string) SpeakerType {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "agent", "speaker 2":
		return SpeakerAgent
	default:
		return SpeakerCustomer
	}
}

// String returns the lowercase name used in filters and rendering.
func (s SpeakerType) String() string {
	switch s {
	case SpeakerAgent:
		return "agent"
	case SpeakerCustomer:
		return "customer"
	default:
		return "unknown"
	}
}

// Utterance is one timestamped speech turn by one speaker within a transcript.
// Its position within the parent transcript's Utterances slice is its index,
// which is the unit of ordering for context grouping.
type Utterance struct {
	Speaker string // Raw label as it appeared in the source file
	Type    SpeakerType
	Start   string // "MM:SS"
	End     string // "MM:SS"
	Text    string
}

// Transcript is one parsed call transcript. Immutable after load.
type Transcript struct {
	Key        string // Unique, derived from the source filename stem
	Name       string // Display label
	Utterances []Utterance
	LoadedAt   time.Time
}

// UtteranceCount returns the number of utterances in the transcript.
func (t *Transcript) UtteranceCount() int {
	return len(t.Utterances)
}

// StorageID returns the content-based storage key for the transcript.
func (t *Transcript) StorageID() ID {
	return IDFromContent(t.Key)
}

// TermKind distinguishes how a search term was written in the query.
// Phrase and keyword terms match identically; the kind only matters
// during parsing.
type TermKind int

const (
	// TermPhrase is a double-quoted exact phrase.
	TermPhrase TermKind = iota + 1
	// TermKeyword is a semicolon-separated bare term.
	TermKeyword
)

// SearchTerm is one atomic unit of a parsed search query.
// Produced transiently per query; never persisted.
type SearchTerm struct {
	Kind  TermKind
	Value string
}

// SpeakerFilter restricts matching to one side of the call.
type SpeakerFilter int

const (
	// FilterAll matches utterances from both speakers.
	FilterAll SpeakerFilter = iota
	// FilterAgent matches agent utterances only.
	FilterAgent
	// FilterCustomer matches customer utterances only.
	FilterCustomer
)

// Allows reports whether an utterance of the given type is visible to
// matching and counting under this filter.
func (f SpeakerFilter) Allows(t SpeakerType) bool {
	switch f {
	case FilterAgent:
		return t == SpeakerAgent
	case FilterCustomer:
		return t == SpeakerCustomer
	default:
		return true
	}
}

// SpeakerFilterFromString parses the wire form ("all", "agent", "customer").
// Unrecognized values fall back to FilterAll.
func SpeakerFilterFromString(s string) SpeakerFilter {
	switch s {
	case "agent":
		return FilterAgent
	case "customer":
		return FilterCustomer
	default:
		return FilterAll
	}
}

// UtteranceMatch is one matched utterance tagged with its original index
// in the parent transcript and its term-occurrence count.
type UtteranceMatch struct {
	Utterance Utterance
	Index     int
	Count     int
}

// TranscriptMatches holds all matching utterances of one transcript,
// in original utterance order.
type TranscriptMatches struct {
	Transcript *Transcript
	Utterances []UtteranceMatch
	Total      int
}

// SearchResult is the outcome of one full scan of the corpus.
// Matches preserve original transcript order; there is no relevance sort.
type SearchResult struct {
	Matches     []TranscriptMatches
	Transcripts int // Number of transcripts with at least one match
	Total       int // Sum of match counts across all transcripts
	Elapsed     time.Duration
}
