package badger

import (
	"fmt"

	"github.com/poiesic/callsearch/core"
)

// Key prefixes for different data types
const (
	transcriptPrefix    = "trarec"
	transcriptKeyPrefix = "trakey"
)

// makeTranscriptKey generates a key for a transcript record by ID.
func makeTranscriptKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", transcriptPrefix, id))
}

// makeTranscriptFileKey generates an index key mapping a file key to its
// record ID. File keys are filenames, so prefix iteration walks them in
// lexicographic order.
func makeTranscriptFileKey(key string) []byte {
	return []byte(transcriptKeyPrefix + ":" + key)
}
