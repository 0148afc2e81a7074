// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package corpus

import (
	"sync"

	"github.com/poiesic/callsearch/core"
)

// Corpus is the in-memory transcript collection searches run against.
// Readers always see a consistent snapshot: a reload swaps the whole
// slice under the lock, never mutates it in place.
type Corpus struct {
	mu          sync.RWMutex
	transcripts []*core.Transcript
	byKey       map[string]*core.Transcript
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{byKey: make(map[string]*core.Transcript)}
}

// Replace swaps the corpus contents. Order is preserved as given; the
// loader sorts by filename so results render in a stable order.
func (c *Corpus) Replace(transcripts []*core.Transcript) {
	byKey := make(map[string]*core.Transcript, len(transcripts))
	for _, t := range transcripts {
		byKey[t.Key] = t
	}

	c.mu.Lock()
	c.transcripts = transcripts
	c.byKey = byKey
	c.mu.Unlock()
}

// Transcripts returns the current snapshot in load order. Callers must
// not mutate the returned slice.
func (c *Corpus) Transcripts() []*core.Transcript {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transcripts
}

// Get returns the transcript with the given key, or nil.
func (c *Corpus) Get(key string) *core.Transcript {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byKey[key]
}

// Len returns the number of loaded transcripts.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.transcripts)
}

// TotalUtterances sums the utterance counts of all transcripts.
func (c *Corpus) TotalUtterances() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, t := range c.transcripts {
		total += t.UtteranceCount()
	}
	return total
}
