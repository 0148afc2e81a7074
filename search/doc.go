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


// Package search implements full-text search over call-transcript corpora.
//
// The Searcher type scans every utterance of every transcript in a
// read-only corpus on each query:
//   - Query parsing: quoted phrases plus semicolon-separated keywords
//   - AND matching: a text matches only if it contains every term
//   - Match counting: non-overlapping occurrences summed per term
//   - Highlighting: one literal-escaped alternation pattern over all terms
//
// Results preserve original transcript and utterance order; there is no
// relevance ranking beyond raw match counts. The corpus is never mutated
// during search, so repeated scans are safe without locking.
package search
