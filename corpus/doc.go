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

// Package corpus loads call transcripts from disk into the in-memory
// collection the searcher scans.
//
// A transcript file is a plain-text export of one call, one utterance per
// line:
//
//	Agent [starttime: 0:01 - endtime: 0:07]: Thanks for calling, how can I help?
//
// The loader parses every *.txt file in a directory concurrently,
// tolerates unreadable files and malformed lines, and produces a
// read-only Corpus. A Watcher can keep the corpus in sync with the
// directory, debouncing bursts of filesystem events into a single
// reload.
package corpus
