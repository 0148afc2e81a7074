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


package search

import "errors"

var (
	// ErrCorpusRequired is returned when a corpus is not provided.
	ErrCorpusRequired = errors.New("corpus required")

	// ErrEmptyQuery signals the defined no-op state: the query parsed to
	// zero terms. Callers must render the initial/reset state, not treat
	// this as a failure.
	ErrEmptyQuery = errors.New("empty query")

	// ErrPatternInvalid indicates the highlight pattern failed to compile
	// after literal escaping. This is an internal invariant violation, not
	// a user-facing error.
	ErrPatternInvalid = errors.New("highlight pattern invalid")
)
