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

package storage

import (
	"github.com/poiesic/callsearch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalTranscript serializes a Transcript to bytes.
func MarshalTranscript(transcript *core.Transcript) []byte {
	buf := make([]byte, core.TranscriptMUS.Size(*transcript))
	core.TranscriptMUS.Marshal(*transcript, buf)
	return buf
}

// UnmarshalTranscript deserializes a Transcript from bytes.
func UnmarshalTranscript(data []byte) (*core.Transcript, error) {
	transcript, _, err := core.TranscriptMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &transcript, nil
}
