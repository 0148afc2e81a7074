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


package core

import "fmt"

// ValidateTranscript validates a Transcript according to domain rules.
//
// Validation rules:
//   - Key must not be empty
//   - Every utterance must carry a valid speaker type
//
// NOT validated (tolerated by the search core):
//   - Utterance text (missing text is treated as empty, never fatal)
//   - Timestamps (absent timestamps render as empty strings)
func ValidateTranscript(t *Transcript) error {
	if t == nil {
		return fmt.Errorf("%w: transcript is nil", ErrInvalidTranscript)
	}

	if t.Key == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTranscript, ErrEmptyKey)
	}

	for i, u := range t.Utterances {
		if err := ValidateSpeakerType(u.Type); err != nil {
			return fmt.Errorf("%w: utterance %d: %w", ErrInvalidTranscript, i, err)
		}
	}

	return nil
}

// ValidateSpeakerType validates that a SpeakerType has a valid value.
func ValidateSpeakerType(speaker SpeakerType) error {
	if speaker != SpeakerAgent && speaker != SpeakerCustomer {
		return fmt.Errorf("%w: value %d", ErrInvalidSpeakerType, speaker)
	}
	return nil
}
