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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/poiesic/callsearch/core"
)

// One utterance per line: Speaker [starttime: M:SS - endtime: M:SS]: Text
// Speaker labels are either the literal roles or diarization slots
// ("Speaker 1", "Speaker 2"). Lines that do not match are skipped, not
// errors: exports routinely carry blank lines and header junk.
var utterancePattern = regexp.MustCompile(`^((?:Agent|Customer|Speaker \d+))\s*\[starttime:\s*(\d+:\d+)\s*-\s*endtime:\s*(\d+:\d+)\]:\s*(.*)$`)

// Exports name files after the source recording; strip the artifacts so
// the UI shows "Call1" instead of "audio_Call1-Call1.MP3".
var (
	namePrefixPattern = regexp.MustCompile(`^audio_Call1-`)
	nameSuffixPattern = regexp.MustCompile(`(?i)\.mp3$`)
)

// DisplayName cleans a transcript filename for presentation.
func DisplayName(filename string) string {
	name := strings.TrimSuffix(filename, ".txt")
	name = namePrefixPattern.ReplaceAllString(name, "")
	name = nameSuffixPattern.ReplaceAllString(name, "")
	return name
}

// ParseTranscript reads one transcript from r. The key identifies the
// source file and the display name is derived from it. Returns
// ErrNoUtterances when no line matched the utterance shape.
func ParseTranscript(key string, r io.Reader) (*core.Transcript, error) {
	transcript := &core.Transcript{
		Key:      key,
		Name:     DisplayName(key),
		LoadedAt: time.Now().UTC(),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		m := utterancePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		transcript.Utterances = append(transcript.Utterances, core.Utterance{
			Speaker: m[1],
			Type:    core.SpeakerTypeFromLabel(m[1]),
			Start:   m[2],
			End:     m[3],
			Text:    m[4],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript %s: %w", key, err)
	}
	if len(transcript.Utterances) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoUtterances, key)
	}

	return transcript, nil
}

// ParseFile parses the transcript at path, keyed by its filename.
func ParseFile(path string) (*core.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTranscript(filepath.Base(path), f)
}
