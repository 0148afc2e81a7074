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

// Package assistant answers natural-language questions about the loaded
// transcripts. It selects a context window of relevant transcripts,
// builds a prompt, sends it to a text generation backend, and formats
// the raw model output into presentable HTML.
//
// Generation backends live in subpackages: runpod for serverless job
// submission with polling, openai for OpenAI-compatible chat APIs, and
// mock for tests.
package assistant
