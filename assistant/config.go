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

package assistant

import "errors"

// Config holds tunables for context selection.
type Config struct {
	// MaxContextChars caps the total condensed-transcript text placed
	// in the prompt. Default: 20000.
	MaxContextChars int

	// SampleTarget is roughly how many transcripts an aggregate
	// question samples across the corpus. Default: 30.
	SampleTarget int

	// MinKeywordLength is the shortest question word used for
	// relevance scoring. Default: 4.
	MinKeywordLength int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithMaxContextChars sets the context character budget.
func WithMaxContextChars(chars int) ConfigOption {
	return func(c *Config) {
		c.MaxContextChars = chars
	}
}

// WithSampleTarget sets the aggregate-question sample size.
func WithSampleTarget(target int) ConfigOption {
	return func(c *Config) {
		c.SampleTarget = target
	}
}

// DefaultConfig returns a Config with the defaults above.
func DefaultConfig() *Config {
	return &Config{
		MaxContextChars:  20000,
		SampleTarget:     30,
		MinKeywordLength: 4,
	}
}

// NewConfig creates a Config with defaults and applies the options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxContextChars < 1 {
		return errors.New("assistant config: MaxContextChars must be positive")
	}
	if c.SampleTarget < 1 {
		return errors.New("assistant config: SampleTarget must be positive")
	}
	if c.MinKeywordLength < 1 {
		return errors.New("assistant config: MinKeywordLength must be positive")
	}
	return nil
}
