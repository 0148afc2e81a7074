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

// Package config loads the callsearch YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full callsearch configuration.
type Config struct {
	Transcripts TranscriptsConfig `yaml:"transcripts"`
	Cache       CacheConfig       `yaml:"cache"`
	Server      ServerConfig      `yaml:"server"`
	Assistant   AssistantConfig   `yaml:"assistant"`
}

// TranscriptsConfig locates the transcript files.
type TranscriptsConfig struct {
	// Dir is the directory scanned for *.txt transcripts.
	Dir string `yaml:"dir"`

	// Watch reloads the corpus when files change.
	Watch bool `yaml:"watch"`
}

// CacheConfig controls the on-disk parsed-transcript cache.
type CacheConfig struct {
	// Dir is the BadgerDB directory. Empty disables the cache.
	Dir string `yaml:"dir"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	// Addr is the listen address. Default ":8080".
	Addr string `yaml:"addr"`
}

// AssistantConfig configures the question-answering backend.
type AssistantConfig struct {
	// Backend selects the generator: "runpod", "openai", or "" to
	// disable the assistant.
	Backend string `yaml:"backend"`

	// RunPod settings. The API key may also come from the
	// RUNPOD_API_KEY environment variable.
	RunPod RunPodConfig `yaml:"runpod"`

	// OpenAI-compatible settings.
	OpenAI OpenAIConfig `yaml:"openai"`
}

// RunPodConfig identifies a RunPod serverless endpoint.
type RunPodConfig struct {
	EndpointID string `yaml:"endpoint_id"`
	APIKey     string `yaml:"api_key"`
}

// OpenAIConfig identifies an OpenAI-compatible chat endpoint.
type OpenAIConfig struct {
	Host  string `yaml:"host"`
	Token string `yaml:"token"`
	Model string `yaml:"model"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Transcripts: TranscriptsConfig{Dir: "transcripts"},
		Server:      ServerConfig{Addr: ":8080"},
	}
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize fills defaults and environment fallbacks.
func (c *Config) Normalize() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Assistant.RunPod.APIKey == "" {
		c.Assistant.RunPod.APIKey = os.Getenv("RUNPOD_API_KEY")
	}
	if c.Assistant.RunPod.EndpointID == "" {
		c.Assistant.RunPod.EndpointID = os.Getenv("RUNPOD_ENDPOINT_ID")
	}
}

// Validate checks the configuration is complete enough to run.
func (c *Config) Validate() error {
	if c.Transcripts.Dir == "" {
		return errors.New("config: transcripts.dir is required")
	}

	switch c.Assistant.Backend {
	case "":
		// Assistant disabled.
	case "runpod":
		if c.Assistant.RunPod.EndpointID == "" {
			return errors.New("config: assistant.runpod.endpoint_id is required")
		}
		if c.Assistant.RunPod.APIKey == "" {
			return errors.New("config: assistant.runpod.api_key is required")
		}
	case "openai":
		if c.Assistant.OpenAI.Host == "" {
			return errors.New("config: assistant.openai.host is required")
		}
		if c.Assistant.OpenAI.Model == "" {
			return errors.New("config: assistant.openai.model is required")
		}
	default:
		return fmt.Errorf("config: unknown assistant backend %q", c.Assistant.Backend)
	}

	return nil
}
