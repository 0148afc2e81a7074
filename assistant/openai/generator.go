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

// Package openai implements assistant.Generator against OpenAI-compatible
// chat APIs, including local servers such as Ollama and vLLM.
package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/callsearch/assistant"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements assistant.Generator using an OpenAI-compatible
// chat completion endpoint.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

var _ assistant.Generator = (*Generator)(nil)

// NewGenerator creates a generator for the given host and model.
// Use "none" as the token for local services without authentication.
func NewGenerator(host, token, model string) (*Generator, error) {
	if host == "" {
		return nil, errors.New("openai: host required")
	}
	if model == "" {
		return nil, errors.New("openai: model required")
	}
	if token == "" {
		token = "none"
	}

	// OpenAI-compatible APIs expect the /v1 suffix.
	if !strings.HasSuffix(host, "/v1") {
		host = strings.TrimSuffix(host, "/") + "/v1"
	}

	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken(token),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// Generate sends the prompt as a single human message and returns the
// first choice's content.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.3),
		llms.WithTopP(0.95),
		llms.WithMaxTokens(4096),
	)
	if err != nil {
		g.logger.Error("generation failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", errors.New("openai: no choices returned")
	}
	return response.Choices[0].Content, nil
}

// Close releases resources held by the generator.
// Currently a no-op as the underlying client doesn't require cleanup.
func (g *Generator) Close() error {
	return nil
}
