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

// Package runpod implements assistant.Generator against RunPod
// serverless endpoints. Jobs are submitted to /run and polled on
// /status/{id} until a terminal state or the wait window closes.
package runpod

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/callsearch/assistant"
)

const (
	defaultBaseURL      = "https://api.runpod.ai/v2"
	defaultMaxWait      = 5 * time.Minute
	defaultPollInterval = 2 * time.Second

	defaultMaxTokens   = 4096
	defaultTemperature = 0.3
	defaultTopP        = 0.95
)

// Job status values reported by the RunPod API.
const (
	statusCompleted  = "COMPLETED"
	statusFailed     = "FAILED"
	statusInQueue    = "IN_QUEUE"
	statusInProgress = "IN_PROGRESS"
)

// Client submits generation jobs to a RunPod serverless endpoint.
type Client struct {
	baseURL      string
	endpointID   string
	apiKey       string
	maxWait      time.Duration
	pollInterval time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

var _ assistant.Generator = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the RunPod API base URL. Used in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithMaxWait sets the hard ceiling on total job wait time.
// Default is 5 minutes.
func WithMaxWait(d time.Duration) Option {
	return func(c *Client) {
		c.maxWait = d
	}
}

// WithPollInterval sets the fixed delay between status checks.
// Default is 2 seconds.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates a client for the given endpoint.
func NewClient(endpointID, apiKey string, opts ...Option) (*Client, error) {
	if endpointID == "" {
		return nil, fmt.Errorf("runpod: endpoint ID required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("runpod: API key required")
	}

	c := &Client{
		baseURL:      defaultBaseURL,
		endpointID:   endpointID,
		apiKey:       apiKey,
		maxWait:      defaultMaxWait,
		pollInterval: defaultPollInterval,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       slog.Default().With("component", "runpod"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type runRequest struct {
	Input runInput `json:"input"`
}

type runInput struct {
	Prompt         string         `json:"prompt"`
	SamplingParams samplingParams `json:"sampling_params"`
}

type samplingParams struct {
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type jobResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// Generate submits the prompt and polls until a terminal state.
// A job that outlives the wait window returns ErrJobTimeout; the job is
// abandoned, not cancelled.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	jobID, err := c.submit(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.logger.Debug("job submitted", "job_id", jobID)

	deadline := time.Now().Add(c.maxWait)
	for time.Now().Before(deadline) {
		job, err := c.status(ctx, jobID)
		if err != nil {
			return "", err
		}

		switch job.Status {
		case statusCompleted:
			text := extractText(job.Output)
			return cleanArtifacts(text), nil

		case statusFailed:
			msg := job.Error
			if msg == "" {
				msg = "unknown error"
			}
			return "", fmt.Errorf("%w: %s", assistant.ErrJobFailed, msg)

		case statusInQueue, statusInProgress:
			select {
			case <-time.After(c.pollInterval):
			case <-ctx.Done():
				return "", ctx.Err()
			}

		default:
			return "", fmt.Errorf("%w: %q", assistant.ErrUnknownStatus, job.Status)
		}
	}

	return "", fmt.Errorf("%w: job %s after %s", assistant.ErrJobTimeout, jobID, c.maxWait)
}

// Close releases resources. Currently a no-op.
func (c *Client) Close() error {
	return nil
}

func (c *Client) submit(ctx context.Context, prompt string) (string, error) {
	payload := runRequest{
		Input: runInput{
			Prompt: prompt,
			SamplingParams: samplingParams{
				MaxTokens:   defaultMaxTokens,
				Temperature: defaultTemperature,
				TopP:        defaultTopP,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/run", c.baseURL, c.endpointID)
	job, err := c.do(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("submitting job: %w", err)
	}
	if job.ID == "" {
		return "", fmt.Errorf("submitting job: no job ID returned")
	}
	return job.ID, nil
}

func (c *Client) status(ctx context.Context, jobID string) (*jobResponse, error) {
	url := fmt.Sprintf("%s/%s/status/%s", c.baseURL, c.endpointID, jobID)
	job, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("checking status: %w", err)
	}
	return job, nil
}

func (c *Client) do(ctx context.Context, method, url string, body *bytes.Reader) (*jobResponse, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = body
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	var job jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

// cleanArtifacts strips instruction echoes vLLM sometimes prepends.
func cleanArtifacts(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "Focus on details") {
		if _, rest, found := strings.Cut(text, "\n\n"); found {
			text = rest
		}
	}
	return text
}
