package runpod

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/callsearch/assistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-endpoint", "test-key",
		WithBaseURL(server.URL),
		WithPollInterval(5*time.Millisecond),
		WithMaxWait(2*time.Second),
	)
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", "key")
	assert.Error(t, err)

	_, err = NewClient("endpoint", "")
	assert.Error(t, err)
}

func TestGenerate_CompletedAfterPolling(t *testing.T) {
	var polls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/test-endpoint/run", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req runRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "the prompt", req.Input.Prompt)
		assert.Equal(t, 4096, req.Input.SamplingParams.MaxTokens)

		json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "IN_QUEUE"})
	})
	mux.HandleFunc("/test-endpoint/status/job-1", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) < 3 {
			json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "IN_PROGRESS"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "job-1",
			"status": "COMPLETED",
			"output": map[string]any{"text": "the answer"},
		})
	})

	client := newTestClient(t, mux)

	got, err := client.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "the answer", got)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestGenerate_Failed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-endpoint/run", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "job-1"})
	})
	mux.HandleFunc("/test-endpoint/status/job-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "job-1",
			"status": "FAILED",
			"error":  "out of memory",
		})
	})

	client := newTestClient(t, mux)

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, assistant.ErrJobFailed)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestGenerate_UnknownStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-endpoint/run", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "job-1"})
	})
	mux.HandleFunc("/test-endpoint/status/job-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "EXPLODED"})
	})

	client := newTestClient(t, mux)

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, assistant.ErrUnknownStatus)
}

func TestGenerate_Timeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-endpoint/run", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "job-1"})
	})
	mux.HandleFunc("/test-endpoint/status/job-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "IN_PROGRESS"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient("test-endpoint", "test-key",
		WithBaseURL(server.URL),
		WithPollInterval(5*time.Millisecond),
		WithMaxWait(30*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, assistant.ErrJobTimeout)
}

func TestGenerate_NoJobID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-endpoint/run", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "IN_QUEUE"})
	})

	client := newTestClient(t, mux)

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorContains(t, err, "no job ID")
}

func TestGenerate_ContextCancelledWhilePolling(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-endpoint/run", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "job-1"})
	})
	mux.HandleFunc("/test-endpoint/status/job-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "IN_QUEUE"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient("test-endpoint", "test-key",
		WithBaseURL(server.URL),
		WithPollInterval(time.Second),
		WithMaxWait(time.Minute),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.Generate(ctx, "prompt")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare string", `"hello"`, "hello"},
		{"text key", `{"text": "hello"}`, "hello"},
		{"nested response", `{"response": {"content": "hello"}}`, "hello"},
		{"choices message", `{"choices": [{"message": {"content": "hello"}}]}`, "hello"},
		{"choices text", `{"choices": [{"text": "hello"}]}`, "hello"},
		{"choices tokens", `{"choices": [{"tokens": ["he", "llo"]}]}`, "hello"},
		{"string list", `["he", "llo"]`, "hello"},
		{"list of dicts", `[{"text": "hello"}]`, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractText(json.RawMessage(tt.in)))
		})
	}
}

func TestCleanArtifacts(t *testing.T) {
	got := cleanArtifacts("Focus on details only.\n\nThe real answer.")
	assert.Equal(t, "The real answer.", got)

	got = cleanArtifacts("  plain answer  ")
	assert.Equal(t, "plain answer", got)
}
