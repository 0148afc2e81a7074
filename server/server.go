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

// Package server exposes the search UI and its JSON API over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/callsearch/assistant"
	"github.com/poiesic/callsearch/corpus"
	"github.com/poiesic/callsearch/search"
)

// Server wires the corpus, searcher, and assistant behind an HTTP API.
type Server struct {
	corpus    *corpus.Corpus
	searcher  *search.Searcher
	assistant *assistant.Assistant
	logger    *slog.Logger
	mux       *http.ServeMux
}

// Option configures a Server.
type Option func(*Server) error

// WithAssistant enables the /api/ask endpoint.
// Without it, ask requests return 503.
func WithAssistant(a *assistant.Assistant) Option {
	return func(s *Server) error {
		s.assistant = a
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates the HTTP server over the given corpus.
func NewServer(c *corpus.Corpus, opts ...Option) (*Server, error) {
	if c == nil {
		return nil, errors.New("server: corpus required")
	}

	searcher, err := search.NewSearcher(c)
	if err != nil {
		return nil, err
	}

	s := &Server{
		corpus:   c,
		searcher: searcher,
		logger:   slog.Default().With("component", "server"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/transcripts/{key}", s.handleTranscript)
	mux.HandleFunc("POST /api/ask", s.handleAsk)
	s.mux = mux

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
