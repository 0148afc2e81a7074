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

// Package callsearch wires the transcript corpus, search pipeline,
// persistent cache, and assistant into a single application object.
package callsearch

import (
	"context"
	"log/slog"

	"github.com/poiesic/callsearch/assistant"
	"github.com/poiesic/callsearch/core"
	"github.com/poiesic/callsearch/corpus"
	"github.com/poiesic/callsearch/search"
	"github.com/poiesic/callsearch/storage"
	"github.com/poiesic/callsearch/storage/badger"
)

// App owns the corpus, loader, search, and optional collaborators.
type App struct {
	corpus    *corpus.Corpus
	loader    *corpus.Loader
	searcher  *search.Searcher
	watcher   *corpus.Watcher
	repo      storage.TranscriptRepository
	backend   *badger.Backend
	assistant *assistant.Assistant
	logger    *slog.Logger
}

// AppOption configures an App.
type AppOption func(*appOptions)

type appOptions struct {
	cacheDir  string
	watch     bool
	generator assistant.Generator
	logger    *slog.Logger
}

// WithCache enables the on-disk parsed-transcript cache at dir.
func WithCache(dir string) AppOption {
	return func(o *appOptions) {
		o.cacheDir = dir
	}
}

// WithWatch reloads the corpus when the transcript directory changes.
func WithWatch() AppOption {
	return func(o *appOptions) {
		o.watch = true
	}
}

// WithGenerator enables the assistant with the given backend.
func WithGenerator(g assistant.Generator) AppOption {
	return func(o *appOptions) {
		o.generator = g
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AppOption {
	return func(o *appOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewApp loads the transcript directory and assembles the application.
// When a cache is configured, cached transcripts serve immediately and
// the directory scan replaces them.
func NewApp(transcriptDir string, opts ...AppOption) (*App, error) {
	options := &appOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	loader, err := corpus.NewLoader(transcriptDir, corpus.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	app := &App{
		corpus: corpus.New(),
		loader: loader,
		logger: logger,
	}

	if options.cacheDir != "" {
		backend, err := badger.OpenBackend(options.cacheDir, false)
		if err != nil {
			loader.Release()
			return nil, err
		}
		repo, err := badger.NewTranscriptRepository(backend)
		if err != nil {
			backend.Close()
			loader.Release()
			return nil, err
		}
		app.backend = backend
		app.repo = repo

		// Serve the cached parse while the fresh scan runs below.
		cached, err := repo.AllTranscripts(context.Background())
		if err != nil {
			logger.Warn("reading transcript cache", "err", err)
		} else if len(cached) > 0 {
			app.corpus.Replace(cached)
			logger.Info("serving from cache", "transcripts", len(cached))
		}
	}

	if err := app.reload(context.Background()); err != nil {
		app.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(app.corpus, search.WithLogger(logger))
	if err != nil {
		app.Close()
		return nil, err
	}
	app.searcher = searcher

	if options.generator != nil {
		a, err := assistant.NewAssistant(app.corpus, options.generator,
			assistant.WithLogger(logger))
		if err != nil {
			app.Close()
			return nil, err
		}
		app.assistant = a
	}

	if options.watch {
		watcher, err := corpus.NewWatcher(loader, app.corpus,
			corpus.WithWatchLogger(logger),
			corpus.WithReloadHook(app.cacheTranscripts))
		if err != nil {
			app.Close()
			return nil, err
		}
		app.watcher = watcher
	}

	return app, nil
}

// reload runs a fresh directory scan and updates the cache.
func (a *App) reload(ctx context.Context) error {
	if err := a.loader.LoadInto(a.corpus); err != nil {
		return err
	}
	a.cacheTranscripts(a.corpus.Transcripts())
	return nil
}

func (a *App) cacheTranscripts(transcripts []*core.Transcript) {
	if a.repo == nil {
		return
	}
	ctx := context.Background()

	if err := a.repo.PutTranscripts(ctx, transcripts...); err != nil {
		a.logger.Warn("updating transcript cache", "err", err)
		return
	}

	// The directory is authoritative: drop cached entries whose source
	// file no longer exists.
	current := make(map[string]bool, len(transcripts))
	for _, t := range transcripts {
		current[t.Key] = true
	}
	cached, err := a.repo.AllTranscripts(ctx)
	if err != nil {
		a.logger.Warn("sweeping transcript cache", "err", err)
		return
	}
	var stale []string
	for _, t := range cached {
		if !current[t.Key] {
			stale = append(stale, t.Key)
		}
	}
	if len(stale) > 0 {
		if err := a.repo.DeleteTranscripts(ctx, stale...); err != nil {
			a.logger.Warn("sweeping transcript cache", "err", err)
		} else {
			a.logger.Debug("removed stale cache entries", "count", len(stale))
		}
	}
}

// Corpus returns the in-memory transcript collection.
func (a *App) Corpus() *corpus.Corpus {
	return a.corpus
}

// Searcher returns the search pipeline.
func (a *App) Searcher() *search.Searcher {
	return a.searcher
}

// Assistant returns the question-answering assistant, or nil when no
// generator was configured.
func (a *App) Assistant() *assistant.Assistant {
	return a.assistant
}

// Close releases the watcher, cache, and worker pools.
func (a *App) Close() error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Error("error closing watcher", "err", err)
		}
	}

	a.loader.Release()

	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.logger.Error("error closing transcript repository", "err", err)
		}
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}
