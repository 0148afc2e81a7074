package corpus

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/poiesic/callsearch/core"
	"github.com/poiesic/callsearch/search"
)

// Watch debounce is generous: exports are written file-by-file and a
// single copy can emit dozens of events.
const defaultReloadDelay = 500 * time.Millisecond

// Watcher reloads the corpus when transcript files change on disk.
// Event bursts collapse into one reload through a single-slot debouncer.
type Watcher struct {
	loader   *Loader
	corpus   *Corpus
	fs       *fsnotify.Watcher
	debounce *search.Debouncer
	onReload func([]*core.Transcript)
	logger   *slog.Logger
	done     chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithReloadDelay sets the debounce window for filesystem events.
func WithReloadDelay(delay time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = search.NewDebouncer(delay, w.reload)
	}
}

// WithReloadHook registers a callback invoked with the fresh transcript
// set after each successful reload. Used to keep the persistent cache
// in step with the directory.
func WithReloadHook(hook func([]*core.Transcript)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = hook
	}
}

// WithWatchLogger sets a custom logger.
// Default is slog.Default().
func WithWatchLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
	}
}

// NewWatcher starts watching the loader's directory. The initial load is
// the caller's responsibility; the watcher only reacts to changes.
func NewWatcher(loader *Loader, corpus *Corpus, opts ...WatcherOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		loader: loader,
		corpus: corpus,
		fs:     fs,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	w.debounce = search.NewDebouncer(defaultReloadDelay, w.reload)

	for _, opt := range opts {
		opt(w)
	}

	if err := fs.Add(loader.dir); err != nil {
		fs.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".txt" {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("transcript change detected", "file", event.Name, "op", event.Op.String())
			w.debounce.Trigger()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "err", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	if err := w.loader.LoadInto(w.corpus); err != nil {
		w.logger.Error("corpus reload failed", "err", err)
		return
	}
	w.logger.Info("corpus reloaded", "transcripts", w.corpus.Len())

	if w.onReload != nil {
		w.onReload(w.corpus.Transcripts())
	}
}

// Close stops watching and cancels any pending reload.
func (w *Watcher) Close() error {
	close(w.done)
	w.debounce.Stop()
	return w.fs.Close()
}
