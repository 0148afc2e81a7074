package corpus

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/callsearch/core"
)

// Loader reads every *.txt transcript in a directory.
// Files are parsed concurrently on an ants pool; unreadable or
// unparsable files are logged and skipped, never fatal.
type Loader struct {
	dir    string
	pool   *ants.Pool
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent parsing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) LoaderOption {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a loader for the given transcript directory.
func NewLoader(dir string, opts ...LoaderOption) (*Loader, error) {
	if dir == "" {
		return nil, ErrDirectoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		dir:    dir,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}

	return l, nil
}

// Load parses all transcripts and returns them sorted by filename.
func (l *Loader) Load() ([]*core.Transcript, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	results := make([]*core.Transcript, len(files))

	var wg sync.WaitGroup
	for i, name := range files {
		wg.Add(1)
		i, name := i, name
		submitErr := l.pool.Submit(func() {
			defer wg.Done()
			t, err := l.loadFile(name)
			if err != nil {
				l.logger.Warn("skipping transcript", "file", name, "err", err)
				return
			}
			results[i] = t
		})
		if submitErr != nil {
			wg.Done()
			l.logger.Warn("skipping transcript", "file", name, "err", submitErr)
		}
	}
	wg.Wait()

	transcripts := make([]*core.Transcript, 0, len(results))
	for _, t := range results {
		if t != nil {
			transcripts = append(transcripts, t)
		}
	}

	l.logger.Info("transcripts loaded", "dir", l.dir, "count", len(transcripts))
	return transcripts, nil
}

// LoadInto replaces the corpus contents with a fresh directory scan.
func (l *Loader) LoadInto(corpus *Corpus) error {
	transcripts, err := l.Load()
	if err != nil {
		return err
	}
	corpus.Replace(transcripts)
	return nil
}

func (l *Loader) loadFile(name string) (*core.Transcript, error) {
	return ParseFile(filepath.Join(l.dir, name))
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}
