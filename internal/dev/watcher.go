package dev

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ManifestWatcherConfig configures a ManifestWatcher.
type ManifestWatcherConfig struct {
	// Path is the manifest file to watch.
	Path string

	// Debounce is the quiet period after the last write before the
	// change callback fires. Vite touches the manifest more than once
	// per build.
	// Default: 100ms.
	Debounce time.Duration

	// Logger overrides slog.Default().
	Logger *slog.Logger
}

// ManifestWatcher watches a Vite manifest file and fires a callback once
// a rebuild has settled. The manifest's directory is watched rather than
// the file itself because Vite replaces the file on every build.
type ManifestWatcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	mu       sync.Mutex
	onChange func()

	done     chan struct{}
	stopOnce sync.Once
}

// NewManifestWatcher creates a watcher for the manifest at cfg.Path. The
// manifest does not need to exist yet; the first build creating it counts
// as a change.
func NewManifestWatcher(cfg ManifestWatcherConfig) (*ManifestWatcher, error) {
	if cfg.Debounce == 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default().With("component", "dev")
	}

	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &ManifestWatcher{
		path:     abs,
		debounce: cfg.Debounce,
		watcher:  watcher,
		logger:   cfg.Logger,
		done:     make(chan struct{}),
	}, nil
}

// OnChange sets the callback invoked after each settled rebuild.
func (w *ManifestWatcher) OnChange(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start blocks watching for manifest changes until ctx is done or Stop is
// called. Run it on its own goroutine.
func (w *ManifestWatcher) Start(ctx context.Context) error {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-w.done:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.isManifest(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("manifest watch error", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			w.logger.Debug("manifest changed", "path", w.path)

			w.mu.Lock()
			fn := w.onChange
			w.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

// Stop ends the watch loop and releases the notify handle.
func (w *ManifestWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

func (w *ManifestWatcher) isManifest(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.path
}
