// Package watch re-runs an action whenever a file changes. It is used to keep
// the CHANGELOG row current while the test runner is still appending to its
// output log.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// pollInterval catches changes fsnotify misses (network filesystems, editors
// that replace files).
const pollInterval = time.Second

// Watcher calls a handler after a watched file changes.
type Watcher struct {
	debounce time.Duration
	logger   *zap.SugaredLogger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before the handler runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		debounce: DefaultDebounce,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches path until ctx is cancelled. The handler runs once at start and
// then once per burst of changes. The file does not need to exist yet.
// Handler errors are logged and do not stop the watch.
// Run returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, path string, handler func(context.Context) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fw.Close()

	// Watch the parent so that creation, truncation and replacement are seen.
	dir := filepath.Dir(abs)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	w.invoke(ctx, handler)
	lastMod := modTime(abs)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.logger.Debugw("file event", "path", abs, "op", event.Op.String())
				pending = time.After(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			w.logger.Warnw("watcher error", "error", err)
		case <-ticker.C:
			if m := modTime(abs); !m.Equal(lastMod) && pending == nil {
				pending = time.After(w.debounce)
			}
		case <-pending:
			pending = nil
			lastMod = modTime(abs)
			w.invoke(ctx, handler)
		}
	}
}

func (w *Watcher) invoke(ctx context.Context, handler func(context.Context) error) {
	if err := handler(ctx); err != nil && ctx.Err() == nil {
		w.logger.Errorw("update after change failed", "error", err)
	}
}

// modTime returns the file's modification time, or the zero time if it is absent.
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
