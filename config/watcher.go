package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces editor save bursts
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads files when they change on disk
// Parent directories are watched so atomic-rename saves are seen
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	targets map[string]func() error
	dirs    map[string]bool
}

// NewWatcher creates an idle watcher
func NewWatcher(debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:       fs,
		debounce: debounce,
		logger:   logger.Named("watcher"),
		targets:  make(map[string]func() error),
		dirs:     make(map[string]bool),
	}, nil
}

// Add registers reload for path
func (w *Watcher) Add(path string, reload func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.targets[abs] = reload
	return nil
}

// Run delivers debounced reloads until ctx is done, then closes the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(ev.Name)
			w.mu.Lock()
			_, watched := w.targets[name]
			w.mu.Unlock()
			if !watched {
				continue
			}
			pending[name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watch error", zap.Error(err))

		case <-timer.C:
			for name := range pending {
				w.reload(name)
			}
			clear(pending)
		}
	}
}

func (w *Watcher) reload(name string) {
	w.mu.Lock()
	fn := w.targets[name]
	w.mu.Unlock()
	if fn == nil {
		return
	}
	if err := fn(); err != nil {
		w.logger.Warn("reload failed", zap.String("file", name), zap.Error(err))
		return
	}
	w.logger.Debug("reloaded", zap.String("file", name))
}
