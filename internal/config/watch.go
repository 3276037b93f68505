package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"notasmart/internal/logging"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the config file when it changes on disk and publishes
// each valid result on Updates. The parent directory is watched, not the
// file, because editors replace files by rename.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	updates  chan *Config
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pending time.Time
	started bool
}

// NewWatcher creates a watcher for path. Call Start to begin watching.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		updates:  make(chan *Config, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		debounce: 200 * time.Millisecond, // Debounce rapid saves
		logger:   logging.Get(logging.CategoryConfig),
	}, nil
}

// Updates delivers reloaded configs. Only the latest unread one is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start begins watching. The loop exits on ctx cancellation or Stop.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		_ = w.watcher.Close()
		close(w.doneCh)
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Debug("watching config", zap.String("path", w.path))
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.loop(ctx)
	return nil
}

// Stop ends the watch loop and releases the fsnotify watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.mu.Lock()
		started := w.started
		w.mu.Unlock()
		if started {
			<-w.doneCh
		}
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		w.logger.Warn("ignoring invalid config change", zap.Error(err))
		return
	}

	// Drop a stale unread config in favour of the new one.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Debug("config reloaded", zap.String("theme", cfg.UI.Theme))
}
