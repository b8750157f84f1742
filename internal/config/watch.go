package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultReloadDebounce = 250 * time.Millisecond

// Watcher reloads the config file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(Config, error)
}

// NewWatcher creates a watcher for path. onReload receives the freshly
// loaded config, or the load error, once per burst of file events.
func NewWatcher(path string, onReload func(Config, error)) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: defaultReloadDebounce,
		onReload: onReload,
	}
}

// SetDebounce overrides the quiet period between the last event and the reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Run watches the config directory until ctx is cancelled. The directory
// is watched instead of the file so that atomic replace-by-rename saves
// are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("config watcher: watch %s: %w", dir, err)
	}
	slog.Debug("[DEBUG-CONFIG] watching config directory", "dir", dir)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("[WARN-CONFIG] config watcher error", "error", err)
		case <-fire:
			fire = nil
			// Load treats a missing file as defaults; a file renamed or
			// deleted away keeps the current bindings instead.
			if _, err := os.Stat(w.path); errors.Is(err, os.ErrNotExist) {
				slog.Warn("[WARN-CONFIG] config file is gone, keeping current bindings", "path", w.path)
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				slog.Warn("[WARN-CONFIG] config reload failed, keeping current bindings", "path", w.path, "error", err)
			}
			w.onReload(cfg, err)
		}
	}
}
