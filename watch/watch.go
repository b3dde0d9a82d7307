// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package watch re-runs a callback whenever a file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a single file.
// The parent directory is watched so that editors which replace the file
// on save are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// New returns a watcher for path.
// A debounce of zero or less uses DefaultDebounce.
func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	} else if info.IsDir() {
		return nil, fmt.Errorf("watch %s: is a directory", path)
	}
	return &Watcher{path: abs, debounce: debounce, logger: logger}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Watch calls onChange once the file has been written or created and then
// left alone for the debounce interval. It blocks until the context is
// cancelled and an onChange already in progress has returned. Errors from
// onChange are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange func(ctx context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	debounce := NewDebouncer(w.debounce)
	defer debounce.Stop()

	w.logger.Info("watch: started", "path", w.path, "debounce", w.debounce)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch: stopped", "path", w.path)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.Matches(event) {
				continue
			}
			w.logger.Debug("watch: event", "path", event.Name, "op", event.Op.String())
			debounce.Trigger(func() {
				if err := onChange(ctx); err != nil {
					w.logger.Error("watch: callback failed", "path", w.path, "error", err)
				}
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watch: fsnotify", "error", err)
		}
	}
}

// Matches reports whether the event is a write or create of the watched file.
func (w *Watcher) Matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.path
}
