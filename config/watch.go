package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce coalesces the burst of events an editor save produces
const WatchDebounce = 150 * time.Millisecond

// Watch reloads path whenever it changes and hands the result to fn
// The parent directory is watched so atomic rename-on-save is seen. fn runs on
// the watch goroutine and receives either a validated config or the load error.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				reload = time.After(WatchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watch %s: %w", path, err))

		case <-reload:
			reload = nil
			fn(Load(abs))
		}
	}
}
