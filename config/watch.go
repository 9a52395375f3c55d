package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file at path whenever it changes and passes the
// result to onChange. It returns once the watcher is installed; watching
// stops when ctx is done. Files that fail to load are logged and skipped.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory: editors often replace the file instead of writing it.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		w.Close()
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadFrom(path)
				if err != nil {
					slog.Warn("reload config", "path", path, "error", err)
					continue
				}
				slog.Debug("config reloaded", "path", path)
				onChange(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("watch config", "error", err)
			}
		}
	}()

	return nil
}
