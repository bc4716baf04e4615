package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path for changes and calls onChange with the newly loaded
// Config each time the file is written or replaced. It runs until ctx is
// cancelled.
//
// If a reload fails the error is logged and onChange is not called.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	return WatchFile(ctx, path, func(abs string) {
		cfg, err := Load(abs)
		if err != nil {
			slog.Error("config: reload failed, keeping previous config",
				"path", abs, "err", err)
			return
		}
		slog.Info("config: reloaded", "path", abs)
		onChange(cfg)
	})
}

// WatchFile calls onWrite with the absolute path each time the file at path
// is written or replaced, until ctx is cancelled.
//
// The parent directory is watched rather than the file itself, so atomic
// saves (write to temp, rename over) keep being observed.
func WatchFile(ctx context.Context, path string, onWrite func(abs string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: watch %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: watch %q: %w", path, err)
	}

	slog.Info("config: watching for changes", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			onWrite(abs)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
