package server

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/oshokin/shabbat-check/internal/logger"
)

// errNothingToWatch is returned when no SHABBAT.md has been located yet.
var errNothingToWatch = errors.New("no directives file to watch")

// watchDirectives signals on the returned channel whenever path is written,
// created, renamed or removed. The directory is watched rather than the file
// so that editors replacing the file atomically are noticed.
// The watcher stops when ctx is done.
func watchDirectives(ctx context.Context, path string) (<-chan struct{}, error) {
	if path == "" {
		return nil, errNothingToWatch
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err = watcher.Add(dir); err != nil {
		_ = watcher.Close()

		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	name := filepath.Base(path)
	changes := make(chan struct{}, 1)

	go func() {
		defer func() {
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Base(event.Name) != name || event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
					continue
				}

				logger.DebugKV(ctx, "Directives changed", "path", event.Name, "op", event.Op.String())

				// Coalesce bursts into one pending refresh.
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				logger.WarnKV(ctx, "Directives watcher failed", "error", err)
			}
		}
	}()

	return changes, nil
}
