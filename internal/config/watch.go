package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce collapses bursts of events. Default: DefaultDebounce.
	Debounce time.Duration

	// Logger receives watcher errors. Default: slog.Default().
	Logger *slog.Logger
}

// Watch reloads the file at path whenever it changes and hands the result
// to fn, until ctx is done. Decode and validation failures are passed to fn
// instead of stopping the watch.
//
// The containing directory is watched so that editors replacing the file
// through a rename are still observed.
func Watch(ctx context.Context, path string, opts WatchOptions, fn func(router.Config, error)) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.New("R040").WithPath(path).Wrap(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New("R040").WithPath(path).Wrap(err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.New("R040").WithPath(path).Wrap(err)
	}

	reload := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(opts.Debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			cfg, err := LoadFile(abs)
			if err == nil {
				err = Validate(cfg)
			}
			fn(cfg, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Warn("config watcher error", "path", path, "error", err)
		}
	}
}
