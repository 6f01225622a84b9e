package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// fileWatcher calls onChange when the watched file is written,
// once per burst of events.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	logger   *slog.Logger
}

// newFileWatcher watches the directory of path, so that
// editors replacing the file are supported.
func newFileWatcher(path string, onChange func(), logger *slog.Logger) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	return &fileWatcher{watcher: watcher, path: abs, debounce: watchDebounce, onChange: onChange, logger: logger}, nil
}

// run blocks until ctx is done, then closes the watcher.
func (fw *fileWatcher) run(ctx context.Context) {
	defer fw.watcher.Close()

	var debounceCh <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if abs, _ := filepath.Abs(event.Name); abs != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounceCh = time.After(fw.debounce)
		case <-debounceCh:
			debounceCh = nil
			fw.onChange()
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watching file", "path", fw.path, "error", err)
		}
	}
}
