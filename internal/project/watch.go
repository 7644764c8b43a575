package project

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/rectalogic/terp/internal/logging"
)

// Watch calls changed with the new contents of path every time the file is
// written or replaced, until ctx is done. The directory is watched rather
// than the file so editors that save by rename are seen too.
func Watch(ctx context.Context, path string, changed func([]byte)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch project: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch project: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				data, err := Read(abs)
				if err != nil || len(data) == 0 {
					continue
				}
				logging.L().Debug("project changed", "path", abs)
				changed(data)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.L().Warn("project watch", "err", err)
			}
		}
	}()
	return nil
}
