package widgets

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// watchDebounce is how long the watcher waits for a burst of events (one
// editor save usually produces several) to settle before calling onChange.
const watchDebounce = 100 * time.Millisecond

// WatchDir calls onChange once a burst of writes, creates, removes or renames
// under root has settled. Every directory below root is watched. The watcher
// runs in its own goroutine and stops when ctx is done.
func WatchDir(ctx context.Context, root string, onChange func(), logger *slog.Logger) error {
	if onChange == nil {
		return fmt.Errorf("widgets: watch %s: onChange is required", root)
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("widgets: watch %s: %w", root, err)
	}
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
	if err != nil {
		watcher.Close()
		return fmt.Errorf("widgets: watch %s: %w", root, err)
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		var settled <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case <-settled:
				timer, settled = nil, nil
				onChange()
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&reloadOps == 0 {
					continue
				}
				logger.Debug("templates changed", "file", filepath.ToSlash(event.Name), "op", event.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(watchDebounce)
				settled = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("template watcher error", "error", err)
			}
		}
	}()
	return nil
}
