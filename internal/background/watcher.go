package background

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrijs2005/telephoto/internal/logging"
)

// DefaultDebounce is how long the watcher waits after the last filesystem
// event before triggering a sync, so a burst of writes (a camera dumping a
// video, a batch copy) produces one run.
const DefaultDebounce = 5 * time.Second

// Watcher triggers a callback when files change under the media roots.
// New subdirectories are picked up as they appear.
type Watcher struct {
	roots    []string
	debounce time.Duration
	trigger  func(ctx context.Context)
	log      logging.Logger
}

func NewWatcher(roots []string, debounce time.Duration, trigger func(ctx context.Context), log logging.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{roots: roots, debounce: debounce, trigger: trigger, log: log}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	for _, root := range w.roots {
		if err := addRecursive(fw, root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
	}
	w.log.Info(ctx, "media watcher started", "roots", w.roots, "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info(ctx, "media watcher stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addRecursive(fw, ev.Name); err != nil {
						w.log.Warn(ctx, "cannot watch new directory", "path", ev.Name, "error", err)
					}
				}
			}
			if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Rename) {
				w.log.Debug(ctx, "media change", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			w.trigger(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, "watcher error", "error", err)
		}
	}
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(path)
	})
}
