// Package watcher triggers a reimport when the seed catalog file changes on
// disk.
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SeedWatcher watches one seed file and debounces change bursts into single
// reload calls.
type SeedWatcher struct {
	path     string
	onChange func()
	debounce time.Duration
}

// New creates a watcher for the seed file at path.
func New(path string, onChange func()) *SeedWatcher {
	return &SeedWatcher{
		path:     path,
		onChange: onChange,
		debounce: 500 * time.Millisecond,
	}
}

// WithDebounce sets the debounce duration.
func (w *SeedWatcher) WithDebounce(d time.Duration) *SeedWatcher {
	w.debounce = d
	return w
}

// Watch blocks until the context is cancelled, invoking onChange after each
// settled burst of writes. The containing directory is watched rather than
// the file itself, since editors replace files instead of rewriting them.
func (w *SeedWatcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	filename := filepath.Base(w.path)

	if err := fsw.Add(dir); err != nil {
		return err
	}

	log.Printf("Watching seed file %s for changes", w.path)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != filename {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				log.Printf("Seed file changed: %s", w.path)
				w.onChange()
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Seed watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
