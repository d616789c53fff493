// Package watch runs a callback whenever files under a directory tree
// change, coalescing bursts of events.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"epigen/internal/errors"
	"epigen/internal/logger"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc receives the changed paths of one burst, sorted.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches a directory tree. fsnotify is not recursive, so every
// directory is added on start and new directories as they appear.
type Watcher struct {
	root     string
	debounce time.Duration
	filter   func(path string) bool
	fs       *fsnotify.Watcher
}

// New watches root. Only paths accepted by filter trigger the callback;
// a nil filter accepts everything.
func New(root string, debounce time.Duration, filter func(path string) bool) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if filter == nil {
		filter = func(string) bool { return true }
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{root: root, debounce: debounce, filter: filter, fs: fw}

	if err := w.addTree(root); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if err := w.fs.Add(p); err != nil {
			return errors.Wrapf(err, "failed to watch %s", p)
		}

		return nil
	})
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers debounced changes to fn until ctx is done. Callback errors
// are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	log := logger.Named("watch")

	pending := map[string]struct{}{}

	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					log.Warnw("failed to watch new directory", "dir", event.Name, "error", err)
				}

				continue
			}

			if !relevant(event) || !w.filter(event.Name) {
				continue
			}

			log.Debugw("change detected", "file", event.Name, "op", event.Op.String())

			pending[event.Name] = struct{}{}
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil

			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}

			sort.Strings(changed)
			clear(pending)

			if err := fn(ctx, changed); err != nil {
				log.Errorw("regeneration failed", "error", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			log.Warnw("watcher error", "error", err)
		}
	}
}

func relevant(e fsnotify.Event) bool {
	return e.Has(fsnotify.Write) || e.Has(fsnotify.Create) || e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename)
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
