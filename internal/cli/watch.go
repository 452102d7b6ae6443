package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/rocrate/pkg/errors"
)

// watchCrate calls onChange after each burst of filesystem changes to the
// crate at location, once no further change has arrived for debounce. A
// folder crate is watched recursively; for a zip archive only events on
// the archive itself count. Entries whose name starts with a dot are
// ignored, which covers the writers' temporary files. It returns ctx.Err()
// when ctx is done.
func watchCrate(ctx context.Context, location string, debounce time.Duration, logger *log.Logger, onChange func()) error {
	abs, err := filepath.Abs(location)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "resolve %s", location)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create watcher")
	}
	defer w.Close()

	folder := isDir(abs)
	if folder {
		err = addWatchesRecursive(w, abs, logger)
	} else {
		err = w.Add(filepath.Dir(abs))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "watch %s", location)
	}

	relevant := func(name string) bool {
		if strings.HasPrefix(filepath.Base(name), ".") {
			return false
		}
		return folder || name == abs
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev.Name) {
				continue
			}
			if folder && ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := addWatchesRecursive(w, ev.Name, logger); err != nil {
					logger.Warn("watch new directory", "path", ev.Name, "err", err)
				}
			}
			logger.Debug("change", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)

		case <-timer.C:
			onChange()
		}
	}
}

// addWatchesRecursive watches root and every non-hidden directory below it.
func addWatchesRecursive(w *fsnotify.Watcher, root string, logger *log.Logger) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		logger.Debug("watching directory", "path", path)
		return w.Add(path)
	})
}
