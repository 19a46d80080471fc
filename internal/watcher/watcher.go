// Package watcher observes the data root for changes made outside the
// running session (sync tools, manual edits) and reports them as group
// events so the surrounding application can refresh its views.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/daybook/internal/group"
	"github.com/starford/daybook/internal/naming"
)

// Event describes an external change to a group's data file.
// Kind is one of "created", "updated", "deleted".
type Event struct {
	Kind     string
	Identity group.Identity
	Path     string // relative to the data root
}

// Callback receives watcher events.
type Callback func(Event)

// Watch starts an fsnotify watcher on the data root and delivers events
// until ctx is cancelled. Directories created at runtime (new year or
// area directories) are added to the watch list automatically. Files that
// do not resolve to a group identity are ignored; a rename of the old
// path surfaces as a deletion, with the new path arriving as its own
// create event.
//
// Raw notifications are coalesced per path over the debounce window, so
// one logical save (create, write, sync on the same file) surfaces as a
// single event.
func Watch(ctx context.Context, root string, debounce time.Duration, logger *slog.Logger, cb Callback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}

	logger.Info("watcher: started",
		slog.String("root", root),
		slog.Duration("debounce", debounce))

	// Pending events keyed by relative path. The flush timer starts with
	// the first queued event; a create followed by writes to the same path
	// stays a single "created".
	pending := make(map[string]Event)
	var flush <-chan time.Time
	queue := func(ev Event) {
		if prev, ok := pending[ev.Path]; ok && prev.Kind == "created" && ev.Kind == "updated" {
			ev.Kind = prev.Kind
		}
		pending[ev.Path] = ev
		if flush == nil {
			flush = time.After(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case <-flush:
			for _, ev := range pending {
				deliver(cb, ev)
			}
			pending = make(map[string]Event)
			flush = nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			absPath := ev.Name

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					}
					emitExisting(root, absPath, logger, queue)
					continue
				}
			}

			if !strings.HasSuffix(absPath, naming.Ext) {
				continue
			}
			rel, relErr := filepath.Rel(root, absPath)
			if relErr != nil {
				continue
			}
			id, idErr := naming.Identify(rel)
			if idErr != nil {
				logger.Debug("watcher: unrecognized file", slog.String("path", rel))
				continue
			}

			switch {
			case ev.Op&fsnotify.Create != 0:
				queue(Event{Kind: "created", Identity: id, Path: rel})
			case ev.Op&fsnotify.Write != 0:
				queue(Event{Kind: "updated", Identity: id, Path: rel})
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				queue(Event{Kind: "deleted", Identity: id, Path: rel})
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// emitExisting queues data files already present in a newly created
// directory; a sync tool may drop a whole year directory in at once.
func emitExisting(root, dirPath string, logger *slog.Logger, queue func(Event)) {
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, naming.Ext) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		id, idErr := naming.Identify(rel)
		if idErr != nil {
			return nil
		}
		logger.Debug("watcher: found in new dir", slog.String("path", rel))
		queue(Event{Kind: "created", Identity: id, Path: rel})
		return nil
	})
}

func deliver(cb Callback, ev Event) {
	if cb != nil {
		cb(ev)
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
