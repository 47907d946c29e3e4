package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cifrateca/logger"
	"cifrateca/model"

	"github.com/fsnotify/fsnotify"
)

// Watcher logs changes made to the catalog outside the API, so operators
// can tell which listings changed because someone edited the directory by
// hand. Listings always recompute from disk; the watcher observes, it does
// not cache.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	done    chan struct{}
}

// NewWatcher creates a watcher covering the catalog root and every
// subdirectory below it.
func NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{watcher: fw, root: root, done: make(chan struct{})}, nil
}

// Start runs the event loop in a goroutine until Close is called.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handle(event)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher error", logger.ErrorField(err))
			case <-w.done:
				return
			}
		}
	}()
}

func (w *Watcher) handle(event fsnotify.Event) {
	// New directories need their own watch to cover files created inside.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				logger.Warn("failed to watch new category directory",
					logger.String("path", event.Name), logger.ErrorField(err))
			}
			logger.Info("category directory added to catalog", logger.String("path", w.rel(event.Name)))
			return
		}
	}

	if !strings.HasSuffix(event.Name, model.CifraExt) {
		return
	}

	switch {
	case event.Op&fsnotify.Create != 0:
		logger.Info("cifra appeared in catalog", logger.String("path", w.rel(event.Name)))
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		logger.Info("cifra left catalog", logger.String("path", w.rel(event.Name)))
	case event.Op&fsnotify.Write != 0:
		logger.Debug("cifra modified on disk", logger.String("path", w.rel(event.Name)))
	}
}

func (w *Watcher) rel(path string) string {
	if rel, err := filepath.Rel(w.root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// Close stops the event loop and releases the underlying watches.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
