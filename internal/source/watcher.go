package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDuration = 100 * time.Millisecond

// stamp identifies one version of a file's contents.
type stamp struct {
	modTime time.Time
	size    int64
}

func stampOf(info os.FileInfo) stamp {
	return stamp{modTime: info.ModTime(), size: info.Size()}
}

func (s stamp) equal(o stamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

// Watcher monitors a source tree and reports files accepted by its Finder
// whenever they are written or created.
type Watcher struct {
	root   string
	finder *Finder
	logger *slog.Logger
	Ready  chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)

	mu     sync.Mutex
	timers  map[string]*time.Timer
	settled map[string]stamp
}

// NewWatcher creates a Watcher for root that filters events through f.
func NewWatcher(root string, f *Finder, logger *slog.Logger) *Watcher {
	return &Watcher{
		root:       root,
		finder:     f,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
		timers:     make(map[string]*time.Timer),
		settled:    make(map[string]stamp),
	}
}

// Settled records the current state of path as written by cppfmt itself.
// Events are suppressed until the file's size or modification time changes.
func (w *Watcher) Settled(path string) {
	info, err := os.Stat(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	path = filepath.Clean(path)
	if err != nil {
		delete(w.settled, path)
		return
	}
	w.settled[path] = stampOf(info)
}

// Watch blocks until ctx is cancelled, calling callback with the path of each
// changed source file. Events for the same file are debounced.
func (w *Watcher) Watch(ctx context.Context, callback func(path string)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	defer w.stopTimers()

	if err := w.addRecursive(watcher, w.root); err != nil {
		return err
	}

	w.logger.Info("Watching for changes in "+w.root, "root", w.root)
	if w.Ready != nil {
		close(w.Ready)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if path, relevant := w.handleEvent(watcher, event); relevant {
				w.schedule(path, callback)
			}
		}
	}
}

// handleEvent adds new directories to the watcher and returns the path of a
// relevant file change.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}

	info, err := os.Lstat(event.Name)
	if err != nil {
		return "", false
	}

	if info.IsDir() {
		if event.Has(fsnotify.Create) && !w.finder.ignored(event.Name, true) {
			if err := w.addRecursive(watcher, event.Name); err != nil {
				w.logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
			}
		}
		return "", false
	}

	if !info.Mode().IsRegular() || !w.finder.Accepts(event.Name) || w.isSettled(event.Name, info) {
		return "", false
	}
	return event.Name, true
}

// isSettled reports whether info still matches the state recorded by Settled.
// A mismatch drops the record so later edits are reported.
func (w *Watcher) isSettled(path string, info os.FileInfo) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	path = filepath.Clean(path)
	s, ok := w.settled[path]
	if !ok {
		return false
	}
	if s.equal(stampOf(info)) {
		return true
	}
	delete(w.settled, path)
	return false
}

func (w *Watcher) schedule(path string, callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(debounceDuration, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		// The write may have come from a format that finished meanwhile
		if info, err := os.Stat(path); err == nil && w.isSettled(path, info) {
			return
		}
		callback(path)
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

// addRecursive adds root and its subdirectories to the watcher, skipping
// the directories the Finder ignores.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.finder.ignored(path, true) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
