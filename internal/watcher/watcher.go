package watcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/toyz/bunner/internal/errors"
)

// ProjectWatcher watches a source tree recursively and reports filtered
// TypeScript file changes
type ProjectWatcher struct {
	root string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	watched map[string]bool
	done    chan struct{}
}

// NewProjectWatcher creates a watcher for root. Nothing is watched until Start.
func NewProjectWatcher(root string) *ProjectWatcher {
	return &ProjectWatcher{
		root:    filepath.Clean(root),
		watched: make(map[string]bool),
	}
}

// Root returns the watched directory
func (pw *ProjectWatcher) Root() string {
	return pw.root
}

// Start begins watching. onChange is called from the watcher goroutine.
func (pw *ProjectWatcher) Start(onChange func(FileChangePayload)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapWatchError(pw.root, err)
	}

	done := make(chan struct{})
	pw.mu.Lock()
	pw.watcher, pw.done = w, done
	pw.mu.Unlock()

	if err := pw.addTree(pw.root); err != nil {
		pw.mu.Lock()
		pw.watcher, pw.done = nil, nil
		pw.watched = make(map[string]bool)
		pw.mu.Unlock()
		_ = w.Close()
		return errors.WrapWatchError(pw.root, err)
	}

	go pw.eventLoop(w, done, onChange)
	return nil
}

// WatchedDirs returns the number of directories currently registered
func (pw *ProjectWatcher) WatchedDirs() int {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return len(pw.watched)
}

func (pw *ProjectWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != pw.root && IsIgnoredDir(d.Name()) {
			return filepath.SkipDir
		}

		pw.mu.Lock()
		defer pw.mu.Unlock()
		if pw.watcher == nil || pw.watched[path] {
			return nil
		}
		if err := pw.watcher.Add(path); err != nil {
			return err
		}
		pw.watched[path] = true
		return nil
	})
}

func (pw *ProjectWatcher) eventLoop(w *fsnotify.Watcher, done chan struct{}, onChange func(FileChangePayload)) {
	defer close(done)
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			pw.handleEvent(event, onChange)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			if err != nil {
				onChange(FileChangePayload{EventType: EventError})
			}
		}
	}
}

func (pw *ProjectWatcher) handleEvent(event fsnotify.Event, onChange func(FileChangePayload)) {
	if event.Has(fsnotify.Create) {
		// New directories are not covered by existing watches
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = pw.addTree(event.Name)
			return
		}
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		pw.mu.Lock()
		delete(pw.watched, event.Name)
		pw.mu.Unlock()
	}

	rel := Normalize(pw.root, event.Name)
	if ShouldIgnore(rel) {
		return
	}
	onChange(FileChangePayload{EventType: EventTypeOf(event.Op), Filename: rel})
}

// Close stops watching. It is safe to call before Start and more than once.
func (pw *ProjectWatcher) Close() error {
	pw.mu.Lock()
	w, done := pw.watcher, pw.done
	pw.watcher = nil
	pw.watched = make(map[string]bool)
	pw.mu.Unlock()

	if w == nil {
		return nil
	}
	err := w.Close()
	<-done
	return err
}
