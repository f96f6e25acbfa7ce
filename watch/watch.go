// Package watch notifies callers when the catalog or ledger files
// change on disk, so long-lived views (like the overdue report in
// --watch mode) can re-render without polling.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/oakview/circulate/errors"
)

// Callback is invoked after a debounced change to any watched file.
type Callback func()

// Watcher watches a set of files for changes and triggers callbacks.
type Watcher struct {
	names   map[string]bool // absolute paths of the watched files
	watcher *fsnotify.Watcher
	log     *zap.SugaredLogger

	mu            sync.Mutex
	callbacks     []Callback
	debounceTimer *time.Timer
	debounce      time.Duration

	done chan struct{}
}

// New creates a watcher over the given file paths. The stores replace
// their files via rename, which drops a watch on the file itself, so
// the parent directories are watched and events are filtered by name.
func New(debounce time.Duration, log *zap.SugaredLogger, paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		names:    make(map[string]bool, len(paths)),
		watcher:  fsw,
		log:      log,
		debounce: debounce,
		done:     make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", path)
		}
		w.names[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return w, nil
}

// OnChange registers a callback to run after each debounced change.
func (w *Watcher) OnChange(callback Callback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop ends watching and releases the fsnotify resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

// watchLoop monitors file system events until Stop is called.
func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.scheduleFire()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("file watcher error", "error", err)
		}
	}
}

// relevant reports whether the event touches a watched file in a way
// that changes its contents. Create covers the rename-into-place the
// stores use for atomic rewrites.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.names[event.Name] {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleFire arms the debounce timer, collapsing bursts of events
// (a rewrite produces several) into one callback round.
func (w *Watcher) scheduleFire() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	callbacks := make([]Callback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}
