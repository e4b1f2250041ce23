package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/glengine/engine/core"
)

// Handler is invoked with the path of a watched file after it was created or written.
type Handler func(path string)

// Watcher reports changes of individual files. It watches the parent
// directory so files replaced by rename (as most editors do) are still seen.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	handlers map[string]Handler
	dirs     map[string]int

	// closeFn releases the fsnotify watcher. Its error is kept in closeErr
	// by the watching goroutine and returned from Close.
	closeFn  func() error
	closeErr error

	mutex    sync.RWMutex
	done     chan struct{}
	stopped  chan struct{}
	isClosed bool
}

func NewWatcher() (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsnotify: fsWatch,
		handlers: make(map[string]Handler),
		dirs:     make(map[string]int),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	w.closeFn = fsWatch.Close
	go w.start()
	return w, nil
}

// Watch starts reporting changes of the named file to h.
func (w *Watcher) Watch(name string, h Handler) error {
	path, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.isClosed {
		return errors.New("watcher already closed")
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fsnotify.Add(dir); err != nil {
			return err
		}
	}
	if _, exists := w.handlers[path]; !exists {
		w.dirs[dir]++
	}
	w.handlers[path] = h
	return nil
}

// Unwatch stops reporting changes of the named file.
func (w *Watcher) Unwatch(name string) error {
	path, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, exists := w.handlers[path]; !exists {
		return nil
	}
	delete(w.handlers, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.fsnotify.Remove(dir)
	}
	return nil
}

func (w *Watcher) Close() error {
	w.mutex.Lock()
	if w.isClosed {
		w.mutex.Unlock()
		return nil
	}
	w.isClosed = true
	w.mutex.Unlock()

	close(w.done)
	<-w.stopped
	return w.closeErr
}

func (w *Watcher) start() {
	defer close(w.stopped)
	for {
		select {

		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.handleFileEvent(e.Name)
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err.Error())

		case <-w.done:
			if err := w.closeFn(); err != nil {
				w.closeErr = fmt.Errorf("failed to close the file watcher: %w", err)
			}
			return
		}
	}
}

func (w *Watcher) handleFileEvent(name string) {
	path, err := filepath.Abs(name)
	if err != nil {
		return
	}

	w.mutex.RLock()
	h, ok := w.handlers[path]
	w.mutex.RUnlock()

	if ok {
		core.LogDebug("file `%s` changed", path)
		h(path)
	}
}
