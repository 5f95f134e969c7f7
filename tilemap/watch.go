package tilemap

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events a single save produces.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a map file whenever it changes on disk. Freshly loaded maps
// arrive on Maps; files that fail to load are reported on Errors and the
// previous map stays in use.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	options []Option

	Maps   chan *Map
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the map file at path. The containing directory is
// watched so that editors which replace the file on save are handled.
func NewWatcher(path string, options ...Option) (*Watcher, error) {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    path,
		options: options,
		Maps:    make(chan *Map, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching and closes Maps and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Maps)
		close(w.Errors)
		close(w.done)
	}()

	var reload <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			reload = time.After(reloadDebounce)
		case <-reload:
			reload = nil
			m, err := LoadFile(w.path, w.options...)
			if err != nil {
				if !w.sendError(err) {
					return
				}
				continue
			}
			select {
			case w.Maps <- m:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if !w.sendError(err) {
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) sendError(err error) bool {
	select {
	case w.Errors <- err:
		return true
	case <-w.closeCh:
		return false
	}
}
