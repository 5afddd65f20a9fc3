package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-stereo/engine/scene"
	"github.com/Carmen-Shannon/oxy-stereo/engine/session"
	"github.com/fsnotify/fsnotify"
)

const settleDelay = 100 * time.Millisecond

// UpdateWatcher re-reads an update document whenever it changes and publishes the parsed
// update. Bursts of writes are coalesced into one read once the file has been quiet for
// a short delay.
type UpdateWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	registry scene.Registry

	Updates chan session.Update
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewUpdateWatcher watches the directory of path, so the document may be created, replaced
// or removed while watched.
//
// Parameters:
//   - path: the update document
//   - reg: resolves drawable names in updates
//
// Returns:
//   - *UpdateWatcher: the running watcher
//   - error: error if the directory cannot be watched
func NewUpdateWatcher(path string, reg scene.Registry) (*UpdateWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &UpdateWatcher{
		watcher:  w,
		path:     abs,
		registry: reg,
		Updates:  make(chan session.Update, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes Updates and Errors.
func (w *UpdateWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *UpdateWatcher) run() {
	defer close(w.done)

	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			settle.Reset(settleDelay)
		case <-settle.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *UpdateWatcher) reload() {
	u, err := LoadUpdate(w.path, w.registry)
	if err != nil {
		w.report(err)
		return
	}
	if u.IsZero() {
		return
	}
	select {
	case w.Updates <- u:
	case <-w.closeCh:
	}
}

// report publishes err, or logs it when the previous error was not consumed yet.
func (w *UpdateWatcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
		log.Printf("config: update watcher: %v", err)
	}
}
