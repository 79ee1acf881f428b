package modeler

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gekko3d/modeler/rt/core"
	"github.com/gekko3d/modeler/rt/model"

	"github.com/fsnotify/fsnotify"
)

const DefaultWatchDebounce = 200 * time.Millisecond

// ModelWatcher reports external changes to one model file. It watches the
// parent directory so editors that save by rename are still seen. Changes
// are delivered on a channel and picked up by the frame loop with Poll.
type ModelWatcher struct {
	watcher  *fsnotify.Watcher
	log      core.Logger
	debounce time.Duration
	changed  chan string

	mu        sync.Mutex
	path      string
	dir       string
	timer     *time.Timer
	muteUntil time.Time
	done      chan struct{}
}

func NewModelWatcher(debounce time.Duration, log core.Logger) (*ModelWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	mw := &ModelWatcher{
		watcher:  w,
		log:      core.OrNop(log),
		debounce: debounce,
		changed:  make(chan string, 1),
		done:     make(chan struct{}),
	}
	go mw.run()
	return mw, nil
}

// Watch switches the watched file to path. An empty path stops watching.
func (mw *ModelWatcher) Watch(path string) error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if mw.dir != "" {
		if err := mw.watcher.Remove(mw.dir); err != nil {
			mw.log.Debugf("unwatch %s: %v", mw.dir, err)
		}
		mw.path, mw.dir = "", ""
	}
	if path == "" {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if err := mw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	mw.path, mw.dir = abs, dir
	mw.log.Debugf("watching %s", abs)
	return nil
}

// Mute drops events for d. Used around our own saves.
func (mw *ModelWatcher) Mute(d time.Duration) {
	mw.mu.Lock()
	mw.muteUntil = time.Now().Add(d)
	if mw.timer != nil {
		mw.timer.Stop()
	}
	mw.mu.Unlock()
}

// Poll returns the changed path, if any, without blocking.
func (mw *ModelWatcher) Poll() (string, bool) {
	select {
	case p := <-mw.changed:
		return p, true
	default:
		return "", false
	}
}

func (mw *ModelWatcher) Close() error {
	close(mw.done)
	mw.mu.Lock()
	if mw.timer != nil {
		mw.timer.Stop()
	}
	mw.mu.Unlock()
	return mw.watcher.Close()
}

func (mw *ModelWatcher) run() {
	for {
		select {
		case <-mw.done:
			return
		case event, ok := <-mw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				mw.handle(event.Name)
			}
		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			mw.log.Warnf("watcher: %v", err)
		}
	}
}

func (mw *ModelWatcher) handle(name string) {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if mw.path == "" || filepath.Clean(name) != mw.path {
		return
	}
	if time.Now().Before(mw.muteUntil) {
		return
	}
	if mw.timer != nil {
		mw.timer.Stop()
	}
	path := mw.path
	mw.timer = time.AfterFunc(mw.debounce, func() {
		select {
		case mw.changed <- path:
		default:
		}
	})
}

// mutingStore mutes the watcher around every save so the editor does not
// reload its own output.
type mutingStore struct {
	model.FileStore
	watcher *ModelWatcher
}

func (s mutingStore) Save(m *model.Model, path string) error {
	s.watcher.Mute(2 * s.watcher.debounce)
	err := s.FileStore.Save(m, path)
	s.watcher.Mute(2 * s.watcher.debounce)
	return err
}
