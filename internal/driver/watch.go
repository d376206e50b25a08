package driver

import (
	"github.com/fsnotify/fsnotify"
)

// Watcher wraps fsnotify with a channel pair carrying only the events the
// driver cares about: paths whose contents changed.
type Watcher struct {
	w       *fsnotify.Watcher
	changes chan string
	errs    chan error
}

// NewWatcher creates a watcher over the given paths.
func NewWatcher(paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{w: w, changes: make(chan string, 16), errs: make(chan error, 1)}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			w.Close()
			return nil, err
		}
	}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				close(fw.changes)
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.changes <- ev.Name
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				close(fw.changes)
				return
			}
			fw.errs <- err
		}
	}
}

// Changes yields paths whose contents changed. The channel closes when the
// watcher is closed.
func (fw *Watcher) Changes() <-chan string { return fw.changes }

// Errors yields watcher failures.
func (fw *Watcher) Errors() <-chan error { return fw.errs }

// Close stops the watcher.
func (fw *Watcher) Close() error { return fw.w.Close() }
