package schema

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// LoadFunc turns a file path into a VarSet. FromCSVHeader, LoadTOML and
// LoadJSON are all adaptable to this signature.
type LoadFunc func(path string) (*VarSet, error)

// Watcher reloads a dataset's variable schema whenever the backing file
// changes, so callers always validate formulas against the columns that
// are actually on disk. The validator itself stays pure; the watcher
// lives entirely on the caller side of that boundary.
type Watcher struct {
	path    string
	load    LoadFunc
	fsw     *fsnotify.Watcher
	updates chan *VarSet
	errs    chan error
	done    chan struct{}
}

// Watch starts watching path and returns the initial VarSet along with
// the watcher. Subsequent writes to the file are loaded and delivered on
// Updates; load failures (for example a half-written file) are delivered
// on Errors and do not stop the watch.
func Watch(path string, load LoadFunc) (*VarSet, *Watcher, error) {
	initial, err := load(path)
	if err != nil {
		return nil, nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating file watcher: %w", err)
	}
	// Watch the directory, not the file: editors that replace the file
	// via rename would otherwise drop the watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", path, err)
	}

	w := &Watcher{
		path:    path,
		load:    load,
		fsw:     fsw,
		updates: make(chan *VarSet, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return initial, w, nil
}

// Updates delivers a fresh VarSet after each successful reload.
func (w *Watcher) Updates() <-chan *VarSet { return w.updates }

// Errors delivers reload failures. The watch continues after an error.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watch and releases the underlying file watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			vs, err := w.load(w.path)
			if err != nil {
				w.deliver(nil, err)
				continue
			}
			w.deliver(vs, nil)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.deliver(nil, err)
		}
	}
}

// deliver replaces any undrained value so slow consumers always see the
// latest snapshot rather than a backlog of stale ones.
func (w *Watcher) deliver(vs *VarSet, err error) {
	if err != nil {
		select {
		case w.errs <- err:
		default:
			select {
			case <-w.errs:
			default:
			}
			w.errs <- err
		}
		return
	}
	select {
	case w.updates <- vs:
	default:
		select {
		case <-w.updates:
		default:
		}
		w.updates <- vs
	}
}
