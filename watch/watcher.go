// Package watch keeps the listings of shown directories fresh by watching them
// with fsnotify and publishing a full relisting whenever one changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/internal/util"
	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a set of directories. The set is replaced as a whole by
// [Watcher.Watch], normally with the current and parent directories of a tab.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	lister    navcore.Lister
	emitter   navcore.Emitter
	onChange  func(dir navcore.Path)

	mu   sync.Mutex
	dirs map[string]navcore.Path

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New starts a watcher that relists through lister and publishes through emitter.
// onChange, if not nil, is called with every directory that changed.
func New(lister navcore.Lister, emitter navcore.Emitter, onChange func(dir navcore.Path)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fsWatcher: fsWatcher,
		lister:    lister,
		emitter:   emitter,
		onChange:  onChange,
		dirs:      make(map[string]navcore.Path),
		ctx:       ctx,
		cancel:    cancel,
	}
	w.wg.Go(w.loop)
	return w, nil
}

// Watch replaces the watched set with dirs. Virtual paths are skipped since
// there is nothing on disk to watch. Every directory that could not be added
// is reported in the returned error; the others are watched regardless.
func (w *Watcher) Watch(dirs ...navcore.Path) error {
	logger := util.GetLogger("Watcher.Watch")

	want := make(map[string]navcore.Path, len(dirs))
	for _, d := range dirs {
		if d.IsRegular() {
			want[d.Key()] = d
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for key, d := range w.dirs {
		if _, ok := want[key]; ok {
			continue
		}
		if err := w.fsWatcher.Remove(d.String()); err != nil {
			logger.Trace().Err(err).Str("dir", d.String()).Msg("Remove failed")
		}
		delete(w.dirs, key)
	}

	var errs []error
	for key, d := range want {
		if _, ok := w.dirs[key]; ok {
			continue
		}
		if err := w.fsWatcher.Add(d.String()); err != nil {
			errs = append(errs, fmt.Errorf("failed to watch %s: %w", d, err))
			continue
		}
		w.dirs[key] = d
		logger.Debug().Str("dir", d.String()).Msg("Watching directory")
	}
	return errors.Join(errs...)
}

// Dirs returns the watched directories sorted by path.
func (w *Watcher) Dirs() []navcore.Path {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]navcore.Path, 0, len(w.dirs))
	for _, d := range w.dirs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		err = w.fsWatcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	logger := util.GetLogger("Watcher.loop")

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			logger.Trace().Str("name", event.Name).Stringer("op", event.Op).Msg("Event")
			if dir, ok := w.watched(filepath.Dir(event.Name)); ok {
				w.refresh(dir)
			}
			if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				// The watched directory itself went away
				if dir, ok := w.watched(event.Name); ok {
					w.refresh(dir)
				}
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("fsnotify watcher error")
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *Watcher) watched(name string) (navcore.Path, bool) {
	p := navcore.NewPath(name)
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.dirs[p.Key()]
	return d, ok
}

// refresh relists dir and publishes the result as a full listing.
func (w *Watcher) refresh(dir navcore.Path) {
	logger := util.GetLogger("Watcher.refresh")

	entries, err := w.lister.ReadDir(w.ctx, dir)
	if err != nil {
		logger.Debug().Err(err).Str("dir", dir.String()).Msg("Relisting failed")
	} else {
		w.emitter.Emit(navcore.Files{Op: navcore.FilesOp{Kind: navcore.OpFull, Cwd: dir, Entries: entries}})
	}
	if w.onChange != nil {
		w.onChange(dir)
	}
}
