// Package tab implements the navigator of one browser tab: which directory is
// shown, the cached views of directories visited before, and the back-stack.
//
// A Tab is driven by a single dispatch loop and is not safe for concurrent use.
// Work that must not block the loop, like the interactive cd prompt, runs on its
// own goroutine and reaches the Tab only through the bus.
package tab

import (
	"time"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/config"
)

// Tab owns the current and parent views, the view cache and the back-stack.
type Tab struct {
	current   *Folder
	parent    *Folder // nil at the filesystem root
	history   *History
	backstack *Backstack

	stater navcore.Stater
	bus    navcore.Bus

	cdTitle        string
	debounceWindow time.Duration
}

// New returns a Tab showing cwd. No I/O happens until the first [Tab.Cd].
// A regular cwd is the first back-stack entry, so [Tab.Back] can return to it.
func New(cwd navcore.Path, stater navcore.Stater, bus navcore.Bus, cfg *config.Config) *Tab {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	t := &Tab{
		current:        NewFolder(cwd),
		history:        NewHistory(),
		backstack:      NewBackstack(),
		stater:         stater,
		bus:            bus,
		cdTitle:        cfg.CdTitle,
		debounceWindow: cfg.DebounceWindow,
	}
	if p, ok := cwd.Parent(); ok {
		t.parent = NewFolder(p)
	}
	if cwd.IsRegular() {
		t.backstack.Push(cwd)
	}
	return t
}

// Current returns the view being shown.
func (t *Tab) Current() *Folder {
	return t.current
}

// Parent returns the view of the current directory's parent, nil at the root.
func (t *Tab) Parent() *Folder {
	return t.parent
}

// Cwd returns the path being shown.
func (t *Tab) Cwd() navcore.Path {
	return t.current.Cwd
}

func (t *Tab) History() *History {
	return t.history
}

func (t *Tab) Backstack() *Backstack {
	return t.backstack
}

// Hover highlights url in the current view, now or once it is listed.
func (t *Tab) Hover(url navcore.Path) bool {
	return t.current.Hover(url)
}

// ApplyFilesOp hands op to whichever view shows op.Cwd and reports whether one did.
func (t *Tab) ApplyFilesOp(op navcore.FilesOp) bool {
	if f := t.folder(op.Cwd); f != nil {
		f.Update(op)
		return true
	}
	return false
}

// folder finds the live view of p in any slot.
func (t *Tab) folder(p navcore.Path) *Folder {
	switch {
	case t.current.Cwd.Equal(p):
		return t.current
	case t.parent != nil && t.parent.Cwd.Equal(p):
		return t.parent
	}
	if f, ok := t.history.Get(p); ok {
		return f
	}
	return nil
}
