package tab

import (
	"context"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/internal/util"
)

// Cd navigates to target and reports whether the tab moved.
//
// A target that cannot be stat'ed leaves everything untouched. A file target
// opens its parent directory with the file hovered. Navigating to the directory
// already shown is a no-op apart from the hover.
func (t *Tab) Cd(ctx context.Context, target navcore.Path) bool {
	return t.cd(ctx, target, true)
}

// Back returns to the previous location on the back-stack.
func (t *Tab) Back(ctx context.Context) bool {
	p, ok := t.backstack.Backward()
	if !ok {
		return false
	}
	if !t.cd(ctx, p, false) {
		return false
	}
	t.backstack.Shift(-1)
	return true
}

// Forward undoes a [Tab.Back].
func (t *Tab) Forward(ctx context.Context) bool {
	p, ok := t.backstack.Forward()
	if !ok {
		return false
	}
	if !t.cd(ctx, p, false) {
		return false
	}
	t.backstack.Shift(1)
	return true
}

func (t *Tab) cd(ctx context.Context, target navcore.Path, push bool) bool {
	logger := util.GetLogger("Tab.Cd")
	logger.Trace().Str("target", target.String()).Msg("Cd called")

	file, err := t.stater.Stat(ctx, target)
	if err != nil {
		logger.Debug().Err(err).Str("target", target.String()).Msg("Stat failed; staying put")
		return false
	}

	var hovered *navcore.Path
	if !file.IsDir {
		parent, ok := target.Parent()
		if !ok {
			logger.Debug().Str("target", target.String()).Msg("Non-directory without parent")
			return false
		}
		hovered = &file.URL
		target = parent
		t.bus.Emit(navcore.Files{Op: navcore.FilesOp{
			Kind:    navcore.OpCreating,
			Cwd:     parent,
			Entries: []navcore.Entry{*file},
		}})
	}

	// Already in target
	if t.current.Cwd.Equal(target) {
		if hovered != nil {
			t.bus.Emit(navcore.Hover{URL: *hovered})
		}
		return false
	}

	// Old parent into the cache; virtual views are not kept
	if t.parent != nil {
		if t.parent.Cwd.IsRegular() {
			t.history.Insert(t.parent)
		}
		t.parent = nil
	}

	prev := t.current
	t.current = t.history.TakeOrNew(target)
	if prev.Cwd.IsRegular() {
		t.history.Insert(prev)
	}

	if p, ok := target.Parent(); ok {
		t.parent = t.history.TakeOrNew(p)
	}

	if hovered != nil {
		t.bus.Emit(navcore.Hover{URL: *hovered})
	}

	if push && target.IsRegular() {
		t.backstack.Push(target)
	}

	logger.Debug().
		Str("from", prev.Cwd.String()).
		Str("to", target.String()).
		Int("history", t.history.Len()).
		Msg("Changed directory")

	t.bus.Emit(navcore.Refresh{})
	return true
}
