package tab

import (
	"sort"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/internal/util"
)

// Folder is the browsing state of one visited directory: its listing, the
// hovered entry and scroll offset. A Folder is owned by exactly one slot of a
// [Tab] (current, parent or history) at a time.
type Folder struct {
	Cwd    navcore.Path
	Files  []navcore.Entry
	Cursor int
	Offset int
	Loaded bool // Files came from a full listing

	pendingHover *navcore.Path // hover requested before its entry was listed
}

// NewFolder returns an empty, unloaded view of cwd.
func NewFolder(cwd navcore.Path) *Folder {
	return &Folder{Cwd: cwd}
}

// Hovered returns the entry under the cursor.
func (f *Folder) Hovered() (navcore.Entry, bool) {
	if f.Cursor < 0 || f.Cursor >= len(f.Files) {
		return navcore.Entry{}, false
	}
	return f.Files[f.Cursor], true
}

// Hover moves the cursor onto url. If url is not listed yet the request is kept
// and applied by the next [Folder.Update] that lists it.
func (f *Folder) Hover(url navcore.Path) bool {
	if i := f.indexOf(url); i >= 0 {
		f.Cursor = i
		f.pendingHover = nil
		return true
	}
	f.pendingHover = &url
	return false
}

// Update applies a listing change and reports whether the listing changed.
func (f *Folder) Update(op navcore.FilesOp) bool {
	logger := util.GetLogger("Folder.Update")

	hovered, hadHover := f.Hovered()
	changed := false
	switch op.Kind {
	case navcore.OpFull:
		f.Files = append([]navcore.Entry(nil), op.Entries...)
		sortEntries(f.Files)
		f.Loaded = true
		changed = true
	case navcore.OpCreating:
		for _, e := range op.Entries {
			if f.indexOf(e.URL) >= 0 {
				continue
			}
			f.Files = append(f.Files, e)
			changed = true
		}
		if changed {
			sortEntries(f.Files)
		}
	default:
		logger.Warn().Stringer("kind", op.Kind).Msg("Unknown files op")
		return false
	}

	// Keep the cursor on the same entry across reorders
	switch {
	case f.pendingHover != nil:
		f.Hover(*f.pendingHover)
	case hadHover:
		if i := f.indexOf(hovered.URL); i >= 0 {
			f.Cursor = i
		}
	}
	f.Cursor = util.Clamp(f.Cursor, 0, max(len(f.Files)-1, 0))
	return changed
}

func (f *Folder) indexOf(url navcore.Path) int {
	for i, e := range f.Files {
		if e.URL.Equal(url) {
			return i
		}
	}
	return -1
}

func sortEntries(entries []navcore.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
}
