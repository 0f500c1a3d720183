package tab

import "github.com/brettbedarf/navcore"

// History caches the views of visited directories not currently shown, keyed
// by normalized path. Folders move in and out by value: Take removes.
type History struct {
	folders map[string]*Folder
}

func NewHistory() *History {
	return &History{folders: make(map[string]*Folder)}
}

// Take removes and returns the cached view of p.
func (h *History) Take(p navcore.Path) (*Folder, bool) {
	f, ok := h.folders[p.Key()]
	if ok {
		delete(h.folders, p.Key())
	}
	return f, ok
}

// TakeOrNew removes and returns the cached view of p, or a new one.
func (h *History) TakeOrNew(p navcore.Path) *Folder {
	if f, ok := h.Take(p); ok {
		return f
	}
	return NewFolder(p)
}

// Insert caches f under its Cwd, replacing any previous view of that path.
func (h *History) Insert(f *Folder) {
	h.folders[f.Cwd.Key()] = f
}

// Get returns the cached view of p without removing it.
func (h *History) Get(p navcore.Path) (*Folder, bool) {
	f, ok := h.folders[p.Key()]
	return f, ok
}

// Contains reports whether p has a cached view
func (h *History) Contains(p navcore.Path) bool {
	_, ok := h.folders[p.Key()]
	return ok
}

func (h *History) Len() int {
	return len(h.folders)
}
