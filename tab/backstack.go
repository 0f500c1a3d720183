package tab

import "github.com/brettbedarf/navcore"

// Backstack is the ordered record of regular locations visited, most recent
// last, with a cursor for stepping back and forward through it.
type Backstack struct {
	paths  []navcore.Path
	cursor int // index of the current location; -1 when empty
}

func NewBackstack() *Backstack {
	return &Backstack{cursor: -1}
}

// Push records p as the current location, discarding anything ahead of the
// cursor. A p equal to the current location is not recorded twice.
func (b *Backstack) Push(p navcore.Path) {
	if b.cursor >= 0 && b.paths[b.cursor].Equal(p) {
		return
	}
	b.paths = append(b.paths[:b.cursor+1], p)
	b.cursor = len(b.paths) - 1
}

// Backward returns the location behind the cursor without moving it.
func (b *Backstack) Backward() (navcore.Path, bool) {
	if b.cursor <= 0 {
		return navcore.Path{}, false
	}
	return b.paths[b.cursor-1], true
}

// Forward returns the location ahead of the cursor without moving it.
func (b *Backstack) Forward() (navcore.Path, bool) {
	if b.cursor+1 >= len(b.paths) {
		return navcore.Path{}, false
	}
	return b.paths[b.cursor+1], true
}

// Shift moves the cursor by delta, typically after a successful Backward or Forward.
func (b *Backstack) Shift(delta int) {
	b.cursor = max(-1, min(b.cursor+delta, len(b.paths)-1))
}

// Paths returns a copy of the recorded locations, oldest first.
func (b *Backstack) Paths() []navcore.Path {
	return append([]navcore.Path(nil), b.paths...)
}

func (b *Backstack) Len() int {
	return len(b.paths)
}
