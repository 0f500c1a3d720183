package tab

import (
	"testing"

	"github.com/brettbedarf/navcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(paths ...string) []navcore.Entry {
	es := make([]navcore.Entry, len(paths))
	for i, s := range paths {
		es[i] = navcore.Entry{URL: navcore.NewPath(s)}
	}
	return es
}

func TestFolder_UpdateKeepsHoveredEntry(t *testing.T) {
	t.Parallel()

	f := NewFolder(p("/d"))
	f.Update(navcore.FilesOp{Kind: navcore.OpFull, Cwd: p("/d"), Entries: entries("/d/b", "/d/c")})
	require.True(t, f.Hover(p("/d/c")))
	require.Equal(t, 1, f.Cursor)

	changed := f.Update(navcore.FilesOp{Kind: navcore.OpCreating, Cwd: p("/d"), Entries: entries("/d/a")})

	assert.True(t, changed)
	assert.Equal(t, 2, f.Cursor, "cursor follows its entry when one sorts before it")
	hovered, ok := f.Hovered()
	require.True(t, ok)
	assert.Equal(t, p("/d/c"), hovered.URL)
}

func TestFolder_CreatingSkipsKnownEntries(t *testing.T) {
	t.Parallel()

	f := NewFolder(p("/d"))
	f.Update(navcore.FilesOp{Kind: navcore.OpFull, Cwd: p("/d"), Entries: entries("/d/a")})

	assert.False(t, f.Update(navcore.FilesOp{Kind: navcore.OpCreating, Cwd: p("/d"), Entries: entries("/d/a")}))
	assert.Len(t, f.Files, 1)
	assert.True(t, f.Loaded)
}

func TestFolder_CreatingDoesNotMarkLoaded(t *testing.T) {
	t.Parallel()

	f := NewFolder(p("/d"))
	f.Update(navcore.FilesOp{Kind: navcore.OpCreating, Cwd: p("/d"), Entries: entries("/d/file")})

	assert.False(t, f.Loaded, "a partial listing still needs a full read")
	assert.Len(t, f.Files, 1)
}

func TestFolder_FullListingClampsCursor(t *testing.T) {
	t.Parallel()

	f := NewFolder(p("/d"))
	f.Update(navcore.FilesOp{Kind: navcore.OpFull, Cwd: p("/d"), Entries: entries("/d/a", "/d/b", "/d/c")})
	f.Cursor = 2

	f.Update(navcore.FilesOp{Kind: navcore.OpFull, Cwd: p("/d"), Entries: entries("/d/a")})

	assert.Equal(t, 0, f.Cursor)
	f.Update(navcore.FilesOp{Kind: navcore.OpFull, Cwd: p("/d")})
	assert.Equal(t, 0, f.Cursor)
	_, ok := f.Hovered()
	assert.False(t, ok)
}

func TestBackstack_PeekDoesNotMove(t *testing.T) {
	t.Parallel()

	b := NewBackstack()
	_, ok := b.Backward()
	assert.False(t, ok)

	b.Push(p("/a"))
	b.Push(p("/b"))

	for range 2 {
		prev, ok := b.Backward()
		require.True(t, ok)
		assert.Equal(t, p("/a"), prev)
	}
	_, ok = b.Forward()
	assert.False(t, ok)

	b.Shift(-1)
	next, ok := b.Forward()
	require.True(t, ok)
	assert.Equal(t, p("/b"), next)
}

func TestBackstack_PushSkipsCurrent(t *testing.T) {
	t.Parallel()

	b := NewBackstack()
	b.Push(p("/a"))
	b.Push(p("/a"))
	b.Push(p("/b"))
	b.Shift(-1)
	b.Push(p("/a"))

	assert.Equal(t, []navcore.Path{p("/a"), p("/b")}, b.Paths(), "re-pushing the current location keeps what is ahead")
}

func TestHistory_TakeRemoves(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	f := NewFolder(p("/x"))
	h.Insert(f)

	got, ok := h.Take(p("/x/"))
	require.True(t, ok, "lookup is by normalized path")
	assert.Same(t, f, got)
	assert.Zero(t, h.Len())

	fresh := h.TakeOrNew(p("/x"))
	assert.NotSame(t, f, fresh)
	assert.Equal(t, p("/x"), fresh.Cwd)
}
