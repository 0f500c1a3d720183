package navcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPath_Normalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/a/b/", "/a/b"},
		{"/a//b/./c/..", "/a/b"},
		{"", "."},
		{"/", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := NewPath(tt.in)
			assert.Equal(t, tt.want, p.String())
			assert.True(t, p.IsRegular())
		})
	}

	assert.True(t, NewPath("/a/b/").Equal(NewPath("/a/./b")))
	assert.Equal(t, NewPath("/a/b/"), NewPath("/a/./b"), "normalized paths are equal values")
}

func TestPath_Parent(t *testing.T) {
	t.Parallel()

	parent, ok := NewPath("/a/b").Parent()
	require.True(t, ok)
	assert.Equal(t, NewPath("/a"), parent)

	parent, ok = NewPath("/a").Parent()
	require.True(t, ok)
	assert.Equal(t, NewPath("/"), parent)

	_, ok = NewPath("/").Parent()
	assert.False(t, ok, "root has no parent")

	_, ok = Path{}.Parent()
	assert.False(t, ok)
}

func TestArchivePath_Parent(t *testing.T) {
	t.Parallel()

	inner := NewArchivePath("/x/a.zip", "docs/img")
	assert.False(t, inner.IsRegular())
	assert.Equal(t, "/x/a.zip/docs/img", inner.String())

	p, ok := inner.Parent()
	require.True(t, ok)
	assert.Equal(t, NewArchivePath("/x/a.zip", "docs"), p)
	assert.False(t, p.IsRegular())

	root, ok := p.Parent()
	require.True(t, ok)
	assert.Equal(t, NewArchivePath("/x/a.zip", ""), root)
	assert.False(t, root.IsRegular(), "the archive root is still virtual")

	outer, ok := root.Parent()
	require.True(t, ok)
	assert.Equal(t, NewPath("/x"), outer)
	assert.True(t, outer.IsRegular(), "leaving the archive yields a regular path")
}

func TestPath_KeyDistinguishesKinds(t *testing.T) {
	t.Parallel()

	regular := NewPath("/x/a.zip")
	virtual := NewArchivePath("/x/a.zip", "")

	assert.Equal(t, regular.String(), virtual.String())
	assert.NotEqual(t, regular.Key(), virtual.Key())
	assert.False(t, regular.Equal(virtual))

	a, ok := virtual.Archive()
	require.True(t, ok)
	assert.Equal(t, regular, a)
	_, ok = regular.Archive()
	assert.False(t, ok)
}

func TestPath_JoinKeepsKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NewPath("/a/b"), NewPath("/a").Join("b"))
	assert.Equal(t, NewArchivePath("/a.zip", "b"), NewArchivePath("/a.zip", "").Join("b"))
	assert.Equal(t, "b", NewPath("/a/b").Name())
}

func TestExec_Args(t *testing.T) {
	t.Parallel()

	e := NewExec("complete", "word").With("ticket", 12).With("step", -3).With("apply", true)

	assert.Equal(t, "word", e.Arg(0))
	assert.Equal(t, "", e.Arg(1))
	assert.Equal(t, uint64(12), e.Uint("ticket", 0))
	assert.Equal(t, uint64(7), e.Uint("missing", 7))
	assert.Equal(t, uint64(0), e.Uint("step", 0), "negative does not parse as unsigned")
	assert.Equal(t, -3, e.Int("step", 0))
	assert.True(t, e.Bool("apply", false))
	assert.True(t, e.Bool("missing", true))
	assert.False(t, e.Bool("step", false), "numbers other than 0 and 1 are not booleans")

	base := NewExec("x")
	_ = base.With("k", "v")
	assert.Empty(t, base.Named, "With must not mutate the receiver")
}
