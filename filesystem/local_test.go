package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbedarf/navcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTree lays out files and dirs under a temp root. Names ending in "/" are dirs.
func createTree(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		p := filepath.Join(root, name)
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
	}
	return root
}

func TestLocal_Stat(t *testing.T) {
	t.Parallel()

	root := createTree(t, "dir/", "file.txt")
	l := NewLocal()

	dir, err := l.Stat(t.Context(), navcore.NewPath(filepath.Join(root, "dir")))
	require.NoError(t, err)
	assert.True(t, dir.IsDir)

	file, err := l.Stat(t.Context(), navcore.NewPath(filepath.Join(root, "file.txt")))
	require.NoError(t, err)
	assert.False(t, file.IsDir)
	assert.Equal(t, int64(len("file.txt")), file.Size)
	assert.Equal(t, "file.txt", file.Name())
}

func TestLocal_Stat_Missing(t *testing.T) {
	t.Parallel()

	_, err := NewLocal().Stat(t.Context(), navcore.NewPath(filepath.Join(t.TempDir(), "nope")))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocal_Stat_FollowsSymlink(t *testing.T) {
	t.Parallel()

	root := createTree(t, "real/")
	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), link))

	e, err := NewLocal().Stat(t.Context(), navcore.NewPath(link))

	require.NoError(t, err)
	assert.True(t, e.IsDir, "a link to a directory is navigable")
}

func TestLocal_Stat_RejectsArchivePath(t *testing.T) {
	t.Parallel()

	_, err := NewLocal().Stat(t.Context(), navcore.NewArchivePath("/tmp/a.zip", "x"))

	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestLocal_Stat_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewLocal().Stat(ctx, navcore.NewPath(t.TempDir()))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocal_ReadDir_Sorted(t *testing.T) {
	t.Parallel()

	root := createTree(t, "b.txt", "a/", "c/", ".hidden")

	entries, err := NewLocal().ReadDir(t.Context(), navcore.NewPath(root))

	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	assert.Equal(t, []string{".hidden", "a", "b.txt", "c"}, names)
	assert.True(t, entries[1].IsDir)
	assert.False(t, entries[2].IsDir)
	assert.Equal(t, navcore.NewPath(filepath.Join(root, "a")), entries[1].URL)
}

func TestLocal_ReadDir_NotDir(t *testing.T) {
	t.Parallel()

	root := createTree(t, "file")

	_, err := NewLocal().ReadDir(t.Context(), navcore.NewPath(filepath.Join(root, "file")))

	assert.ErrorIs(t, err, ErrNotDir)
}
