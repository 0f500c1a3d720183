package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/filesystem"
	"github.com/brettbedarf/navcore/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changes struct {
	mu   sync.Mutex
	dirs []navcore.Path
}

func (c *changes) record(dir navcore.Path) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirs = append(c.dirs, dir)
}

func (c *changes) seen(dir navcore.Path) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.dirs {
		if d.Equal(dir) {
			return true
		}
	}
	return false
}

func fullListing(events []navcore.Event, dir navcore.Path, name string) bool {
	for _, ev := range events {
		files, ok := ev.(navcore.Files)
		if !ok || files.Op.Kind != navcore.OpFull || !files.Op.Cwd.Equal(dir) {
			continue
		}
		for _, e := range files.Op.Entries {
			if e.Name() == name {
				return true
			}
		}
	}
	return false
}

func TestWatcher_RelistsOnCreate(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	dir := navcore.NewPath(tempDir)
	bus := mocks.NewRecordingBus()
	var c changes

	w, err := New(filesystem.NewLocal(), bus, c.record)
	require.NoError(t, err, "New watcher creation failed")
	defer w.Close()

	require.NoError(t, w.Watch(dir))
	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "new.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		return fullListing(bus.Events(), dir, "new.txt")
	}, 3*time.Second, 10*time.Millisecond, "a full listing including the new file is published")
	assert.True(t, c.seen(dir), "the change callback fires")
}

func TestWatcher_WatchReplacesSet(t *testing.T) {
	t.Parallel()

	a := navcore.NewPath(t.TempDir())
	b := navcore.NewPath(t.TempDir())

	w, err := New(filesystem.NewLocal(), mocks.NewRecordingBus(), nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(a, b))
	assert.Len(t, w.Dirs(), 2)

	require.NoError(t, w.Watch(b, navcore.NewArchivePath(b.Join("x.zip").String(), "inner")))
	assert.Equal(t, []navcore.Path{b}, w.Dirs(), "old directories are dropped and virtual ones skipped")
}

func TestWatcher_ReportsMissingDirectory(t *testing.T) {
	t.Parallel()

	ok := navcore.NewPath(t.TempDir())
	missing := ok.Join("missing")

	w, err := New(filesystem.NewLocal(), mocks.NewRecordingBus(), nil)
	require.NoError(t, err)
	defer w.Close()

	err = w.Watch(ok, missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
	assert.Equal(t, []navcore.Path{ok}, w.Dirs(), "the reachable directory is still watched")
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	w, err := New(filesystem.NewLocal(), mocks.NewRecordingBus(), nil)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
