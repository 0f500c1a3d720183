package filesystem

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister_SingleBackend(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	backend := &mocks.MockBackend{}

	assert.True(t, r.Register(KindArchive, backend))
	got, err := r.Backend(KindArchive)

	require.NoError(t, err)
	assert.Same(t, backend, got)
}

func TestRegister_DuplicateKeepsFirst(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first := &mocks.MockBackend{}
	second := &mocks.MockBackend{}

	assert.True(t, r.Register("test", first))
	assert.False(t, r.Register("test", second))

	got, err := r.Backend("test")
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestRegister_Concurrent(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	r := NewRegistry()

	for i := range 100 {
		wg.Go(func() {
			kind := fmt.Sprintf("test%d", i)
			backend := &mocks.MockBackend{}
			r.Register(kind, backend)
			got, err := r.Backend(kind)
			assert.NoError(t, err)
			assert.Same(t, backend, got)
		})
	}
	wg.Wait()
}

func TestRegistry_RoutesByKind(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	local := &mocks.MockBackend{}
	archive := &mocks.MockBackend{}
	r.Register(KindLocal, local)
	r.Register(KindArchive, archive)

	regular := navcore.NewPath("/srv")
	inner := navcore.NewArchivePath("/srv/a.zip", "docs")
	local.On("Stat", mock.Anything, regular).Return(mocks.DirEntry(regular), nil)
	archive.On("Stat", mock.Anything, inner).Return(mocks.DirEntry(inner), nil)
	archive.On("ReadDir", mock.Anything, inner).Return([]navcore.Entry{{URL: inner.Join("x")}}, nil)

	e, err := r.Stat(t.Context(), regular)
	require.NoError(t, err)
	assert.Equal(t, regular, e.URL)

	e, err = r.Stat(t.Context(), inner)
	require.NoError(t, err)
	assert.Equal(t, inner, e.URL)

	entries, err := r.ReadDir(t.Context(), inner)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	local.AssertExpectations(t)
	archive.AssertExpectations(t)
}

func TestRegistry_UnknownKind(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry()

	_, err := r.Stat(t.Context(), navcore.NewArchivePath("/a.tar", ""))
	assert.True(t, errors.Is(err, ErrUnsupportedKind))

	_, err = r.ReadDir(t.Context(), navcore.NewArchivePath("/a.tar", ""))
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindLocal, KindOf(navcore.NewPath("/x")))
	assert.Equal(t, KindArchive, KindOf(navcore.NewArchivePath("/x.zip", "y")))
}
