package mocks

import (
	"context"

	"github.com/brettbedarf/navcore"
	"github.com/stretchr/testify/mock"
)

// MockBackend implements navcore.Stater and navcore.Lister for testing across packages
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Stat(ctx context.Context, p navcore.Path) (*navcore.Entry, error) {
	args := m.Called(ctx, p)

	// Handle function return types (for complex tests)
	if fn, ok := args.Get(0).(func(context.Context, navcore.Path) *navcore.Entry); ok {
		return fn(ctx, p), args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*navcore.Entry), args.Error(1)
}

func (m *MockBackend) ReadDir(ctx context.Context, dir navcore.Path) ([]navcore.Entry, error) {
	args := m.Called(ctx, dir)

	if fn, ok := args.Get(0).(func(context.Context, navcore.Path) []navcore.Entry); ok {
		return fn(ctx, dir), args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]navcore.Entry), args.Error(1)
}

var (
	_ navcore.Stater = (*MockBackend)(nil)
	_ navcore.Lister = (*MockBackend)(nil)
)

// DirEntry is shorthand for a directory Entry at p.
func DirEntry(p navcore.Path) *navcore.Entry {
	return &navcore.Entry{URL: p, IsDir: true}
}

// FileEntry is shorthand for a regular file Entry at p.
func FileEntry(p navcore.Path) *navcore.Entry {
	return &navcore.Entry{URL: p}
}
