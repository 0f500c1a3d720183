package filesystem

import (
	"context"
	"fmt"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/internal/util"
	"github.com/puzpuzpuz/xsync/v4"
)

// Kind names the family of locations a backend serves
type Kind = string

const (
	KindLocal   Kind = "local"
	KindArchive Kind = "archive"
)

// Backend serves stat and listing for one [Kind] of path.
type Backend interface {
	navcore.Stater
	navcore.Lister
}

// Registry routes stat and listing calls to the backend registered for each
// path's kind. It implements [navcore.Stater] and [navcore.Lister] and is safe
// for concurrent use.
type Registry struct {
	backends *xsync.Map[Kind, Backend]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: xsync.NewMap[Kind, Backend]()}
}

// NewDefaultRegistry returns a registry serving regular paths from the host filesystem.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindLocal, NewLocal())
	return r
}

// Register ties a backend to kind. The first registration for a kind wins;
// later ones are ignored and reported with false.
func (r *Registry) Register(kind Kind, b Backend) bool {
	logger := util.GetLogger("Registry.Register")

	if _, loaded := r.backends.LoadOrStore(kind, b); loaded {
		logger.Warn().Str("kind", kind).Msg("Backend already registered")
		return false
	}
	logger.Debug().Str("kind", kind).Msg("Registered backend")
	return true
}

// Backend returns the backend registered for kind.
func (r *Registry) Backend(kind Kind) (Backend, error) {
	b, ok := r.backends.Load(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	return b, nil
}

// KindOf returns the kind of p.
func KindOf(p navcore.Path) Kind {
	if p.IsRegular() {
		return KindLocal
	}
	return KindArchive
}

func (r *Registry) Stat(ctx context.Context, p navcore.Path) (*navcore.Entry, error) {
	b, err := r.Backend(KindOf(p))
	if err != nil {
		return nil, err
	}
	return b.Stat(ctx, p)
}

func (r *Registry) ReadDir(ctx context.Context, dir navcore.Path) ([]navcore.Entry, error) {
	b, err := r.Backend(KindOf(dir))
	if err != nil {
		return nil, err
	}
	return b.ReadDir(ctx, dir)
}
