// Package filesystem provides the stat and listing services the navigator and
// completion provider consume.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/internal/util"
)

var (
	// ErrUnsupportedKind is returned for a path kind no backend is registered for
	ErrUnsupportedKind = errors.New("unsupported path kind")
	// ErrNotDir is returned when listing something that is not a directory
	ErrNotDir = errors.New("not a directory")
)

// Local implements [navcore.Stater] and [navcore.Lister] on the host filesystem.
// It only serves regular paths.
type Local struct{}

// NewLocal returns the host filesystem backend.
func NewLocal() *Local {
	return &Local{}
}

// Stat follows symlinks like os.Stat; a link to a directory reports IsDir.
func (l *Local) Stat(ctx context.Context, p navcore.Path) (*navcore.Entry, error) {
	if !p.IsRegular() {
		return nil, fmt.Errorf("stat %s: %w", p, ErrUnsupportedKind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(p.String())
	if err != nil {
		return nil, err
	}
	return entryFromInfo(p, info), nil
}

// ReadDir lists dir sorted by name. Entries that vanish while being read are skipped.
func (l *Local) ReadDir(ctx context.Context, dir navcore.Path) ([]navcore.Entry, error) {
	logger := util.GetLogger("Local.ReadDir")

	if !dir.IsRegular() {
		return nil, fmt.Errorf("read %s: %w", dir, ErrUnsupportedKind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(dir.String())
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) && isNotDir(pathErr) {
			return nil, fmt.Errorf("read %s: %w", dir, ErrNotDir)
		}
		return nil, err
	}

	entries := make([]navcore.Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := dir.Join(d.Name())
		// Stat through symlinks so links to directories are navigable
		info, err := os.Stat(p.String())
		if err != nil {
			info, err = d.Info()
			if err != nil {
				logger.Trace().Err(err).Str("path", p.String()).Msg("Skipped vanished entry")
				continue
			}
		}
		entries = append(entries, *entryFromInfo(p, info))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func entryFromInfo(p navcore.Path, info os.FileInfo) *navcore.Entry {
	return &navcore.Entry{
		URL:     p,
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}
}

func isNotDir(err *os.PathError) bool {
	info, statErr := os.Stat(err.Path)
	return statErr == nil && !info.IsDir()
}
