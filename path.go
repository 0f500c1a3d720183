package navcore

import (
	"path/filepath"
	"strings"
)

const archiveScheme = "archive:"

// Path identifies a location the navigator can visit. Regular paths live on the
// real filesystem; paths inside an archive are non-regular and are never
// persisted to the back-stack.
//
// Path is an immutable value; compare with [Path.Equal] or by [Path.Key].
type Path struct {
	raw     string // cleaned location
	archive string // cleaned archive file this path lives in; "" if regular
}

// NewPath returns a regular path for s, cleaned with [filepath.Clean].
func NewPath(s string) Path {
	return Path{raw: filepath.Clean(s)}
}

// NewArchivePath returns a non-regular path for inner, a location inside the
// archive file at archive. An empty inner addresses the archive root.
func NewArchivePath(archive, inner string) Path {
	archive = filepath.Clean(archive)
	inner = strings.TrimPrefix(filepath.Clean("/"+inner), "/")
	if inner == "" {
		return Path{raw: archive, archive: archive}
	}
	return Path{raw: filepath.Join(archive, inner), archive: archive}
}

// IsRegular reports whether p is a real filesystem location.
func (p Path) IsRegular() bool {
	return p.archive == ""
}

// Archive returns the archive file p lives in and whether there is one.
func (p Path) Archive() (Path, bool) {
	if p.archive == "" {
		return Path{}, false
	}
	return NewPath(p.archive), true
}

// IsZero reports whether p is the zero Path.
func (p Path) IsZero() bool {
	return p.raw == "" && p.archive == ""
}

// Parent returns the parent location. It returns false at the filesystem root.
// Inside an archive the parent stays non-regular down to the archive root; the
// parent of the archive root is the regular directory holding the archive.
func (p Path) Parent() (Path, bool) {
	if p.raw == "" {
		return Path{}, false
	}
	if p.archive != "" && p.raw != p.archive {
		return Path{raw: filepath.Dir(p.raw), archive: p.archive}, true
	}
	dir := filepath.Dir(p.raw)
	if dir == p.raw {
		return Path{}, false
	}
	return Path{raw: dir}, true
}

// Name returns the last element of p.
func (p Path) Name() string {
	return filepath.Base(p.raw)
}

// Join returns the location name inside p, keeping p's regularity.
func (p Path) Join(name string) Path {
	return Path{raw: filepath.Join(p.raw, name), archive: p.archive}
}

// String returns the display form of p
func (p Path) String() string {
	return p.raw
}

// Key returns the normalized form of p used for comparison and map keys.
func (p Path) Key() string {
	if p.archive != "" {
		return archiveScheme + p.raw
	}
	return p.raw
}

// Equal reports whether p and o address the same location.
func (p Path) Equal(o Path) bool {
	return p.Key() == o.Key()
}
