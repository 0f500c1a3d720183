package navcore

import (
	"io/fs"
	"time"
)

// Entry is a point-in-time snapshot of one filesystem object
type Entry struct {
	URL     Path
	IsDir   bool
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// Name returns the entry's last path element.
func (e Entry) Name() string {
	return e.URL.Name()
}

// FilesOpKind tells a listing how to apply a [FilesOp]
type FilesOpKind int

const (
	// OpFull replaces the whole listing of Cwd
	OpFull FilesOpKind = iota
	// OpCreating merges Entries into the listing of Cwd, keeping existing ones
	OpCreating
)

func (k FilesOpKind) String() string {
	switch k {
	case OpFull:
		return "full"
	case OpCreating:
		return "creating"
	default:
		return "unknown"
	}
}

// FilesOp is a listing update addressed to the directory view of Cwd.
type FilesOp struct {
	Kind    FilesOpKind
	Cwd     Path
	Entries []Entry
}
