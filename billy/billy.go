package billy

import (
	"errors"
	"io/fs"
	"os"

	"github.com/jmgilman/go/fsx/core"
)

// ErrNotEmpty is returned when removing a directory that still has entries
// on a backend that does not report an OS error number for it.
var ErrNotEmpty = errors.New("directory not empty")

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	root string
}

// WithRoot roots a local filesystem at dir. Every name passed to the
// filesystem is resolved inside dir, and ".." cannot climb above it.
// It has no effect on memory filesystems.
func WithRoot(dir string) Option {
	return func(c *config) {
		c.root = dir
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{root: "/"}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

func toEntries(infos []fs.FileInfo) []fs.DirEntry {
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries
}

// exists interprets a Stat result the way core.ReadFS.Exists documents.
func exists(_ fs.FileInfo, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// pathError attaches the operation and path to bare sentinel errors, which
// some billy backends return without context.
func pathError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	var pe *fs.PathError
	var le *os.LinkError
	if errors.As(err, &pe) || errors.As(err, &le) {
		return err
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// Compile-time interface checks.
var (
	_ core.FS          = (*LocalFS)(nil)
	_ core.LinkFS      = (*LocalFS)(nil)
	_ core.MetadataFS  = (*LocalFS)(nil)
	_ core.RemoveAllFS = (*LocalFS)(nil)
	_ core.PathFS      = (*LocalFS)(nil)
	_ core.ChrootFS    = (*LocalFS)(nil)

	_ core.FS          = (*MemoryFS)(nil)
	_ core.LinkFS      = (*MemoryFS)(nil)
	_ core.RemoveAllFS = (*MemoryFS)(nil)
	_ core.PathFS      = (*MemoryFS)(nil)
	_ core.ChrootFS    = (*MemoryFS)(nil)
)
