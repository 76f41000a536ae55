package billy

import (
	"io"
	"io/fs"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/go/fsx/core"
)

// File is an open handle returned by LocalFS and MemoryFS.
//
// billy.File has no Stat method and its Name varies by backend, so File
// remembers the name it was opened with and stats through the owning
// filesystem.
type File struct {
	file billy.File
	name string
	stat func(name string) (fs.FileInfo, error)
}

func (f *File) Read(p []byte) (int, error)  { return f.file.Read(p) }
func (f *File) Write(p []byte) (int, error) { return f.file.Write(p) }
func (f *File) Close() error                { return f.file.Close() }

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Stat reports the current metadata of the file by name. A file renamed or
// removed while open is therefore reported at its old name.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.stat(f.name)
}

// Name returns the name passed to Open, Create or OpenFile.
func (f *File) Name() string {
	return f.name
}

// Sync flushes written content to stable storage. Memory backends have
// nothing to flush and return nil.
func (f *File) Sync() error {
	s, ok := f.file.(interface{ Sync() error })
	if !ok {
		return nil
	}
	return s.Sync()
}

var (
	_ core.File = (*File)(nil)
	_ io.Seeker = (*File)(nil)
)
