package core

import (
	"io"
	"io/fs"
	"time"
)

// FSType identifies the kind of storage behind an FS.
type FSType int

const (
	FSTypeUnknown FSType = iota
	FSTypeLocal          // disk through the operating system
	FSTypeMemory         // process memory
	FSTypeRemote         // network or object storage
)

func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FS is the filesystem capability consumed by the copy, move and remove
// operations. It is composed of three required sub-interfaces: ReadFS,
// WriteFS and ManageFS.
//
// Everything beyond the required set is optional and discovered with a type
// assertion: LinkFS, MetadataFS, RemoveAllFS, PathFS and ChrootFS.
type FS interface {
	fs.FS
	ReadFS
	WriteFS
	ManageFS

	// Type reports the kind of storage. It is used for logging only.
	Type() FSType
}

// ReadFS groups the calls that never change the filesystem.
type ReadFS interface {
	Open(name string) (fs.File, error)

	// Stat follows symbolic links. A missing entry yields an error
	// matching fs.ErrNotExist.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir lists name in lexical order. Each entry describes itself,
	// so a symbolic link is reported as a link and not as its target.
	ReadDir(name string) ([]fs.DirEntry, error)

	ReadFile(name string) ([]byte, error)

	// Exists follows symbolic links. A non-nil error means existence could
	// not be determined.
	Exists(name string) (bool, error)
}

// WriteFS groups the calls that create entries.
type WriteFS interface {
	// Create opens name for writing, truncating any previous content.
	Create(name string) (File, error)

	// OpenFile uses perm (before umask) only when flag creates the file.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Mkdir creates exactly one directory. It fails with fs.ErrExist when
	// name exists and with fs.ErrNotExist when the parent is missing.
	Mkdir(name string, perm fs.FileMode) error

	// MkdirAll returns nil when path is already a directory.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS groups the calls that remove or relocate entries.
type ManageFS interface {
	// Remove deletes a file, a symbolic link or an empty directory. A
	// missing name yields an error matching fs.ErrNotExist.
	Remove(name string) error

	// Rename relocates oldpath. Local providers surface the operating
	// system's error unchanged, including cross-device failures.
	Rename(oldpath, newpath string) error
}

// File is an open handle that can also be written.
type File interface {
	fs.File
	io.Writer

	// Name is the name given to Open or Create.
	Name() string
}

// LinkFS is implemented by filesystems with symbolic links.
//
//	if lfs, ok := fsys.(core.LinkFS); ok {
//	    info, err := lfs.Lstat("link")
//	}
type LinkFS interface {
	Lstat(name string) (fs.FileInfo, error)

	// Symlink stores oldname verbatim in a new link named newname. It fails
	// when newname exists.
	Symlink(oldname, newname string) error

	// Readlink fails when name is not a symbolic link.
	Readlink(name string) (string, error)
}

// MetadataFS is implemented by filesystems that can change modes and
// timestamps. Without it, mode and timestamp propagation is skipped.
type MetadataFS interface {
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error
}

// RemoveAllFS is implemented by filesystems with a native recursive remove.
type RemoveAllFS interface {
	// RemoveAll returns nil when path does not exist.
	RemoveAll(path string) error
}

// PathFS is implemented by filesystems that know which path flavour their
// names use.
type PathFS interface {
	Paths() PathAPI
}

// ChrootFS is implemented by filesystems that can hand out a view scoped
// to one directory.
type ChrootFS interface {
	Chroot(dir string) (FS, error)
}
