package billy

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/jmgilman/go/fsx/core"
)

// LocalFS wraps billy's chrooted osfs for local filesystem access.
//
// Names are resolved inside the root the filesystem was created with. When
// the root is "/" (the default), relative names resolve against the process
// working directory, matching core.OSPaths.
type LocalFS struct {
	bfs  billy.Filesystem
	root string
}

// NewLocal creates a go-billy-backed local filesystem.
// The returned filesystem is rooted at the filesystem root ("/") unless
// WithRoot is given.
func NewLocal(opts ...Option) *LocalFS {
	cfg := newConfig(opts)
	root := filepath.Clean(cfg.root)
	return &LocalFS{
		bfs:  osfs.New(root, osfs.WithChrootOS()),
		root: root,
	}
}

// Unwrap returns the underlying billy.Filesystem for go-git integration.
func (lfs *LocalFS) Unwrap() billy.Filesystem {
	return lfs.bfs
}

// Root returns the host directory this filesystem is rooted at.
func (lfs *LocalFS) Root() string {
	return lfs.root
}

func (lfs *LocalFS) rootedAtHost() bool {
	return lfs.root == string(filepath.Separator)
}

// normalize cleans name and, for filesystems rooted at the host root,
// resolves relative names against the working directory.
func (lfs *LocalFS) normalize(name string) string {
	if lfs.rootedAtHost() && !filepath.IsAbs(name) {
		if abs, err := filepath.Abs(name); err == nil {
			return abs
		}
	}
	return filepath.Clean(name)
}

// hostPath maps name onto the host filesystem.
func (lfs *LocalFS) hostPath(name string) string {
	name = lfs.normalize(name)
	if lfs.rootedAtHost() {
		return name
	}
	return filepath.Join(lfs.root, filepath.Join(string(filepath.Separator), name))
}

func (lfs *LocalFS) wrapFile(f billy.File, name string) *File {
	return &File{file: f, name: name, stat: lfs.Stat}
}

// LocalFS ReadFS interface implementation

// Open opens the named file for reading.
func (lfs *LocalFS) Open(name string) (fs.File, error) {
	name = lfs.normalize(name)
	f, err := lfs.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return lfs.wrapFile(f, name), nil
}

// Stat returns file metadata for the named file, following symbolic links.
func (lfs *LocalFS) Stat(name string) (fs.FileInfo, error) {
	info, err := lfs.bfs.Stat(lfs.normalize(name))
	if err != nil {
		return nil, err
	}
	return identify(lfs.hostPath(name), info, true), nil
}

// ReadDir reads the named directory. Entries describe the entries
// themselves; symbolic links are not followed.
func (lfs *LocalFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := lfs.bfs.ReadDir(lfs.normalize(name))
	if err != nil {
		return nil, err
	}
	return toEntries(infos), nil
}

// ReadFile reads the named file and returns its contents.
func (lfs *LocalFS) ReadFile(name string) ([]byte, error) {
	f, err := lfs.bfs.Open(lfs.normalize(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (lfs *LocalFS) Exists(name string) (bool, error) {
	return exists(lfs.bfs.Stat(lfs.normalize(name)))
}

// LocalFS WriteFS interface implementation

// Create creates or truncates the named file for writing.
func (lfs *LocalFS) Create(name string) (core.File, error) {
	name = lfs.normalize(name)
	f, err := lfs.bfs.Create(name)
	if err != nil {
		return nil, err
	}
	return lfs.wrapFile(f, name), nil
}

// OpenFile opens a file with the specified flags and permissions.
func (lfs *LocalFS) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = lfs.normalize(name)
	f, err := lfs.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return lfs.wrapFile(f, name), nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (lfs *LocalFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return util.WriteFile(lfs.bfs, lfs.normalize(name), data, perm)
}

// Mkdir creates a single directory with the given permission bits (before
// umask). It fails if the parent is missing or the path exists.
//
// The chrooted osfs creates every directory with a fixed mode, so directory
// creation goes to the host directly to honor perm.
func (lfs *LocalFS) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(lfs.hostPath(name), perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (lfs *LocalFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(lfs.hostPath(path), perm)
}

// LocalFS ManageFS interface implementation

// Remove removes the named file, symbolic link or empty directory.
func (lfs *LocalFS) Remove(name string) error {
	return lfs.bfs.Remove(lfs.normalize(name))
}

// RemoveAll removes path and any children it contains.
func (lfs *LocalFS) RemoveAll(path string) error {
	return util.RemoveAll(lfs.bfs, lfs.normalize(path))
}

// Rename renames (moves) oldpath to newpath using the host rename.
// Cross-device failures are returned unchanged.
func (lfs *LocalFS) Rename(oldpath, newpath string) error {
	return lfs.bfs.Rename(lfs.normalize(oldpath), lfs.normalize(newpath))
}

// LocalFS LinkFS interface implementation

// Lstat returns file info without following symbolic links.
func (lfs *LocalFS) Lstat(name string) (fs.FileInfo, error) {
	info, err := lfs.bfs.Lstat(lfs.normalize(name))
	if err != nil {
		return nil, err
	}
	return identify(lfs.hostPath(name), info, false), nil
}

// Symlink creates newname as a symbolic link to oldname.
func (lfs *LocalFS) Symlink(oldname, newname string) error {
	return lfs.bfs.Symlink(oldname, lfs.normalize(newname))
}

// Readlink returns the target of the named symbolic link.
func (lfs *LocalFS) Readlink(name string) (string, error) {
	return lfs.bfs.Readlink(lfs.normalize(name))
}

// LocalFS MetadataFS interface implementation

// Chmod changes the mode of the named file, following symbolic links.
func (lfs *LocalFS) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(lfs.hostPath(name), mode)
}

// Chtimes changes the access and modification times of the named file.
func (lfs *LocalFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(lfs.hostPath(name), atime, mtime)
}

// LocalFS ChrootFS interface implementation

// Chroot returns a filesystem scoped to the given directory.
func (lfs *LocalFS) Chroot(dir string) (core.FS, error) {
	return NewLocal(WithRoot(lfs.hostPath(dir))), nil
}

// Paths returns host paths at the host root and slash paths inside a chroot.
func (lfs *LocalFS) Paths() core.PathAPI {
	if lfs.rootedAtHost() {
		return core.OSPaths()
	}
	return core.RootedPaths()
}

// Type returns FSTypeLocal for local filesystem implementations.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}
