package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/jmgilman/go/fsx/core"
)

// maxLinkDepth bounds symbolic link resolution.
const maxLinkDepth = 40

var (
	errNotDir = errors.New("not a directory")
	errIsDir  = errors.New("is a directory")
)

// memDevices hands out a device number per memory filesystem.
var memDevices atomic.Uint64

// memState is shared by a memory filesystem and every chrooted view of it.
// memfs keeps its tree in plain maps, so every access holds mu.
//
// kids indexes the keys known to the table by parent directory, so dropping
// or moving a subtree touches only that subtree.
type memState struct {
	mu     sync.Mutex
	dev    uint64
	inodes map[string]uint64
	kids   map[string]map[string]struct{}
	next   uint64
}

// ino returns the inode number of the entry at the absolute path key,
// allocating one on first use.
func (s *memState) ino(key string) uint64 {
	if n, ok := s.inodes[key]; ok {
		return n
	}
	s.next++
	s.inodes[key] = s.next
	s.link(key)
	return s.next
}

// link records key and its missing ancestors in the parent index.
func (s *memState) link(key string) {
	for key != "/" {
		parent := path.Dir(key)
		set, ok := s.kids[parent]
		if !ok {
			set = make(map[string]struct{})
			s.kids[parent] = set
		}
		if _, ok := set[key]; ok {
			return
		}
		set[key] = struct{}{}
		key = parent
	}
}

// forget drops the inode numbers of key and everything below it.
func (s *memState) forget(key string) {
	if key != "/" {
		delete(s.kids[path.Dir(key)], key)
	}
	s.walk(key, func(k string) {
		delete(s.inodes, k)
		delete(s.kids, k)
	})
}

// move carries the inode numbers of from and its descendants over to to.
func (s *memState) move(from, to string) {
	moved := make(map[string]uint64)
	s.walk(from, func(k string) {
		if n, ok := s.inodes[k]; ok {
			moved[to+k[len(from):]] = n
		}
	})
	s.forget(from)
	for k, n := range moved {
		s.inodes[k] = n
		s.link(k)
	}
}

// walk calls fn for key and every indexed key below it, children first.
func (s *memState) walk(key string, fn func(k string)) {
	for k := range s.kids[key] {
		s.walk(k, fn)
	}
	fn(key)
}

// within reports whether p is dir or lies below it.
func within(p, dir string) bool {
	if dir == "/" {
		return true
	}
	return p == dir || strings.HasPrefix(p, dir+"/")
}

// memSys is the Sys value of memory file infos. It carries the identity of
// the entry, which memfs itself does not track.
type memSys struct {
	id core.FileID
}

// FileID implements core.Identifier.
func (s memSys) FileID() core.FileID { return s.id }

type memInfo struct {
	fs.FileInfo
	sys memSys
}

func (i *memInfo) Sys() any { return i.sys }

// MemoryFS wraps billy's memfs for in-memory filesystem access.
//
// memfs is not safe for concurrent use and does not track entry identity,
// so MemoryFS serializes access and assigns a stable inode number to every
// entry it reports. Hard links are not supported.
type MemoryFS struct {
	bfs    billy.Filesystem
	state  *memState
	prefix string
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory(_ ...Option) *MemoryFS {
	return &MemoryFS{
		bfs: memfs.New(),
		state: &memState{
			dev:    memDevices.Add(1),
			inodes: make(map[string]uint64),
			kids:   make(map[string]map[string]struct{}),
		},
		prefix: "/",
	}
}

// Unwrap returns the underlying billy.Filesystem for go-git integration.
// Access through the returned filesystem bypasses MemoryFS locking.
func (mfs *MemoryFS) Unwrap() billy.Filesystem {
	return mfs.bfs
}

// normalize converts name to a clean absolute slash path.
func (mfs *MemoryFS) normalize(name string) string {
	return path.Join("/", filepath.ToSlash(name))
}

// key returns the inode table key of a normalized name.
func (mfs *MemoryFS) key(name string) string {
	return path.Join(mfs.prefix, name)
}

func (mfs *MemoryFS) info(name string, fi fs.FileInfo) fs.FileInfo {
	return &memInfo{
		FileInfo: fi,
		sys:      memSys{id: core.FileID{Dev: mfs.state.dev, Ino: mfs.state.ino(mfs.key(name))}},
	}
}

// resolve follows symbolic links at the final element of name.
func (mfs *MemoryFS) resolve(name string) string {
	for range maxLinkDepth {
		fi, err := mfs.bfs.Lstat(name)
		if err != nil || fi.Mode()&fs.ModeSymlink == 0 {
			return name
		}
		target, err := mfs.bfs.Readlink(name)
		if err != nil {
			return name
		}
		if !path.IsAbs(target) {
			target = path.Join(path.Dir(name), target)
		}
		name = path.Clean(target)
	}
	return name
}

func (mfs *MemoryFS) stat(name string) (fs.FileInfo, error) {
	fi, err := mfs.bfs.Stat(name)
	if err != nil {
		return nil, pathError("stat", name, err)
	}
	return mfs.info(mfs.resolve(name), fi), nil
}

func (mfs *MemoryFS) lstat(name string) (fs.FileInfo, error) {
	fi, err := mfs.bfs.Lstat(name)
	if err != nil {
		return nil, pathError("lstat", name, err)
	}
	return mfs.info(name, fi), nil
}

// checkParent fails if the parent of name exists but is not a directory.
// memfs would otherwise record the entry without linking it into the tree.
func (mfs *MemoryFS) checkParent(op, name string) error {
	for p := path.Dir(name); p != "/"; p = path.Dir(p) {
		fi, err := mfs.bfs.Stat(p)
		if err != nil {
			continue
		}
		if !fi.IsDir() {
			return &fs.PathError{Op: op, Path: name, Err: errNotDir}
		}
		return nil
	}
	return nil
}

func (mfs *MemoryFS) wrapFile(f billy.File, name string) *File {
	return &File{file: f, name: name, stat: mfs.Stat}
}

// MemoryFS ReadFS interface implementation

// Open opens the named file for reading.
func (mfs *MemoryFS) Open(name string) (fs.File, error) {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	name = mfs.normalize(name)
	f, err := mfs.bfs.Open(name)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	return mfs.wrapFile(f, name), nil
}

// Stat returns file metadata for the named file, following symbolic links.
func (mfs *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	return mfs.stat(mfs.normalize(name))
}

// ReadDir reads the named directory and returns its entries sorted by name.
func (mfs *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	name = mfs.normalize(name)
	fi, err := mfs.bfs.Stat(name)
	if err != nil {
		return nil, pathError("readdir", name, err)
	}
	if !fi.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errNotDir}
	}

	dir := mfs.resolve(name)
	infos, err := mfs.bfs.ReadDir(dir)
	if err != nil {
		return nil, pathError("readdir", name, err)
	}
	for i, info := range infos {
		infos[i] = mfs.info(path.Join(dir, info.Name()), info)
	}
	return toEntries(infos), nil
}

// ReadFile reads the named file and returns its contents.
func (mfs *MemoryFS) ReadFile(name string) ([]byte, error) {
	f, err := mfs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (mfs *MemoryFS) Exists(name string) (bool, error) {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	return exists(mfs.bfs.Stat(mfs.normalize(name)))
}

// MemoryFS WriteFS interface implementation

// Create creates or truncates the named file for writing.
func (mfs *MemoryFS) Create(name string) (core.File, error) {
	return mfs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

// OpenFile opens a file with the specified flags and permissions.
func (mfs *MemoryFS) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	name = mfs.normalize(name)
	if flag&os.O_CREATE != 0 {
		if err := mfs.checkParent("open", name); err != nil {
			return nil, err
		}
	}
	f, err := mfs.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	return mfs.wrapFile(f, name), nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (mfs *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f, err := mfs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Mkdir creates a new directory with the specified name and permission bits.
// Unlike MkdirAll, this will fail if the parent directory does not exist.
func (mfs *MemoryFS) Mkdir(name string, perm fs.FileMode) error {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	name = mfs.normalize(name)
	if _, err := mfs.bfs.Lstat(name); err == nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if parent := path.Dir(name); parent != "/" {
		fi, err := mfs.bfs.Stat(parent)
		if err != nil {
			return pathError("mkdir", name, err)
		}
		if !fi.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: name, Err: errNotDir}
		}
	}
	return mfs.bfs.MkdirAll(name, perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (mfs *MemoryFS) MkdirAll(name string, perm fs.FileMode) error {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	name = mfs.normalize(name)
	if fi, err := mfs.bfs.Stat(name); err == nil {
		if fi.IsDir() {
			return nil
		}
		return &fs.PathError{Op: "mkdir", Path: name, Err: errNotDir}
	}
	if err := mfs.checkParent("mkdir", name); err != nil {
		return err
	}
	return pathError("mkdir", name, mfs.bfs.MkdirAll(name, perm))
}

// MemoryFS ManageFS interface implementation

// Remove removes the named file, symbolic link or empty directory.
func (mfs *MemoryFS) Remove(name string) error {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	name = mfs.normalize(name)
	fi, err := mfs.bfs.Lstat(name)
	if err != nil {
		return pathError("remove", name, err)
	}
	if fi.IsDir() {
		children, err := mfs.bfs.ReadDir(name)
		if err != nil {
			return pathError("remove", name, err)
		}
		if len(children) > 0 {
			return &fs.PathError{Op: "remove", Path: name, Err: ErrNotEmpty}
		}
	}
	if err := mfs.bfs.Remove(name); err != nil {
		return pathError("remove", name, err)
	}
	mfs.state.forget(mfs.key(name))
	return nil
}

// RemoveAll removes path and any children it contains.
func (mfs *MemoryFS) RemoveAll(name string) error {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	name = mfs.normalize(name)
	if err := util.RemoveAll(mfs.bfs, name); err != nil {
		return pathError("removeall", name, err)
	}
	mfs.state.forget(mfs.key(name))
	return nil
}

// Rename renames (moves) oldpath to newpath.
//
// memfs matches descendants of oldpath by string prefix, which also catches
// siblings such as "a2" when renaming "a". MemoryFS therefore relinks the
// tree entry by entry under its lock. The destination parent must exist.
func (mfs *MemoryFS) Rename(oldpath, newpath string) error {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	from, to := mfs.normalize(oldpath), mfs.normalize(newpath)
	linkErr := func(err error) error {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: err}
	}

	src, err := mfs.bfs.Lstat(from)
	if err != nil {
		return linkErr(unwrapPath(err))
	}
	if from == to {
		return nil
	}
	if src.IsDir() && within(to, from) {
		return linkErr(fs.ErrInvalid)
	}
	if parent, err := mfs.bfs.Stat(path.Dir(to)); err != nil {
		return linkErr(fs.ErrNotExist)
	} else if !parent.IsDir() {
		return linkErr(errNotDir)
	}

	if dst, err := mfs.bfs.Lstat(to); err == nil {
		switch {
		case dst.IsDir() && !src.IsDir():
			return linkErr(errIsDir)
		case !dst.IsDir() && src.IsDir():
			return linkErr(errNotDir)
		case dst.IsDir():
			children, err := mfs.bfs.ReadDir(to)
			if err != nil {
				return linkErr(err)
			}
			if len(children) > 0 {
				return linkErr(ErrNotEmpty)
			}
		}
		if err := mfs.bfs.Remove(to); err != nil {
			return linkErr(err)
		}
		mfs.state.forget(mfs.key(to))
	}

	if err := mfs.relink(from, to, src); err != nil {
		_ = util.RemoveAll(mfs.bfs, to)
		return linkErr(err)
	}
	if err := util.RemoveAll(mfs.bfs, from); err != nil {
		return linkErr(err)
	}
	mfs.state.move(mfs.key(from), mfs.key(to))
	return nil
}

// relink recreates the entry at from under to.
func (mfs *MemoryFS) relink(from, to string, fi fs.FileInfo) error {
	switch {
	case fi.Mode()&fs.ModeSymlink != 0:
		target, err := mfs.bfs.Readlink(from)
		if err != nil {
			return err
		}
		return mfs.bfs.Symlink(target, to)
	case fi.IsDir():
		if err := mfs.bfs.MkdirAll(to, fi.Mode().Perm()); err != nil {
			return err
		}
		children, err := mfs.bfs.ReadDir(from)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := mfs.relink(path.Join(from, child.Name()), path.Join(to, child.Name()), child); err != nil {
				return err
			}
		}
		return nil
	default:
		data, err := util.ReadFile(mfs.bfs, from)
		if err != nil {
			return err
		}
		return util.WriteFile(mfs.bfs, to, data, fi.Mode().Perm())
	}
}

// MemoryFS LinkFS interface implementation

// Lstat returns file info without following symbolic links.
func (mfs *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	return mfs.lstat(mfs.normalize(name))
}

// Symlink creates newname as a symbolic link to oldname.
func (mfs *MemoryFS) Symlink(oldname, newname string) error {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	newname = mfs.normalize(newname)
	if err := mfs.checkParent("symlink", newname); err != nil {
		return err
	}
	if err := mfs.bfs.Symlink(filepath.ToSlash(oldname), newname); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: unwrapPath(err)}
	}
	return nil
}

// Readlink returns the target of the named symbolic link. It fails with
// fs.ErrInvalid if the entry is not a symbolic link.
func (mfs *MemoryFS) Readlink(name string) (string, error) {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	name = mfs.normalize(name)
	fi, err := mfs.bfs.Lstat(name)
	if err != nil {
		return "", pathError("readlink", name, err)
	}
	if fi.Mode()&fs.ModeSymlink == 0 {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
	}
	return mfs.bfs.Readlink(name)
}

// MemoryFS ChrootFS interface implementation

// Chroot returns a filesystem scoped to the given directory. The view shares
// storage, locking and inode numbers with mfs.
func (mfs *MemoryFS) Chroot(dir string) (core.FS, error) {
	mfs.state.mu.Lock()
	defer mfs.state.mu.Unlock()

	dir = mfs.normalize(dir)
	chrootFS, err := mfs.bfs.Chroot(dir)
	if err != nil {
		return nil, err
	}
	return &MemoryFS{bfs: chrootFS, state: mfs.state, prefix: mfs.key(dir)}, nil
}

// Paths returns slash paths rooted at "/".
func (mfs *MemoryFS) Paths() core.PathAPI {
	return core.RootedPaths()
}

// Type returns FSTypeMemory for in-memory filesystem implementations.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}

// unwrapPath strips a *fs.PathError so the cause can be rewrapped.
func unwrapPath(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
