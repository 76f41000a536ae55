package fstest

import (
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/jmgilman/go/fsx/core"
)

// Call describes one filesystem call seen by a FaultFS.
type Call struct {
	// Op is the lower-case method name (e.g. "rename", "remove", "chmod").
	Op string
	// Name is the first path argument.
	Name string
	// Dest is the second path argument of Rename and Symlink, else "".
	Dest string
}

// Fault decides whether a call fails. Returning nil lets the call through.
type Fault func(c Call) error

// FailOp fails every call of op with err.
func FailOp(op string, err error) Fault {
	return func(c Call) error {
		if c.Op == op {
			return err
		}
		return nil
	}
}

// FailPath fails calls of op on name with err.
func FailPath(op, name string, err error) Fault {
	return func(c Call) error {
		if c.Op == op && c.Name == name {
			return err
		}
		return nil
	}
}

// FailCrossDevice makes every rename fail the way a rename across mount
// points does on the host operating system.
func FailCrossDevice() Fault {
	return func(c Call) error {
		if c.Op == "rename" {
			return &os.LinkError{Op: "rename", Old: c.Name, New: c.Dest, Err: crossDeviceErrno()}
		}
		return nil
	}
}

// FaultFS wraps a core.FS and injects errors into selected calls. It also
// counts calls per operation.
//
// FaultFS implements every optional capability of core. When the wrapped
// filesystem lacks one, the corresponding methods return core.ErrUnsupported,
// which callers treat as if the capability were absent.
type FaultFS struct {
	core.FS

	mu     sync.Mutex
	faults []Fault
	calls  map[string]int
}

// NewFaultFS wraps fsys with the given faults.
func NewFaultFS(fsys core.FS, faults ...Fault) *FaultFS {
	return &FaultFS{FS: fsys, faults: faults, calls: make(map[string]int)}
}

// Inject adds faults to the wrapper.
func (f *FaultFS) Inject(faults ...Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = append(f.faults, faults...)
}

// Calls returns how many times op was called, including failed calls.
func (f *FaultFS) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultFS) check(op, name, dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++
	c := Call{Op: op, Name: name, Dest: dest}
	for _, fault := range f.faults {
		if err := fault(c); err != nil {
			return err
		}
	}
	return nil
}

func pathErr(op, name string, err error) error {
	var pe *fs.PathError
	var le *os.LinkError
	if errors.As(err, &pe) || errors.As(err, &le) {
		return err
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// Open implements core.ReadFS.
func (f *FaultFS) Open(name string) (fs.File, error) {
	if err := f.check("open", name, ""); err != nil {
		return nil, pathErr("open", name, err)
	}
	return f.FS.Open(name)
}

// Stat implements core.ReadFS.
func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check("stat", name, ""); err != nil {
		return nil, pathErr("stat", name, err)
	}
	return f.FS.Stat(name)
}

// ReadDir implements core.ReadFS.
func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check("readdir", name, ""); err != nil {
		return nil, pathErr("readdir", name, err)
	}
	return f.FS.ReadDir(name)
}

// OpenFile implements core.WriteFS.
func (f *FaultFS) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	if err := f.check("openfile", name, ""); err != nil {
		return nil, pathErr("open", name, err)
	}
	return f.FS.OpenFile(name, flag, perm)
}

// Mkdir implements core.WriteFS.
func (f *FaultFS) Mkdir(name string, perm fs.FileMode) error {
	if err := f.check("mkdir", name, ""); err != nil {
		return pathErr("mkdir", name, err)
	}
	return f.FS.Mkdir(name, perm)
}

// MkdirAll implements core.WriteFS.
func (f *FaultFS) MkdirAll(name string, perm fs.FileMode) error {
	if err := f.check("mkdirall", name, ""); err != nil {
		return pathErr("mkdir", name, err)
	}
	return f.FS.MkdirAll(name, perm)
}

// WriteFile implements core.WriteFS.
func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check("writefile", name, ""); err != nil {
		return pathErr("open", name, err)
	}
	return f.FS.WriteFile(name, data, perm)
}

// Remove implements core.ManageFS.
func (f *FaultFS) Remove(name string) error {
	if err := f.check("remove", name, ""); err != nil {
		return pathErr("remove", name, err)
	}
	return f.FS.Remove(name)
}

// Rename implements core.ManageFS.
func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.check("rename", oldpath, newpath); err != nil {
		var le *os.LinkError
		if errors.As(err, &le) {
			return err
		}
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
	return f.FS.Rename(oldpath, newpath)
}

// RemoveAll implements core.RemoveAllFS.
func (f *FaultFS) RemoveAll(name string) error {
	rfs, ok := f.FS.(core.RemoveAllFS)
	if !ok {
		return core.ErrUnsupported
	}
	if err := f.check("removeall", name, ""); err != nil {
		return pathErr("removeall", name, err)
	}
	return rfs.RemoveAll(name)
}

// Lstat implements core.LinkFS.
func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	lfs, ok := f.FS.(core.LinkFS)
	if !ok {
		return nil, core.ErrUnsupported
	}
	if err := f.check("lstat", name, ""); err != nil {
		return nil, pathErr("lstat", name, err)
	}
	return lfs.Lstat(name)
}

// Symlink implements core.LinkFS.
func (f *FaultFS) Symlink(oldname, newname string) error {
	lfs, ok := f.FS.(core.LinkFS)
	if !ok {
		return core.ErrUnsupported
	}
	if err := f.check("symlink", newname, oldname); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	return lfs.Symlink(oldname, newname)
}

// Readlink implements core.LinkFS.
func (f *FaultFS) Readlink(name string) (string, error) {
	lfs, ok := f.FS.(core.LinkFS)
	if !ok {
		return "", core.ErrUnsupported
	}
	if err := f.check("readlink", name, ""); err != nil {
		return "", pathErr("readlink", name, err)
	}
	return lfs.Readlink(name)
}

// Chmod implements core.MetadataFS.
func (f *FaultFS) Chmod(name string, mode fs.FileMode) error {
	mfs, ok := f.FS.(core.MetadataFS)
	if !ok {
		return core.ErrUnsupported
	}
	if err := f.check("chmod", name, ""); err != nil {
		return pathErr("chmod", name, err)
	}
	return mfs.Chmod(name, mode)
}

// Chtimes implements core.MetadataFS.
func (f *FaultFS) Chtimes(name string, atime, mtime time.Time) error {
	mfs, ok := f.FS.(core.MetadataFS)
	if !ok {
		return core.ErrUnsupported
	}
	if err := f.check("chtimes", name, ""); err != nil {
		return pathErr("chtimes", name, err)
	}
	return mfs.Chtimes(name, atime, mtime)
}

// Paths implements core.PathFS by forwarding to the wrapped filesystem.
func (f *FaultFS) Paths() core.PathAPI {
	return core.PathsFor(f.FS)
}

// Compile-time interface checks.
var (
	_ core.FS          = (*FaultFS)(nil)
	_ core.LinkFS      = (*FaultFS)(nil)
	_ core.MetadataFS  = (*FaultFS)(nil)
	_ core.RemoveAllFS = (*FaultFS)(nil)
	_ core.PathFS      = (*FaultFS)(nil)
)
