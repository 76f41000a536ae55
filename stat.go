package fsx

import (
	"context"
	"io/fs"
	"strings"
	"time"

	"github.com/jmgilman/go/fsx/core"
	"github.com/jmgilman/go/fsx/errors"
)

// lstat describes name without following a final symbolic link. Backends
// without link support cannot hold links, so Stat gives the same answer.
func (o *Ops) lstat(name string) (fs.FileInfo, error) {
	if lfs, ok := o.fsys.(core.LinkFS); ok {
		info, err := lfs.Lstat(name)
		if !errors.Is(err, core.ErrUnsupported) {
			return info, err
		}
	}
	return o.fsys.Stat(name)
}

func (o *Ops) statFunc(dereference bool) func(string) (fs.FileInfo, error) {
	if dereference {
		return o.fsys.Stat
	}
	return o.lstat
}

// pathStats is the outcome of checkPaths.
type pathStats struct {
	src  fs.FileInfo
	dest fs.FileInfo // nil when dest does not exist

	// changingCase is set by Move when src and dest are the same entry
	// reached through names that differ only in letter case.
	changingCase bool
}

// checkPaths validates a copy or move of src onto dest before anything is
// mutated.
func (o *Ops) checkPaths(ctx context.Context, op, src, dest string, dereference bool) (pathStats, error) {
	if err := ctx.Err(); err != nil {
		return pathStats{}, wrapErr(err, op, src, dest)
	}

	stat := o.statFunc(dereference)
	srcInfo, err := stat(src)
	if err != nil {
		return pathStats{}, wrapErr(err, op, src, dest)
	}
	destInfo, err := stat(dest)
	if err != nil {
		if !errors.IsNotExist(err) {
			return pathStats{}, wrapErr(err, op, src, dest)
		}
		destInfo = nil
	}

	if destInfo != nil {
		if o.sameEntry(src, srcInfo, dest, destInfo) {
			srcBase, destBase := o.paths.Base(src), o.paths.Base(dest)
			if op == opMove && srcBase != destBase && strings.EqualFold(srcBase, destBase) {
				return pathStats{src: srcInfo, dest: destInfo, changingCase: true}, nil
			}
			return pathStats{}, fail(errors.CodeInvalidOperation, op, src, dest,
				"source and destination must not be the same")
		}
		if srcInfo.IsDir() && !destInfo.IsDir() {
			return pathStats{}, fail(errors.CodeInvalidOperation, op, src, dest,
				"cannot overwrite non-directory %s with directory %s", dest, src)
		}
		if !srcInfo.IsDir() && destInfo.IsDir() {
			return pathStats{}, fail(errors.CodeInvalidOperation, op, src, dest,
				"cannot overwrite directory %s with non-directory %s", dest, src)
		}
	}

	if srcInfo.IsDir() && IsSubdirectory(o.paths, src, dest) {
		return pathStats{}, fail(errors.CodeInvalidOperation, op, src, dest,
			"cannot %s %s to a subdirectory of itself, %s", op, src, dest)
	}
	return pathStats{src: srcInfo, dest: destInfo}, nil
}

// sameEntry reports whether the existing entries a and b are one entry.
// When either info lacks identity the resolved names are compared instead,
// folding case if the path API does, so an entry without identity is never
// mistaken for a different one under its own name.
func (o *Ops) sameEntry(a string, aInfo fs.FileInfo, b string, bInfo fs.FileInfo) bool {
	idA, okA := core.IDOf(aInfo)
	idB, okB := core.IDOf(bInfo)
	if okA && okB {
		return idA == idB
	}
	if a == b {
		return true
	}
	return core.IsCaseInsensitive(o.paths) && strings.EqualFold(a, b)
}

// checkParentPaths walks from dest's parent towards the root and fails if
// any existing ancestor is the entry srcInfo describes. The walk stops at
// the root, at src's own parent, or at the first missing ancestor.
func (o *Ops) checkParentPaths(ctx context.Context, op, src string, srcInfo fs.FileInfo, dest string) error {
	srcParent := o.paths.Dir(src)
	current := dest
	for {
		parent := o.paths.Dir(current)
		if parent == current || parent == srcParent || parent == o.paths.Root(parent) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return wrapErr(err, op, src, dest)
		}

		info, err := o.fsys.Stat(parent)
		if err != nil {
			if errors.IsNotExist(err) {
				return nil
			}
			return wrapErr(err, op, src, dest)
		}
		if o.sameEntry(src, srcInfo, parent, info) {
			return fail(errors.CodeInvalidOperation, op, src, dest,
				"cannot %s %s to a subdirectory of itself, %s", op, src, dest)
		}
		current = parent
	}
}

// isDir reports whether name is a directory, following links. Missing or
// unreadable entries are not directories.
func (o *Ops) isDir(name string) bool {
	info, err := o.fsys.Stat(name)
	return err == nil && info.IsDir()
}

// chmodBits keeps the parts of mode a chmod can apply.
func chmodBits(mode fs.FileMode) fs.FileMode {
	return mode & (fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky)
}

// chmod applies mode to name. Backends that cannot change modes are skipped.
func (o *Ops) chmod(op, name string, mode fs.FileMode) error {
	mfs, ok := o.fsys.(core.MetadataFS)
	if !ok {
		o.logger.Debug("backend cannot change modes, skipping", "op", op, "path", name)
		return nil
	}
	err := mfs.Chmod(name, chmodBits(mode))
	if errors.Is(err, core.ErrUnsupported) {
		o.logger.Debug("backend cannot change modes, skipping", "op", op, "path", name)
		return nil
	}
	return wrapErr(err, op, name, "")
}

// chtimes sets the timestamps of name. Backends that cannot change
// timestamps are skipped.
func (o *Ops) chtimes(op, name string, atime, mtime time.Time) error {
	mfs, ok := o.fsys.(core.MetadataFS)
	if !ok {
		o.logger.Debug("backend cannot change timestamps, skipping", "op", op, "path", name)
		return nil
	}
	err := mfs.Chtimes(name, atime, mtime)
	if errors.Is(err, core.ErrUnsupported) {
		o.logger.Debug("backend cannot change timestamps, skipping", "op", op, "path", name)
		return nil
	}
	return wrapErr(err, op, name, "")
}
