package fsx

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/jmgilman/go/fsx/core"
	"github.com/jmgilman/go/fsx/errors"
)

// Copy copies src to dest.
//
// Directories are copied recursively, files by streaming their content and
// symbolic links by recreating them with the same target text. The mode of
// every created entry is set to the mode of its source when the filesystem
// supports it.
//
// Before anything is written Copy rejects copying an entry onto itself,
// copying a directory into its own subtree and replacing a directory with a
// non-directory (or the reverse); these fail with
// errors.CodeInvalidOperation. A missing parent of dest is created.
//
// Existing destination files are replaced by default. With WithForce(false)
// they are skipped, or reported as errors.CodeAlreadyExists when
// WithErrorOnExist(true) is also given. Sockets, FIFOs and entries of
// unknown type fail with errors.CodeUnsupportedEntry.
//
// The first failure stops the copy. Entries written before it stay in place.
func (o *Ops) Copy(ctx context.Context, src, dest string, opts ...CopyOption) error {
	c := &copier{Ops: o, cfg: newCopyConfig(opts)}

	src, err := o.resolve(opCopy, src)
	if err != nil {
		return err
	}
	dest, err = o.resolve(opCopy, dest)
	if err != nil {
		return err
	}
	o.logger.Debug("copy", "src", src, "dest", dest)

	stats, err := o.checkPaths(ctx, opCopy, src, dest, c.cfg.dereference)
	if err != nil {
		return err
	}
	if err := o.checkParentPaths(ctx, opCopy, src, stats.src, dest); err != nil {
		return err
	}

	parent := o.paths.Dir(dest)
	ok, err := o.fsys.Exists(parent)
	if err != nil {
		return wrapErr(err, opCopy, src, dest)
	}
	if !ok {
		if err := o.fsys.MkdirAll(parent, defaultDirMode); err != nil {
			return wrapErr(err, opCopy, src, dest)
		}
	}

	include, err := c.include(ctx, src, dest)
	if err != nil || !include {
		return err
	}
	return c.copyEntry(ctx, stats.dest, src, dest)
}

// copier carries the configuration of one Copy call through the recursion.
type copier struct {
	*Ops
	cfg copyConfig
}

func (c *copier) include(ctx context.Context, src, dest string) (bool, error) {
	if c.cfg.filter == nil {
		return true, nil
	}
	ok, err := c.cfg.filter(ctx, src, dest)
	if err != nil {
		return false, wrapErr(err, opCopy, src, dest)
	}
	if !ok {
		c.logger.Debug("copy filtered out entry", "src", src, "dest", dest)
	}
	return ok, nil
}

// copyChild copies one entry found inside a directory being copied.
func (c *copier) copyChild(ctx context.Context, src, dest string) error {
	include, err := c.include(ctx, src, dest)
	if err != nil || !include {
		return err
	}
	stats, err := c.checkPaths(ctx, opCopy, src, dest, c.cfg.dereference)
	if err != nil {
		return err
	}
	return c.copyEntry(ctx, stats.dest, src, dest)
}

// copyEntry dispatches on the type of src. destInfo is nil when dest does
// not exist.
func (c *copier) copyEntry(ctx context.Context, destInfo fs.FileInfo, src, dest string) error {
	if err := ctx.Err(); err != nil {
		return wrapErr(err, opCopy, src, dest)
	}

	srcInfo, err := c.statFunc(c.cfg.dereference)(src)
	if err != nil {
		return wrapErr(err, opCopy, src, dest)
	}

	mode := srcInfo.Mode()
	switch {
	case mode.IsDir():
		return c.copyDir(ctx, srcInfo, destInfo, src, dest)
	case mode.IsRegular(), mode&fs.ModeDevice != 0:
		return c.copyFile(ctx, srcInfo, destInfo, src, dest)
	case mode&fs.ModeSymlink != 0:
		return c.copyLink(destInfo, src, dest)
	case mode&fs.ModeSocket != 0:
		return fail(errors.CodeUnsupportedEntry, opCopy, src, dest, "cannot copy a socket file")
	case mode&fs.ModeNamedPipe != 0:
		return fail(errors.CodeUnsupportedEntry, opCopy, src, dest, "cannot copy a FIFO pipe")
	default:
		return fail(errors.CodeUnsupportedEntry, opCopy, src, dest, "cannot copy entry of unknown type %s", mode.Type())
	}
}

func (c *copier) copyDir(ctx context.Context, srcInfo, destInfo fs.FileInfo, src, dest string) error {
	if !c.cfg.recursive {
		return fail(errors.CodeInvalidOperation, opCopy, src, dest, "%s is a directory, not copied", src)
	}

	// A new directory stays writable by its owner until its children are in
	// place; the source mode is applied afterwards.
	if destInfo == nil {
		if err := c.fsys.Mkdir(dest, srcInfo.Mode().Perm()|0o700); err != nil {
			return wrapErr(err, opCopy, src, dest)
		}
	}

	entries, err := c.fsys.ReadDir(src)
	if err != nil {
		return wrapErr(err, opCopy, src, dest)
	}
	err = c.fanout(ctx, len(entries), func(ctx context.Context, i int) error {
		name := entries[i].Name()
		return c.copyChild(ctx, c.paths.Join(src, name), c.paths.Join(dest, name))
	})
	if err != nil {
		return wrapErr(err, opCopy, src, dest)
	}

	if destInfo == nil {
		return c.chmod(opCopy, dest, srcInfo.Mode())
	}
	return nil
}

func (c *copier) copyFile(ctx context.Context, srcInfo, destInfo fs.FileInfo, src, dest string) error {
	if destInfo != nil {
		switch {
		case c.cfg.force:
			if err := c.fsys.Remove(dest); err != nil {
				return wrapErr(err, opCopy, src, dest)
			}
		case c.cfg.errorOnExist:
			return fail(errors.CodeAlreadyExists, opCopy, src, dest, "destination already exists")
		default:
			c.logger.Debug("copy kept existing destination", "src", src, "dest", dest)
			return nil
		}
	}

	if err := c.streamFile(ctx, srcInfo, src, dest); err != nil {
		return err
	}

	if c.cfg.preserveTimestamps {
		if err := c.preserveTimes(srcInfo, src, dest); err != nil {
			return err
		}
	}
	return c.chmod(opCopy, dest, srcInfo.Mode())
}

// streamFile writes the content of src to a new file at dest.
func (c *copier) streamFile(ctx context.Context, srcInfo fs.FileInfo, src, dest string) error {
	in, err := c.fsys.Open(src)
	if err != nil {
		return wrapErr(err, opCopy, src, dest)
	}
	defer in.Close()

	out, err := c.fsys.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return wrapErr(err, opCopy, src, dest)
	}
	if _, err := io.Copy(out, &ctxReader{ctx: ctx, r: in}); err != nil {
		_ = out.Close()
		return wrapErr(err, opCopy, src, dest)
	}
	if err := out.Close(); err != nil {
		return wrapErr(err, opCopy, src, dest)
	}
	return nil
}

// preserveTimes copies the timestamps of src to dest. The source is stat'ed
// again because reading it may have moved its access time.
func (c *copier) preserveTimes(srcInfo fs.FileInfo, src, dest string) error {
	if srcInfo.Mode().Perm()&0o200 == 0 {
		if err := c.chmod(opCopy, dest, srcInfo.Mode()|0o200); err != nil {
			return err
		}
	}
	updated, err := c.fsys.Stat(src)
	if err != nil {
		return wrapErr(err, opCopy, src, dest)
	}
	return c.chtimes(opCopy, dest, atime(updated), updated.ModTime())
}

// copyLink recreates the symbolic link src at dest with the same target.
//
// An existing link at dest is replaced unless the two targets overlap. Any
// other existing entry is left to Symlink, which refuses to replace it.
func (c *copier) copyLink(destInfo fs.FileInfo, src, dest string) error {
	lfs, ok := c.fsys.(core.LinkFS)
	if !ok {
		return fail(errors.CodeUnsupported, opCopy, src, dest, "filesystem does not support symbolic links")
	}

	target, err := lfs.Readlink(src)
	if err != nil {
		return wrapErr(err, opCopy, src, dest)
	}

	if destInfo == nil || destInfo.Mode()&fs.ModeSymlink == 0 {
		return wrapErr(lfs.Symlink(target, dest), opCopy, src, dest)
	}

	destTarget, err := lfs.Readlink(dest)
	if err != nil {
		return wrapErr(err, opCopy, src, dest)
	}

	resolvedSrc := c.linkTarget(src, target)
	resolvedDest := c.linkTarget(dest, destTarget)
	if IsSubdirectory(c.paths, resolvedSrc, resolvedDest) {
		return fail(errors.CodeInvalidOperation, opCopy, src, dest,
			"cannot copy %s to a subdirectory of itself, %s", resolvedSrc, resolvedDest)
	}
	if c.isDir(src) && IsSubdirectory(c.paths, resolvedDest, resolvedSrc) {
		return fail(errors.CodeInvalidOperation, opCopy, src, dest,
			"cannot overwrite %s with %s", resolvedDest, resolvedSrc)
	}

	if err := c.fsys.Remove(dest); err != nil {
		return wrapErr(err, opCopy, src, dest)
	}
	return wrapErr(lfs.Symlink(target, dest), opCopy, src, dest)
}

// linkTarget returns the target of the link at name as compared by the
// overlap checks. Relative targets are resolved against the link's
// directory unless verbatim symlinks were requested.
func (c *copier) linkTarget(name, target string) string {
	if c.cfg.verbatimSymlinks || c.paths.IsAbs(target) {
		return target
	}
	return c.paths.Join(c.paths.Dir(name), target)
}

// ctxReader stops a stream once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
