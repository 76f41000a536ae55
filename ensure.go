package fsx

import (
	"context"
	"io/fs"

	"github.com/jmgilman/go/fsx/errors"
)

// EnsureDir makes sure target is a directory, creating it and any missing
// parents. An existing directory is left as is. A non-directory at target
// fails with errors.CodeInvalidOperation.
func (o *Ops) EnsureDir(ctx context.Context, target string, opts ...EnsureOption) error {
	cfg := newEnsureConfig(opts)

	target, err := o.resolve(opEnsureDir, target)
	if err != nil {
		return err
	}
	return o.ensureDir(ctx, opEnsureDir, target, cfg.dirMode)
}

func (o *Ops) ensureDir(ctx context.Context, op, target string, mode fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return wrapErr(err, op, target, "")
	}

	info, err := o.fsys.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fail(errors.CodeInvalidOperation, op, target, "", "wrong type: %s exists and is not a directory", target)
	case !errors.IsNotExist(err):
		return wrapErr(err, op, target, "")
	}

	o.logger.Debug("creating directory", "op", op, "path", target)
	return wrapErr(o.fsys.MkdirAll(target, mode), op, target, "")
}

// EnsureFile makes sure target is a regular file. A missing file is created
// empty, together with any missing parent directories. An existing file is
// left untouched.
//
// A non-file at target, or a non-directory where its parent should be,
// fails with errors.CodeInvalidOperation.
func (o *Ops) EnsureFile(ctx context.Context, target string, opts ...EnsureOption) error {
	cfg := newEnsureConfig(opts)

	target, err := o.resolve(opEnsureFile, target)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return wrapErr(err, opEnsureFile, target, "")
	}

	// A failed stat is treated as absence; the parent checks below report
	// anything more specific.
	if info, err := o.fsys.Stat(target); err == nil {
		if info.Mode().IsRegular() {
			return nil
		}
		return fail(errors.CodeInvalidOperation, opEnsureFile, target, "", "wrong type: %s exists and is not a file", target)
	}

	parent := o.paths.Dir(target)
	info, err := o.fsys.Stat(parent)
	switch {
	case errors.IsNotExist(err):
		if err := o.ensureDir(ctx, opEnsureFile, parent, cfg.dirMode); err != nil {
			return err
		}
	case err != nil:
		return wrapErr(err, opEnsureFile, target, "")
	case !info.IsDir():
		return fail(errors.CodeInvalidOperation, opEnsureFile, target, "", "wrong type: parent %s is not a directory", parent)
	}

	o.logger.Debug("creating file", "path", target)
	return wrapErr(o.fsys.WriteFile(target, nil, cfg.fileMode), opEnsureFile, target, "")
}
