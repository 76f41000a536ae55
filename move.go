package fsx

import (
	"context"

	"github.com/jmgilman/go/fsx/errors"
)

// Move moves src to dest.
//
// Move performs the same validation as Copy, with one exception: when src
// and dest are the same entry reached through names that differ only in
// letter case (on a case-insensitive filesystem), the rename is carried out
// so the entry takes the new spelling. Missing parents of dest are created.
//
// An existing dest is an errors.CodeAlreadyExists failure unless
// WithOverwrite(true) is given, in which case dest is removed first.
//
// Move uses the filesystem's rename. If the rename fails because src and
// dest are on different devices, Move copies src to dest (preserving
// timestamps) and then removes src. Should that removal fail, both trees
// remain and the returned error says so.
func (o *Ops) Move(ctx context.Context, src, dest string, opts ...MoveOption) error {
	cfg := newMoveConfig(opts)

	src, err := o.resolve(opMove, src)
	if err != nil {
		return err
	}
	dest, err = o.resolve(opMove, dest)
	if err != nil {
		return err
	}
	o.logger.Debug("move", "src", src, "dest", dest, "overwrite", cfg.overwrite)

	stats, err := o.checkPaths(ctx, opMove, src, dest, false)
	if err != nil {
		return err
	}
	if err := o.checkParentPaths(ctx, opMove, src, stats.src, dest); err != nil {
		return err
	}

	if parent := o.paths.Dir(dest); parent != o.paths.Root(parent) {
		if err := o.fsys.MkdirAll(parent, defaultDirMode); err != nil {
			return wrapErr(err, opMove, src, dest)
		}
	}

	return o.rename(ctx, src, dest, cfg.overwrite, stats.changingCase)
}

func (o *Ops) rename(ctx context.Context, src, dest string, overwrite, changingCase bool) error {
	if !changingCase {
		if overwrite {
			if err := o.Remove(ctx, dest); err != nil {
				return err
			}
		} else {
			_, err := o.lstat(dest)
			if err == nil {
				return fail(errors.CodeAlreadyExists, opMove, src, dest, "destination already exists")
			}
			if !errors.IsNotExist(err) {
				return wrapErr(err, opMove, src, dest)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return wrapErr(err, opMove, src, dest)
	}
	err := o.fsys.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !errors.IsCrossDevice(err) {
		return wrapErr(err, opMove, src, dest)
	}
	return o.moveAcrossDevices(ctx, src, dest, overwrite)
}

// moveAcrossDevices replaces a rename that cannot cross devices with a copy
// followed by removal of the source.
func (o *Ops) moveAcrossDevices(ctx context.Context, src, dest string, overwrite bool) error {
	o.logger.Warn("rename crossed devices, falling back to copy", "src", src, "dest", dest)

	err := o.Copy(ctx, src, dest,
		WithForce(overwrite),
		WithErrorOnExist(true),
		WithPreserveTimestamps(true),
	)
	if err != nil {
		return err
	}

	if err := o.Remove(ctx, src); err != nil {
		o.logger.Warn("source left behind after cross-device move", "src", src, "dest", dest, "error", err)
		return errors.WithDest(errors.WrapCode(err, errors.CodeIO, opMove, src,
			"copied to destination but failed to remove source; both copies remain"), dest)
	}
	return nil
}
