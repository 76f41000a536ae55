package fsx

import (
	"context"

	"github.com/jmgilman/go/fsx/core"
	"github.com/jmgilman/go/fsx/errors"
)

// Remove deletes target and, for a directory, everything below it.
// Symbolic links are removed, never followed. A missing target is not an
// error, so Remove can be called repeatedly.
func (o *Ops) Remove(ctx context.Context, target string) error {
	target, err := o.resolve(opRemove, target)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return wrapErr(err, opRemove, target, "")
	}
	o.logger.Debug("remove", "path", target)

	if rfs, ok := o.fsys.(core.RemoveAllFS); ok {
		err := rfs.RemoveAll(target)
		if !errors.Is(err, core.ErrUnsupported) {
			return wrapErr(err, opRemove, target, "")
		}
	}
	return o.removeTree(ctx, target)
}

// removeTree removes target entry by entry, children first.
func (o *Ops) removeTree(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return wrapErr(err, opRemove, target, "")
	}

	info, err := o.lstat(target)
	if err != nil {
		if errors.IsNotExist(err) {
			return nil
		}
		return wrapErr(err, opRemove, target, "")
	}

	if info.IsDir() {
		entries, err := o.fsys.ReadDir(target)
		if err != nil && !errors.IsNotExist(err) {
			return wrapErr(err, opRemove, target, "")
		}
		err = o.fanout(ctx, len(entries), func(ctx context.Context, i int) error {
			return o.removeTree(ctx, o.paths.Join(target, entries[i].Name()))
		})
		if err != nil {
			return wrapErr(err, opRemove, target, "")
		}
	}

	if err := o.fsys.Remove(target); err != nil && !errors.IsNotExist(err) {
		return wrapErr(err, opRemove, target, "")
	}
	return nil
}
