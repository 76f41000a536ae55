package fsx

import (
	"context"

	"github.com/jmgilman/go/fsx/errors"
)

// EmptyDir leaves target as an empty directory. Its entries are removed
// concurrently; a missing target is created.
func (o *Ops) EmptyDir(ctx context.Context, target string) error {
	target, err := o.resolve(opEmptyDir, target)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return wrapErr(err, opEmptyDir, target, "")
	}
	o.logger.Debug("empty directory", "path", target)

	entries, err := o.fsys.ReadDir(target)
	if err != nil {
		if errors.IsNotExist(err) {
			return o.ensureDir(ctx, opEmptyDir, target, defaultDirMode)
		}
		// An existing directory that cannot be listed cannot be emptied.
		if err := o.ensureDir(ctx, opEmptyDir, target, defaultDirMode); err != nil {
			return err
		}
		return wrapErr(err, opEmptyDir, target, "")
	}

	err = o.fanout(ctx, len(entries), func(ctx context.Context, i int) error {
		return o.Remove(ctx, o.paths.Join(target, entries[i].Name()))
	})
	return wrapErr(err, opEmptyDir, target, "")
}
