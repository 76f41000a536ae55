package fsx

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jmgilman/go/fsx/core"
	"github.com/jmgilman/go/fsx/errors"
)

// Operation names reported by OpError.Op.
const (
	opCopy       = "copy"
	opMove       = "move"
	opRemove     = "remove"
	opEmptyDir   = "emptydir"
	opEnsureDir  = "ensuredir"
	opEnsureFile = "ensurefile"
)

// Ops runs copy, move and remove operations against one filesystem.
// An Ops holds no per-call state and is safe for concurrent use.
type Ops struct {
	fsys        core.FS
	paths       core.PathAPI
	logger      *slog.Logger
	concurrency int
	workers     *semaphore.Weighted
}

// New creates an Ops for fsys.
func New(fsys core.FS, opts ...Option) *Ops {
	o := &Ops{
		fsys:        fsys,
		paths:       core.PathsFor(fsys),
		logger:      slog.New(slog.DiscardHandler),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("fs", fsys.Type().String())
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	if o.concurrency > 1 {
		// The calling goroutine is the first worker.
		o.workers = semaphore.NewWeighted(int64(o.concurrency - 1))
	}
	return o
}

// FS returns the filesystem the operations run against.
func (o *Ops) FS() core.FS {
	return o.fsys
}

// Paths returns the path API used to interpret names.
func (o *Ops) Paths() core.PathAPI {
	return o.paths
}

// Copy copies src to dest on fsys. See Ops.Copy.
func Copy(ctx context.Context, fsys core.FS, src, dest string, opts ...CopyOption) error {
	return New(fsys).Copy(ctx, src, dest, opts...)
}

// Move moves src to dest on fsys. See Ops.Move.
func Move(ctx context.Context, fsys core.FS, src, dest string, opts ...MoveOption) error {
	return New(fsys).Move(ctx, src, dest, opts...)
}

// Remove removes target from fsys. See Ops.Remove.
func Remove(ctx context.Context, fsys core.FS, target string) error {
	return New(fsys).Remove(ctx, target)
}

// EmptyDir empties target on fsys. See Ops.EmptyDir.
func EmptyDir(ctx context.Context, fsys core.FS, target string) error {
	return New(fsys).EmptyDir(ctx, target)
}

// EnsureDir creates target on fsys. See Ops.EnsureDir.
func EnsureDir(ctx context.Context, fsys core.FS, target string, opts ...EnsureOption) error {
	return New(fsys).EnsureDir(ctx, target, opts...)
}

// EnsureFile creates target on fsys. See Ops.EnsureFile.
func EnsureFile(ctx context.Context, fsys core.FS, target string, opts ...EnsureOption) error {
	return New(fsys).EnsureFile(ctx, target, opts...)
}

// resolve turns name into the absolute form all checks compare.
func (o *Ops) resolve(op, name string) (string, error) {
	abs, err := o.paths.Resolve(name)
	if err != nil {
		return "", errors.Wrap(err, op, name)
	}
	return abs, nil
}

// fanout calls fn for every index in [0, n). Calls run on a spare worker
// when one is free and in the calling goroutine otherwise, so nested
// fan-outs never wait on each other for workers. The first error cancels
// the context handed to the remaining calls and stops new ones.
func (o *Ops) fanout(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		if o.workers != nil && o.workers.TryAcquire(1) {
			g.Go(func() error {
				defer o.workers.Release(1)
				return fn(gctx, i)
			})
			continue
		}
		if err := fn(gctx, i); err != nil {
			g.Go(func() error { return err })
			break
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// wrapErr wraps a failure of op. Errors that already carry operation
// context are returned unchanged so the innermost path is reported.
func wrapErr(err error, op, src, dest string) error {
	if err == nil {
		return nil
	}
	var oe errors.OpError
	if errors.As(err, &oe) {
		return oe
	}
	if dest == "" {
		return errors.Wrap(err, op, src)
	}
	return errors.WithDest(errors.Wrap(err, op, src), dest)
}

// fail builds a validation or policy error of op.
func fail(code errors.ErrorCode, op, src, dest, format string, args ...any) error {
	err := errors.Newf(code, op, src, format, args...)
	if dest == "" {
		return err
	}
	return errors.WithDest(err, dest)
}
