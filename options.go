package fsx

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/jmgilman/go/fsx/core"
)

const (
	defaultConcurrency = 8
	defaultDirMode     = fs.FileMode(0o777)
	defaultFileMode    = fs.FileMode(0o666)
)

// Option configures an Ops.
type Option func(*Ops)

// WithLogger sets the logger used for debug traces and fallback warnings.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Ops) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency bounds how many goroutines an Ops uses to process sibling
// entries. Values below 1 are treated as 1, which processes every entry in
// the calling goroutine.
func WithConcurrency(n int) Option {
	return func(o *Ops) {
		o.concurrency = n
	}
}

// WithPaths overrides the path API. By default the filesystem's own path API
// is used when it advertises one (core.PathFS), and core.OSPaths otherwise.
func WithPaths(paths core.PathAPI) Option {
	return func(o *Ops) {
		if paths != nil {
			o.paths = paths
		}
	}
}

// FilterFunc decides whether Copy processes the entry at src. It is called
// for the top-level source and again for every entry below it. Returning
// false skips the entry (and, for a directory, everything inside it).
type FilterFunc func(ctx context.Context, src, dest string) (bool, error)

// copyConfig holds the settings of a single Copy call.
type copyConfig struct {
	dereference        bool
	errorOnExist       bool
	filter             FilterFunc
	force              bool
	preserveTimestamps bool
	recursive          bool
	verbatimSymlinks   bool
}

// CopyOption configures a Copy call.
type CopyOption func(*copyConfig)

func newCopyConfig(opts []CopyOption) copyConfig {
	cfg := copyConfig{
		force:     true,
		recursive: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithForce controls whether existing destination files are replaced.
// Defaults to true.
func WithForce(force bool) CopyOption {
	return func(c *copyConfig) {
		c.force = force
	}
}

// WithDereference makes Copy follow symbolic links in the source and copy
// what they point to. Defaults to false.
func WithDereference(dereference bool) CopyOption {
	return func(c *copyConfig) {
		c.dereference = dereference
	}
}

// WithErrorOnExist makes Copy fail on an existing destination file when
// force is disabled. Without it such files are skipped silently.
func WithErrorOnExist(errorOnExist bool) CopyOption {
	return func(c *copyConfig) {
		c.errorOnExist = errorOnExist
	}
}

// WithFilter sets the predicate that selects which entries are copied.
func WithFilter(filter FilterFunc) CopyOption {
	return func(c *copyConfig) {
		c.filter = filter
	}
}

// WithPreserveTimestamps copies access and modification times of files.
// Defaults to false.
func WithPreserveTimestamps(preserve bool) CopyOption {
	return func(c *copyConfig) {
		c.preserveTimestamps = preserve
	}
}

// WithRecursive controls whether directories are copied. When false,
// copying a directory fails. Defaults to true.
func WithRecursive(recursive bool) CopyOption {
	return func(c *copyConfig) {
		c.recursive = recursive
	}
}

// WithVerbatimSymlinks disables resolving relative link targets before the
// overlap checks performed when replacing an existing link.
func WithVerbatimSymlinks(verbatim bool) CopyOption {
	return func(c *copyConfig) {
		c.verbatimSymlinks = verbatim
	}
}

type moveConfig struct {
	overwrite bool
}

// MoveOption configures a Move call.
type MoveOption func(*moveConfig)

func newMoveConfig(opts []MoveOption) moveConfig {
	var cfg moveConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithOverwrite makes Move remove an existing destination before renaming.
// Defaults to false, in which case an existing destination is an error.
func WithOverwrite(overwrite bool) MoveOption {
	return func(c *moveConfig) {
		c.overwrite = overwrite
	}
}

type ensureConfig struct {
	dirMode  fs.FileMode
	fileMode fs.FileMode
}

// EnsureOption configures EnsureDir and EnsureFile.
type EnsureOption func(*ensureConfig)

func newEnsureConfig(opts []EnsureOption) ensureConfig {
	cfg := ensureConfig{
		dirMode:  defaultDirMode,
		fileMode: defaultFileMode,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithDirMode sets the permission bits of created directories (before
// umask). Defaults to 0o777.
func WithDirMode(mode fs.FileMode) EnsureOption {
	return func(c *ensureConfig) {
		c.dirMode = mode
	}
}

// WithFileMode sets the permission bits of a file created by EnsureFile
// (before umask). Defaults to 0o666.
func WithFileMode(mode fs.FileMode) EnsureOption {
	return func(c *ensureConfig) {
		c.fileMode = mode
	}
}
