// Package fsx provides safe copy, move and remove operations on top of the
// primitive calls of an injected filesystem.
//
// The operations never touch the host directly. They consume a core.FS (and
// whatever optional capabilities it implements) plus a core.PathAPI, so the
// same code runs against a local disk, an in-memory tree or a fault-injecting
// test wrapper.
//
// # Operations
//
//   - Copy recursively copies a file, directory or symbolic link. It refuses
//     to copy an entry onto itself or into its own subtree, applies an
//     overwrite policy, and optionally filters entries and preserves
//     timestamps.
//   - Move renames an entry, falling back to Copy plus Remove when the rename
//     crosses devices.
//   - Remove deletes an entry and everything below it. Removing a missing
//     path succeeds.
//   - EnsureDir and EnsureFile create a directory or an empty file, with any
//     missing parents.
//   - EmptyDir leaves a directory empty, creating it when absent.
//
// # Basic Usage
//
//	fsys := billy.NewLocal()
//	ops := fsx.New(fsys, fsx.WithLogger(slog.Default()))
//
//	err := ops.Copy(ctx, "/src/project", "/backup/project",
//	    fsx.WithPreserveTimestamps(true),
//	    fsx.WithFilter(fsx.ChainFilters(skipGit, skipLogs)),
//	)
//	if errors.HasCode(err, errors.CodeInvalidOperation) {
//	    // source and destination overlap
//	}
//
// The package-level functions run the same operations with a default Ops:
//
//	err := fsx.Move(ctx, fsys, "/tmp/Report.txt", "/tmp/report.txt")
//
// # Concurrency
//
// Sibling entries of a directory are copied or removed concurrently. The
// number of goroutines an Ops uses is bounded by WithConcurrency; a value of
// 1 processes every entry in the calling goroutine. Failures abort the rest
// of the walk and nothing already written is rolled back.
//
// # Errors
//
// Every returned error is an errors.OpError naming the operation and the
// path(s) involved. Validation failures (self-copy, type mismatch, nesting)
// carry errors.CodeInvalidOperation and happen before anything is mutated.
package fsx
