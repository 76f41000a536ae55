// Package errors provides the structured error type returned by fsx operations.
//
// Every failure surfaced by the copy, move, remove and ensure operations is an
// OpError. It carries an error code for categorization, the operation name, the
// source and destination paths, and the symbolic name of the underlying OS
// error number when one is available. The wrapped cause stays reachable through
// the standard library (errors.Is, errors.As, errors.Unwrap), so callers can
// keep matching io/fs sentinels such as fs.ErrNotExist.
//
// # Codes
//
// Failures detected before touching the filesystem use the invalid-operation
// and conflict codes:
//
//   - CodeInvalidOperation: self-copy, copy into own subtree, type mismatch
//   - CodeAlreadyExists: destination exists and the policy forbids replacing it
//   - CodeUnsupportedEntry: sockets, FIFOs and unknown entry types
//
// Failures reported by the filesystem are classified from their cause by Wrap:
// CodeNotFound, CodePermission, CodeCrossDevice, CodeUnsupported, CodeCanceled
// and CodeIO for everything else.
//
// # Usage
//
// Creating errors:
//
//	err := errors.New(errors.CodeInvalidOperation, "copy", src, "cannot copy to a subdirectory of itself")
//	err = errors.WithDest(err, dest)
//
// Wrapping filesystem errors:
//
//	if err := fsys.Remove(name); err != nil {
//	    return errors.Wrap(err, "remove", name)
//	}
//
// Inspecting errors:
//
//	switch errors.GetCode(err) {
//	case errors.CodeAlreadyExists:
//	    // Destination exists
//	case errors.CodeNotFound:
//	    // Source vanished
//	}
//
// Logging:
//
// OpError implements slog.LogValuer, so passing it as an attribute value to a
// *slog.Logger renders its fields as a group.
package errors
