package errors

import (
	"context"
	"errors"
	"io/fs"

	"github.com/jmgilman/go/fsx/core"
)

// Wrap wraps a filesystem error with the operation and path that produced it.
// The error code is derived from the cause: not-exist, exist and permission
// errors map to their codes, context errors to CodeCanceled, cross-device
// rename failures to CodeCrossDevice, and anything else to CodeIO.
//
// If err is already an OpError it is returned unchanged, so a failure deep in
// a tree walk keeps the path of the entry that actually failed.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := fsys.Rename(src, dest); err != nil {
//	    return errors.WithDest(errors.Wrap(err, "move", src), dest)
//	}
func Wrap(err error, op, path string) OpError {
	if err == nil {
		return nil
	}

	var oe OpError
	if errors.As(err, &oe) {
		return oe
	}

	return wrap(err, op, path)
}

// WrapCode wraps err with an explicit code and message instead of deriving
// them from the cause. Returns nil if err is nil.
func WrapCode(err error, code ErrorCode, op, path, message string) OpError {
	if err == nil {
		return nil
	}

	e := wrap(err, op, path)
	e.code = code
	e.message = message
	return e
}

func wrap(err error, op, path string) *opError {
	return &opError{
		code:  classify(err),
		op:    op,
		path:  path,
		errno: errnoName(err),
		cause: err,
	}
}

// classify maps a cause onto an error code.
func classify(err error) ErrorCode {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	case isCrossDevice(err):
		return CodeCrossDevice
	case errors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, fs.ErrExist):
		return CodeAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return CodePermission
	case errors.Is(err, core.ErrUnsupported):
		return CodeUnsupported
	default:
		return CodeIO
	}
}
