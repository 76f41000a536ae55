package errors

import "fmt"

// New creates a new OpError with the given code, operation, path and message.
//
// Example:
//
//	err := errors.New(errors.CodeInvalidOperation, "copy", src, "source and destination must not be the same")
func New(code ErrorCode, op, path, message string) OpError {
	return &opError{
		code:    code,
		op:      op,
		path:    path,
		message: message,
	}
}

// Newf creates a new OpError with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeUnsupportedEntry, "copy", src, "cannot copy %s", kind)
func Newf(code ErrorCode, op, path, format string, args ...interface{}) OpError {
	return New(code, op, path, fmt.Sprintf(format, args...))
}

// WithDest returns a copy of err with its destination path set.
// Errors that are not OpErrors are wrapped first. Returns nil if err is nil.
func WithDest(err error, dest string) OpError {
	if err == nil {
		return nil
	}

	var e *opError
	if oe, ok := err.(*opError); ok {
		cp := *oe
		e = &cp
	} else {
		e = wrap(err, "", "")
	}
	e.dest = dest
	return e
}
