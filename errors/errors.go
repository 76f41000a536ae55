package errors

// OpError extends the standard error interface with the structured fields
// of a failed filesystem operation.
//
// OpError carries a code for categorization, the operation and path(s)
// involved, the name of the underlying OS error number when there is one,
// and remains compatible with standard library error handling
// (errors.Is, errors.As, errors.Unwrap).
type OpError interface {
	error

	// Code returns the error code identifying the kind of failure.
	Code() ErrorCode

	// Op returns the operation that failed (e.g. "copy", "move", "remove").
	Op() string

	// Path returns the primary path of the operation (the source for
	// two-path operations).
	Path() string

	// Dest returns the destination path, or "" for single-path operations.
	Dest() string

	// Errno returns the symbolic name of the underlying OS error number
	// (e.g. "EXDEV"), or "" when the cause carries none.
	Errno() string

	// Message returns the human-readable error message.
	Message() string

	// Context returns the structured fields as a map.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error for errors.Is and errors.As compatibility.
	// Returns nil if this error does not wrap another error.
	Unwrap() error
}
