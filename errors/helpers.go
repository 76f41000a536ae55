package errors

import (
	stderrors "errors"
	"io/fs"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
//
// Example:
//
//	var opErr errors.OpError
//	if errors.As(err, &opErr) {
//	    log.Printf("%s failed on %s", opErr.Op(), opErr.Path())
//	}
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from an error.
// Returns CodeUnknown if the error is nil or not an OpError.
//
// The code of the outermost OpError in the chain wins.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var opErr OpError
	if stderrors.As(err, &opErr) {
		return opErr.Code()
	}

	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsCrossDevice reports whether err is a rename failure caused by the source
// and destination living on different filesystems. Both OpErrors and raw
// filesystem errors are recognized.
func IsCrossDevice(err error) bool {
	if err == nil {
		return false
	}
	return GetCode(err) == CodeCrossDevice || isCrossDevice(err)
}

// IsNotExist reports whether err indicates a missing entry.
func IsNotExist(err error) bool {
	if err == nil {
		return false
	}
	return GetCode(err) == CodeNotFound || stderrors.Is(err, fs.ErrNotExist)
}
