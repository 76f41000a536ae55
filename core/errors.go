package core

import (
	"errors"
	"io/fs"
)

// Sentinel errors shared by every provider. The first three alias io/fs so
// errors.Is matches errors from the os package as well.
var (
	ErrNotExist   = fs.ErrNotExist
	ErrExist      = fs.ErrExist
	ErrPermission = fs.ErrPermission

	// ErrUnsupported reports that a provider lacks a capability it
	// advertises through its method set. Callers treat it as if the
	// capability were absent.
	ErrUnsupported = errors.New("operation not supported")
)
