//go:build unix

package errors

import (
	stderrors "errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// errnoName returns the symbolic name of the errno in err's chain.
func errnoName(err error) string {
	var errno syscall.Errno
	if !stderrors.As(err, &errno) {
		return ""
	}
	return unix.ErrnoName(errno)
}

func isCrossDevice(err error) bool {
	return stderrors.Is(err, unix.EXDEV)
}
