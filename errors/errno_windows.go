//go:build windows

package errors

import (
	stderrors "errors"
	"syscall"

	"golang.org/x/sys/windows"
)

func errnoName(err error) string {
	var errno syscall.Errno
	if !stderrors.As(err, &errno) {
		return ""
	}
	if errno == windows.ERROR_NOT_SAME_DEVICE {
		return "ERROR_NOT_SAME_DEVICE"
	}
	return ""
}

func isCrossDevice(err error) bool {
	return stderrors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
