//go:build unix

package fstest

import "golang.org/x/sys/unix"

func crossDeviceErrno() error { return unix.EXDEV }
