//go:build windows

package fstest

import "golang.org/x/sys/windows"

func crossDeviceErrno() error { return windows.ERROR_NOT_SAME_DEVICE }
