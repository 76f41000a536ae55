//go:build !unix && !windows

package fstest

import "errors"

func crossDeviceErrno() error { return errors.New("cross-device link") }
