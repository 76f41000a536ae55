package fsx

import (
	"io/fs"
	"syscall"
	"time"
)

func atime(info fs.FileInfo) time.Time {
	switch sys := info.Sys().(type) {
	case *syscall.Win32FileAttributeData:
		return time.Unix(0, sys.LastAccessTime.Nanoseconds())
	case interface{ AccessTime() time.Time }:
		return sys.AccessTime()
	}
	return info.ModTime()
}
