//go:build !(linux || openbsd || dragonfly || solaris || darwin || freebsd || netbsd || windows)

package fsx

import (
	"io/fs"
	"time"
)

func atime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
