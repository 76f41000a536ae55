//go:build darwin || freebsd || netbsd

package fsx

import (
	"io/fs"
	"syscall"
	"time"
)

// atime returns the access time recorded in info, or its modification time
// when the backend does not report one.
func atime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atimespec.Unix())
	}
	return info.ModTime()
}
