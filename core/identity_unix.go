//go:build unix

package core

import "syscall"

// sysID reads device and inode numbers from a stat(2) result.
func sysID(sys any) (FileID, bool) {
	st, ok := sys.(*syscall.Stat_t)
	if !ok {
		return FileID{}, false
	}
	//nolint:unconvert // Dev is int32 on darwin and uint64 on linux
	return FileID{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, true
}
