//go:build !unix

package core

// sysID reports no identity on platforms without stat(2) inode numbers.
func sysID(any) (FileID, bool) {
	return FileID{}, false
}
