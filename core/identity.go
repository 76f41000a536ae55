package core

import (
	"fmt"
	"io/fs"
)

// FileID identifies a filesystem entry by device and inode number.
// Both fields are 64 bits wide so no identity information is lost.
type FileID struct {
	Dev uint64
	Ino uint64
}

// String returns the identity as "dev:ino".
func (id FileID) String() string {
	return fmt.Sprintf("%d:%d", id.Dev, id.Ino)
}

// Identifier is implemented by values returned from fs.FileInfo.Sys() of
// backends that track entry identity themselves.
type Identifier interface {
	FileID() FileID
}

// IDOf extracts the identity of the entry described by info.
// It returns false when the backend does not expose identity.
func IDOf(info fs.FileInfo) (FileID, bool) {
	if info == nil {
		return FileID{}, false
	}
	sys := info.Sys()
	if sys == nil {
		return FileID{}, false
	}
	if ider, ok := sys.(Identifier); ok {
		return ider.FileID(), true
	}
	return sysID(sys)
}
