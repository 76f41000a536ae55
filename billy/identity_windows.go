package billy

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	"github.com/jmgilman/go/fsx/core"
)

// winSys is the Sys value of LocalFS file infos on Windows. os.Stat reports
// no file index, so the volume serial number and file index are read from
// an open handle.
type winSys struct {
	id   core.FileID
	attr *syscall.Win32FileAttributeData
}

// FileID implements core.Identifier.
func (s *winSys) FileID() core.FileID { return s.id }

// AccessTime returns the last access time reported by os.Stat.
func (s *winSys) AccessTime() time.Time {
	return time.Unix(0, s.attr.LastAccessTime.Nanoseconds())
}

type winInfo struct {
	fs.FileInfo
	sys *winSys
}

func (i *winInfo) Sys() any { return i.sys }

// identify attaches the identity of the entry at host to info. Without
// follow, a final symbolic link is described rather than its target. info
// is returned unchanged when the entry cannot be opened.
func identify(host string, info fs.FileInfo, follow bool) fs.FileInfo {
	attr, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info
	}
	name, err := windows.UTF16PtrFromString(host)
	if err != nil {
		return info
	}

	flags := uint32(windows.FILE_FLAG_BACKUP_SEMANTICS)
	if !follow {
		flags |= windows.FILE_FLAG_OPEN_REPARSE_POINT
	}
	h, err := windows.CreateFile(name, 0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil, windows.OPEN_EXISTING, flags, 0)
	if err != nil {
		return info
	}
	defer func() { _ = windows.CloseHandle(h) }()

	var d windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &d); err != nil {
		return info
	}
	id := core.FileID{
		Dev: uint64(d.VolumeSerialNumber),
		Ino: uint64(d.FileIndexHigh)<<32 | uint64(d.FileIndexLow),
	}
	return &winInfo{FileInfo: info, sys: &winSys{id: id, attr: attr}}
}
