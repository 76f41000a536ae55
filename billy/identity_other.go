//go:build !windows

package billy

import "io/fs"

// identify returns info unchanged; stat(2) results already carry device and
// inode numbers.
func identify(_ string, info fs.FileInfo, _ bool) fs.FileInfo {
	return info
}
