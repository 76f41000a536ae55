package fsx

import (
	"io/fs"
	"strings"

	"github.com/jmgilman/go/fsx/core"
)

// AreIdentical reports whether a and b describe the same filesystem entry.
// Both must expose a device and inode number; backends without identity
// never compare as identical.
func AreIdentical(a, b fs.FileInfo) bool {
	idA, ok := core.IDOf(a)
	if !ok {
		return false
	}
	idB, ok := core.IDOf(b)
	if !ok {
		return false
	}
	return idA == idB
}

// IsSubdirectory reports whether child lies at or below parent. The check
// is lexical: both paths are resolved to absolute form and compared segment
// by segment, without following symbolic links.
func IsSubdirectory(paths core.PathAPI, parent, child string) bool {
	p, err := paths.Resolve(parent)
	if err != nil {
		return false
	}
	c, err := paths.Resolve(child)
	if err != nil {
		return false
	}

	sep := paths.Separator()
	parentSegs := segments(p, sep)
	childSegs := segments(c, sep)
	if len(parentSegs) > len(childSegs) {
		return false
	}
	for i, seg := range parentSegs {
		if childSegs[i] != seg {
			return false
		}
	}
	return true
}

// segments splits p on sep, dropping empty segments.
func segments(p string, sep byte) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == rune(sep)
	})
}
