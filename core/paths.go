package core

import (
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// PathAPI is the path-string capability consumed alongside FS.
// Implementations decide the separator and how relative paths are resolved.
type PathAPI interface {
	// Dir returns all but the last element of p.
	Dir(p string) string

	// Base returns the last element of p.
	Base(p string) string

	// Join joins any number of path elements into a single path.
	Join(elem ...string) string

	// Resolve returns an absolute, cleaned representation of p.
	Resolve(p string) (string, error)

	// IsAbs reports whether p is absolute.
	IsAbs(p string) bool

	// Root returns the root of an absolute path ("/" or a volume root such
	// as `C:\`). It returns "" for relative paths.
	Root(p string) string

	// Separator returns the path separator.
	Separator() byte
}

// CaseFolder is implemented by path APIs that can tell whether names
// differing only in letter case refer to the same entry.
type CaseFolder interface {
	CaseInsensitive() bool
}

// IsCaseInsensitive reports whether p declares case-insensitive names.
func IsCaseInsensitive(p PathAPI) bool {
	cf, ok := p.(CaseFolder)
	return ok && cf.CaseInsensitive()
}

// OSPaths returns the path API of the host operating system. Relative paths
// resolve against the process working directory.
func OSPaths() PathAPI {
	return osPaths{}
}

// RootedPaths returns a slash-separated path API whose relative paths
// resolve against "/". It fits in-memory and chrooted filesystems.
func RootedPaths() PathAPI {
	return rootedPaths{}
}

type osPaths struct{}

func (osPaths) Dir(p string) string              { return filepath.Dir(p) }
func (osPaths) Base(p string) string             { return filepath.Base(p) }
func (osPaths) Join(elem ...string) string       { return filepath.Join(elem...) }
func (osPaths) Resolve(p string) (string, error) { return filepath.Abs(p) }
func (osPaths) IsAbs(p string) bool              { return filepath.IsAbs(p) }
func (osPaths) Separator() byte                  { return filepath.Separator }

// CaseInsensitive reports the default of the host: Windows and macOS
// volumes fold case unless formatted otherwise.
func (osPaths) CaseInsensitive() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

func (osPaths) Root(p string) string {
	vol := filepath.VolumeName(p)
	rest := p[len(vol):]
	if rest != "" && (rest[0] == filepath.Separator || rest[0] == '/') {
		return vol + string(filepath.Separator)
	}
	return vol
}

type rootedPaths struct{}

func (rootedPaths) Dir(p string) string        { return path.Dir(p) }
func (rootedPaths) Base(p string) string       { return path.Base(p) }
func (rootedPaths) Join(elem ...string) string { return path.Join(elem...) }
func (rootedPaths) IsAbs(p string) bool        { return path.IsAbs(p) }
func (rootedPaths) Separator() byte            { return '/' }

func (rootedPaths) Resolve(p string) (string, error) {
	if path.IsAbs(p) {
		return path.Clean(p), nil
	}
	return path.Join("/", p), nil
}

func (rootedPaths) Root(p string) string {
	if strings.HasPrefix(p, "/") {
		return "/"
	}
	return ""
}

// PathsFor returns the path API advertised by fsys, falling back to OSPaths.
func PathsFor(fsys FS) PathAPI {
	if pfs, ok := fsys.(PathFS); ok {
		if p := pfs.Paths(); p != nil {
			return p
		}
	}
	return OSPaths()
}
