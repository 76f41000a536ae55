// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps a chrooted osfs and supports every optional capability in
// core: symbolic links, mode and timestamp changes, native recursive
// removal, and scoped views. File infos carry the host stat structure, so
// core.IDOf reports device and inode numbers.
//
// MemoryFS wraps memfs. It supports symbolic links and scoped views but not
// mode or timestamp changes. memfs has no notion of identity, so MemoryFS
// assigns every entry a stable inode number that follows it across renames.
//
// Usage:
//
//	// Host filesystem, relative names resolve against the working directory
//	local := billy.NewLocal()
//
//	// Host filesystem confined to a directory
//	sandbox := billy.NewLocal(billy.WithRoot("/srv/data"))
//
//	// In-memory filesystem for tests
//	mem := billy.NewMemory()
//	err := mem.WriteFile("/a.txt", []byte("data"), 0o644)
//
// Both types expose Unwrap for callers that need the billy.Filesystem
// itself, for example to hand it to go-git.
//
// # Thread Safety
//
// LocalFS and MemoryFS are safe for concurrent use by multiple goroutines.
// File handles are not safe for concurrent use.
package billy
