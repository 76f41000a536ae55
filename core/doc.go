// Package core provides the capability interfaces consumed by the fsx
// copy, move and remove operations.
//
// Operations never talk to the operating system directly. They receive an
// FS (and a PathAPI describing how its names are split and resolved) so
// that alternate backends, such as in-memory or sandboxed filesystems, can
// be substituted by implementing the interfaces.
//
// # Design Philosophy
//
//   - Zero dependencies: Only uses Go standard library
//   - Interface composition: Small focused interfaces compose into larger contracts
//   - Stdlib compatibility: Extends fs.FS and fs.File rather than replacing them
//   - Optional capabilities: Use type assertions for provider-specific features
//
// # Interface Hierarchy
//
// The main FS interface is composed of three sub-interfaces:
//
//   - ReadFS: Read-only operations (Open, Stat, ReadDir, ReadFile, Exists)
//   - WriteFS: Write operations (Create, OpenFile, WriteFile, Mkdir, MkdirAll)
//   - ManageFS: File management (Remove, Rename)
//
// Optional interfaces for provider-specific capabilities:
//
//   - LinkFS: Symbolic links (Lstat, Symlink, Readlink)
//   - MetadataFS: Metadata operations (Chmod, Chtimes)
//   - RemoveAllFS: Native recursive removal (RemoveAll)
//   - PathFS: The path flavour used by the provider (Paths)
//   - ChrootFS: Scoped filesystem views (Chroot)
//
// # Entry Identity
//
// Two names refer to the same entry when their device and inode numbers
// match. IDOf extracts a FileID from an fs.FileInfo, reading *syscall.Stat_t
// on unix systems or any Sys() value implementing Identifier (billy.LocalFS
// provides one on Windows):
//
//	a, aok := core.IDOf(srcInfo)
//	b, bok := core.IDOf(destInfo)
//	same := aok && bok && a == b
//
// # Provider Implementations
//
// Concrete implementations live in separate packages:
//
//   - github.com/jmgilman/go/fsx/billy - go-billy-backed local and memory providers
package core
