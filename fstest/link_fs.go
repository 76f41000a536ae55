package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsx/core"
)

// TestLinkFSWithConfig tests symbolic link operations (Lstat, Symlink,
// Readlink). Skips if the filesystem doesn't implement core.LinkFS.
func TestLinkFSWithConfig(t *testing.T, filesystem core.FS, _ FSTestConfig) {
	lfs, ok := filesystem.(core.LinkFS)
	if !ok {
		t.Skip("LinkFS not supported")
	}
	if _, err := lfs.Lstat("."); errors.Is(err, core.ErrUnsupported) {
		t.Skip("LinkFS not supported by wrapped filesystem")
	}

	mustWrite(t, filesystem, "target.txt", "target content")

	t.Run("SymlinkAndReadlink", func(t *testing.T) {
		if err := lfs.Symlink("target.txt", "link.txt"); err != nil {
			t.Fatalf("Symlink(target.txt, link.txt): got error %v, want nil", err)
		}
		target, err := lfs.Readlink("link.txt")
		if err != nil {
			t.Fatalf("Readlink(link.txt): got error %v, want nil", err)
		}
		if target != "target.txt" {
			t.Errorf("Readlink(link.txt): got %q, want %q", target, "target.txt")
		}
		expectContent(t, filesystem, "link.txt", "target content")
	})

	t.Run("LstatDoesNotFollow", func(t *testing.T) {
		if err := lfs.Symlink("target.txt", "lstat-link"); err != nil {
			t.Fatalf("Symlink(target.txt, lstat-link): setup failed: %v", err)
		}
		info, err := lfs.Lstat("lstat-link")
		if err != nil {
			t.Fatalf("Lstat(lstat-link): got error %v, want nil", err)
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			t.Errorf("Lstat(lstat-link): mode %v, want symlink", info.Mode())
		}
		info, err = filesystem.Stat("lstat-link")
		if err != nil {
			t.Fatalf("Stat(lstat-link): got error %v, want nil", err)
		}
		if !info.Mode().IsRegular() {
			t.Errorf("Stat(lstat-link): mode %v, want regular file", info.Mode())
		}
	})

	t.Run("ReadDirReportsLinks", func(t *testing.T) {
		mustWrite(t, filesystem, "linkdir/real.txt", "x")
		if err := lfs.Symlink("real.txt", "linkdir/alias"); err != nil {
			t.Fatalf("Symlink(real.txt, linkdir/alias): setup failed: %v", err)
		}
		entries, err := filesystem.ReadDir("linkdir")
		if err != nil {
			t.Fatalf("ReadDir(linkdir): got error %v, want nil", err)
		}
		for _, e := range entries {
			if e.Name() == "alias" && e.Type()&fs.ModeSymlink == 0 {
				t.Errorf("ReadDir(linkdir): alias type %v, want symlink", e.Type())
			}
		}
	})

	t.Run("DanglingLink", func(t *testing.T) {
		if err := lfs.Symlink("nowhere", "dangling"); err != nil {
			t.Fatalf("Symlink(nowhere, dangling): got error %v, want nil", err)
		}
		if _, err := filesystem.Stat("dangling"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(dangling): got error %v, want fs.ErrNotExist", err)
		}
		if _, err := lfs.Lstat("dangling"); err != nil {
			t.Errorf("Lstat(dangling): got error %v, want nil", err)
		}
	})

	t.Run("SymlinkExists", func(t *testing.T) {
		if err := lfs.Symlink("target.txt", "target.txt"); !errors.Is(err, fs.ErrExist) {
			t.Errorf("Symlink over existing entry: got error %v, want fs.ErrExist", err)
		}
	})

	t.Run("ReadlinkNotLink", func(t *testing.T) {
		if _, err := lfs.Readlink("target.txt"); err == nil {
			t.Errorf("Readlink(target.txt): got nil error, want failure for regular file")
		}
	})

	t.Run("RemoveLinkKeepsTarget", func(t *testing.T) {
		mustWrite(t, filesystem, "keep/inner.txt", "inner")
		if err := lfs.Symlink("keep", "keep-link"); err != nil {
			t.Fatalf("Symlink(keep, keep-link): setup failed: %v", err)
		}
		if err := filesystem.Remove("keep-link"); err != nil {
			t.Fatalf("Remove(keep-link): got error %v, want nil", err)
		}
		expectContent(t, filesystem, "keep/inner.txt", "inner")
	})
}
