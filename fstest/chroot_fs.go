package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsx/core"
)

// TestChrootFSWithConfig tests scoped filesystem views. Skips if the
// filesystem doesn't implement core.ChrootFS.
func TestChrootFSWithConfig(t *testing.T, filesystem core.FS, _ FSTestConfig) {
	cfs, ok := filesystem.(core.ChrootFS)
	if !ok {
		t.Skip("ChrootFS not supported")
	}

	mustWrite(t, filesystem, "chroot-dir/inside.txt", "inside content")
	mustWrite(t, filesystem, "outside.txt", "outside content")

	chrootFS, err := cfs.Chroot("chroot-dir")
	if err != nil {
		t.Fatalf("Chroot(chroot-dir): got error %v, want nil", err)
	}

	t.Run("ReadInside", func(t *testing.T) {
		expectContent(t, chrootFS, "inside.txt", "inside content")
		expectContent(t, chrootFS, "/inside.txt", "inside content")
	})

	t.Run("OutsideInvisible", func(t *testing.T) {
		if _, err := chrootFS.ReadFile("outside.txt"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("chrootFS.ReadFile(outside.txt): got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("WriteStaysInside", func(t *testing.T) {
		if err := chrootFS.WriteFile("new-inside.txt", []byte("new"), 0o644); err != nil {
			t.Fatalf("chrootFS.WriteFile(new-inside.txt): got error %v, want nil", err)
		}
		expectContent(t, filesystem, "chroot-dir/new-inside.txt", "new")
	})

	t.Run("RenameInside", func(t *testing.T) {
		mustWrite(t, chrootFS, "ren.txt", "r")
		if err := chrootFS.Rename("ren.txt", "ren2.txt"); err != nil {
			t.Fatalf("chrootFS.Rename(ren.txt, ren2.txt): got error %v, want nil", err)
		}
		expectContent(t, filesystem, "chroot-dir/ren2.txt", "r")
	})
}
