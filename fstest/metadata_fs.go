package fstest

import (
	"errors"
	"testing"
	"time"

	"github.com/jmgilman/go/fsx/core"
)

// TestMetadataFSWithConfig tests Chmod and Chtimes. Skips if the filesystem
// doesn't implement core.MetadataFS.
func TestMetadataFSWithConfig(t *testing.T, filesystem core.FS, _ FSTestConfig) {
	mfs, ok := filesystem.(core.MetadataFS)
	if !ok {
		t.Skip("MetadataFS not supported")
	}

	mustWrite(t, filesystem, "meta.txt", "x")
	if err := mfs.Chmod("meta.txt", 0o644); errors.Is(err, core.ErrUnsupported) {
		t.Skip("MetadataFS not supported by wrapped filesystem")
	}

	t.Run("Chmod", func(t *testing.T) {
		if err := mfs.Chmod("meta.txt", 0o600); err != nil {
			t.Fatalf("Chmod(meta.txt, 0600): got error %v, want nil", err)
		}
		info, err := filesystem.Stat("meta.txt")
		if err != nil {
			t.Fatalf("Stat(meta.txt): got error %v, want nil", err)
		}
		if got := info.Mode().Perm(); got != 0o600 {
			t.Errorf("Stat(meta.txt).Mode().Perm(): got %o, want %o", got, 0o600)
		}
	})

	t.Run("Chtimes", func(t *testing.T) {
		mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		if err := mfs.Chtimes("meta.txt", mtime, mtime); err != nil {
			t.Fatalf("Chtimes(meta.txt): got error %v, want nil", err)
		}
		info, err := filesystem.Stat("meta.txt")
		if err != nil {
			t.Fatalf("Stat(meta.txt): got error %v, want nil", err)
		}
		if !info.ModTime().Equal(mtime) {
			t.Errorf("Stat(meta.txt).ModTime(): got %v, want %v", info.ModTime(), mtime)
		}
	})
}
