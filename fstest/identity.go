package fstest

import (
	"testing"

	"github.com/jmgilman/go/fsx/core"
)

// TestIdentityWithConfig tests that file infos report stable, distinct
// identities through core.IDOf. Skips when config.NoIdentity is set.
func TestIdentityWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	if config.NoIdentity {
		t.Skip("identity not reported by provider")
	}

	mustWrite(t, filesystem, "id/a.txt", "a")
	mustWrite(t, filesystem, "id/b.txt", "b")

	idOf := func(name string) core.FileID {
		t.Helper()
		info, err := filesystem.Stat(name)
		if err != nil {
			t.Fatalf("Stat(%s): got error %v, want nil", name, err)
		}
		id, ok := core.IDOf(info)
		if !ok {
			t.Fatalf("IDOf(Stat(%s)): no identity reported", name)
		}
		return id
	}

	t.Run("Stable", func(t *testing.T) {
		if idOf("id/a.txt") != idOf("id/a.txt") {
			t.Errorf("Stat(id/a.txt): identity changed between calls")
		}
	})

	t.Run("Distinct", func(t *testing.T) {
		if idOf("id/a.txt") == idOf("id/b.txt") {
			t.Errorf("Stat(id/a.txt) and Stat(id/b.txt): identities are equal")
		}
	})

	t.Run("FollowsRename", func(t *testing.T) {
		mustWrite(t, filesystem, "id/moving.txt", "m")
		before := idOf("id/moving.txt")
		if err := filesystem.Rename("id/moving.txt", "id/moved.txt"); err != nil {
			t.Fatalf("Rename(id/moving.txt, id/moved.txt): got error %v, want nil", err)
		}
		if after := idOf("id/moved.txt"); after != before {
			t.Errorf("identity after Rename: got %v, want %v", after, before)
		}
	})

	t.Run("SharedThroughLink", func(t *testing.T) {
		lfs, ok := filesystem.(core.LinkFS)
		if !ok {
			t.Skip("LinkFS not supported")
		}
		if err := lfs.Symlink("a.txt", "id/alias"); err != nil {
			t.Fatalf("Symlink(a.txt, id/alias): setup failed: %v", err)
		}
		if idOf("id/alias") != idOf("id/a.txt") {
			t.Errorf("Stat(id/alias): identity differs from its target")
		}
	})
}
