package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsx/core"
)

// TestManageFSWithConfig tests file management: Remove, Rename and, when
// supported, RemoveAll.
func TestManageFSWithConfig(t *testing.T, filesystem core.FS, _ FSTestConfig) {
	t.Run("RemoveFile", func(t *testing.T) {
		mustWrite(t, filesystem, "rm-file.txt", "x")
		if err := filesystem.Remove("rm-file.txt"); err != nil {
			t.Fatalf("Remove(rm-file.txt): got error %v, want nil", err)
		}
		if _, err := filesystem.Stat("rm-file.txt"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(rm-file.txt) after Remove: got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("RemoveEmptyDirectory", func(t *testing.T) {
		if err := filesystem.Mkdir("rm-empty", 0o755); err != nil {
			t.Fatalf("Mkdir(rm-empty): setup failed: %v", err)
		}
		if err := filesystem.Remove("rm-empty"); err != nil {
			t.Fatalf("Remove(rm-empty): got error %v, want nil", err)
		}
	})

	t.Run("RemoveNonEmptyDirectory", func(t *testing.T) {
		mustWrite(t, filesystem, "rm-full/child.txt", "x")
		if err := filesystem.Remove("rm-full"); err == nil {
			t.Errorf("Remove(rm-full): got nil error, want failure for non-empty directory")
		}
		if ok, _ := filesystem.Exists("rm-full/child.txt"); !ok {
			t.Errorf("Remove(rm-full): child was removed")
		}
	})

	t.Run("RemoveNotExist", func(t *testing.T) {
		if err := filesystem.Remove("rm-missing"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(rm-missing): got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("RemoveAll", func(t *testing.T) {
		rfs, ok := filesystem.(core.RemoveAllFS)
		if !ok {
			t.Skip("RemoveAllFS not supported")
		}
		mustWrite(t, filesystem, "tree/a/b/file.txt", "x")
		mustWrite(t, filesystem, "tree/c.txt", "y")
		if err := rfs.RemoveAll("tree"); err != nil {
			t.Fatalf("RemoveAll(tree): got error %v, want nil", err)
		}
		if ok, _ := filesystem.Exists("tree"); ok {
			t.Errorf("Exists(tree) after RemoveAll: got true, want false")
		}
		if err := rfs.RemoveAll("tree"); err != nil {
			t.Errorf("RemoveAll(tree) on missing path: got error %v, want nil", err)
		}
	})

	t.Run("RenameFile", func(t *testing.T) {
		mustWrite(t, filesystem, "mv-src.txt", "content")
		if err := filesystem.Rename("mv-src.txt", "mv-dst.txt"); err != nil {
			t.Fatalf("Rename(mv-src.txt, mv-dst.txt): got error %v, want nil", err)
		}
		expectContent(t, filesystem, "mv-dst.txt", "content")
		if ok, _ := filesystem.Exists("mv-src.txt"); ok {
			t.Errorf("Exists(mv-src.txt) after Rename: got true, want false")
		}
	})

	t.Run("RenameOverFile", func(t *testing.T) {
		mustWrite(t, filesystem, "over-src.txt", "new")
		mustWrite(t, filesystem, "over-dst.txt", "old")
		if err := filesystem.Rename("over-src.txt", "over-dst.txt"); err != nil {
			t.Fatalf("Rename(over-src.txt, over-dst.txt): got error %v, want nil", err)
		}
		expectContent(t, filesystem, "over-dst.txt", "new")
	})

	t.Run("RenameDirectory", func(t *testing.T) {
		mustWrite(t, filesystem, "mv-dir/nested/file.txt", "nested")
		if err := filesystem.Rename("mv-dir", "mv-dir-new"); err != nil {
			t.Fatalf("Rename(mv-dir, mv-dir-new): got error %v, want nil", err)
		}
		expectContent(t, filesystem, "mv-dir-new/nested/file.txt", "nested")
		if ok, _ := filesystem.Exists("mv-dir"); ok {
			t.Errorf("Exists(mv-dir) after Rename: got true, want false")
		}
	})

	t.Run("RenameLeavesPrefixSiblings", func(t *testing.T) {
		mustWrite(t, filesystem, "sib/a/file.txt", "a")
		mustWrite(t, filesystem, "sib/ab/file.txt", "ab")
		if err := filesystem.Rename("sib/a", "sib/z"); err != nil {
			t.Fatalf("Rename(sib/a, sib/z): got error %v, want nil", err)
		}
		expectContent(t, filesystem, "sib/z/file.txt", "a")
		expectContent(t, filesystem, "sib/ab/file.txt", "ab")
	})

	t.Run("RenameNotExist", func(t *testing.T) {
		if err := filesystem.Rename("mv-missing", "mv-anywhere"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Rename(mv-missing): got error %v, want fs.ErrNotExist", err)
		}
	})
}

func mustWrite(t *testing.T, filesystem core.FS, name, content string) {
	t.Helper()
	if dir := dirOf(name); dir != "" {
		if err := filesystem.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): setup failed: %v", dir, err)
		}
	}
	if err := filesystem.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
	}
}

func expectContent(t *testing.T, filesystem core.FS, name, want string) {
	t.Helper()
	data, err := filesystem.ReadFile(name)
	if err != nil {
		t.Errorf("ReadFile(%s): got error %v, want nil", name, err)
		return
	}
	if string(data) != want {
		t.Errorf("ReadFile(%s): got %q, want %q", name, data, want)
	}
}

// dirOf returns the slash-separated parent of name, or "" at the top level.
func dirOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[:i]
		}
	}
	return ""
}
