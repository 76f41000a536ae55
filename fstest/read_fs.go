package fstest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsx/core"
)

// TestReadFSWithConfig tests read-only operations: Open, Stat, ReadDir,
// ReadFile and Exists.
func TestReadFSWithConfig(t *testing.T, filesystem core.FS, _ FSTestConfig) {
	content := []byte("test file content")
	if err := filesystem.MkdirAll("testdir/sub", 0o755); err != nil {
		t.Fatalf("MkdirAll(testdir/sub): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("testdir/testfile.txt", content, 0o644); err != nil {
		t.Fatalf("WriteFile(testdir/testfile.txt): setup failed: %v", err)
	}

	t.Run("Open", func(t *testing.T) {
		f, err := filesystem.Open("testdir/testfile.txt")
		if err != nil {
			t.Fatalf("Open(testdir/testfile.txt): got error %v, want nil", err)
		}
		defer func() { _ = f.Close() }()

		data, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("ReadAll(): got error %v, want nil", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("Open(testdir/testfile.txt): got %q, want %q", data, content)
		}

		info, err := f.Stat()
		if err != nil {
			t.Fatalf("File.Stat(): got error %v, want nil", err)
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("File.Stat().Size(): got %d, want %d", info.Size(), len(content))
		}
	})

	t.Run("Stat", func(t *testing.T) {
		info, err := filesystem.Stat("testdir/testfile.txt")
		if err != nil {
			t.Fatalf("Stat(testdir/testfile.txt): got error %v, want nil", err)
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			t.Errorf("Stat(testdir/testfile.txt): mode %v, want regular file", info.Mode())
		}

		info, err = filesystem.Stat("testdir")
		if err != nil {
			t.Fatalf("Stat(testdir): got error %v, want nil", err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(testdir): IsDir() = false, want true")
		}
	})

	t.Run("StatNotExist", func(t *testing.T) {
		_, err := filesystem.Stat("testdir/missing")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(testdir/missing): got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("ReadDir", func(t *testing.T) {
		entries, err := filesystem.ReadDir("testdir")
		if err != nil {
			t.Fatalf("ReadDir(testdir): got error %v, want nil", err)
		}
		got := map[string]bool{}
		for _, e := range entries {
			got[e.Name()] = e.IsDir()
		}
		want := map[string]bool{"sub": true, "testfile.txt": false}
		if len(got) != len(want) {
			t.Fatalf("ReadDir(testdir): got %v, want %v", got, want)
		}
		for name, isDir := range want {
			if d, ok := got[name]; !ok || d != isDir {
				t.Errorf("ReadDir(testdir): entry %q isDir=%v present=%v, want isDir=%v", name, d, ok, isDir)
			}
		}
	})

	t.Run("ReadFile", func(t *testing.T) {
		data, err := filesystem.ReadFile("testdir/testfile.txt")
		if err != nil {
			t.Fatalf("ReadFile(testdir/testfile.txt): got error %v, want nil", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("ReadFile(testdir/testfile.txt): got %q, want %q", data, content)
		}
	})

	t.Run("Exists", func(t *testing.T) {
		for name, want := range map[string]bool{
			"testdir":              true,
			"testdir/testfile.txt": true,
			"testdir/missing":      false,
		} {
			got, err := filesystem.Exists(name)
			if err != nil {
				t.Errorf("Exists(%s): got error %v, want nil", name, err)
				continue
			}
			if got != want {
				t.Errorf("Exists(%s): got %v, want %v", name, got, want)
			}
		}
	})
}
