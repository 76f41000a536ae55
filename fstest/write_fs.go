package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/jmgilman/go/fsx/core"
)

// TestWriteFSWithConfig tests write operations: Create, OpenFile, WriteFile,
// Mkdir and MkdirAll.
func TestWriteFSWithConfig(t *testing.T, filesystem core.FS, _ FSTestConfig) {
	t.Run("CreateAndWrite", func(t *testing.T) {
		f, err := filesystem.Create("created.txt")
		if err != nil {
			t.Fatalf("Create(created.txt): got error %v, want nil", err)
		}
		if _, err := f.Write([]byte("hello")); err != nil {
			t.Fatalf("Write(): got error %v, want nil", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}
		data, err := filesystem.ReadFile("created.txt")
		if err != nil || string(data) != "hello" {
			t.Errorf("ReadFile(created.txt): got %q, %v, want %q", data, err, "hello")
		}
	})

	t.Run("WriteFileTruncates", func(t *testing.T) {
		if err := filesystem.WriteFile("trunc.txt", []byte("long content"), 0o644); err != nil {
			t.Fatalf("WriteFile(trunc.txt): setup failed: %v", err)
		}
		if err := filesystem.WriteFile("trunc.txt", []byte("short"), 0o644); err != nil {
			t.Fatalf("WriteFile(trunc.txt): got error %v, want nil", err)
		}
		data, _ := filesystem.ReadFile("trunc.txt")
		if !bytes.Equal(data, []byte("short")) {
			t.Errorf("ReadFile(trunc.txt): got %q, want %q", data, "short")
		}
	})

	t.Run("OpenFileExclusive", func(t *testing.T) {
		if err := filesystem.WriteFile("excl.txt", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(excl.txt): setup failed: %v", err)
		}
		_, err := filesystem.OpenFile("excl.txt", os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("OpenFile(excl.txt, O_EXCL): got error %v, want fs.ErrExist", err)
		}
	})

	t.Run("Mkdir", func(t *testing.T) {
		if err := filesystem.Mkdir("single", 0o755); err != nil {
			t.Fatalf("Mkdir(single): got error %v, want nil", err)
		}
		if err := filesystem.Mkdir("single", 0o755); !errors.Is(err, fs.ErrExist) {
			t.Errorf("Mkdir(single) twice: got error %v, want fs.ErrExist", err)
		}
		if err := filesystem.Mkdir("missing/child", 0o755); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Mkdir(missing/child): got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("MkdirAll", func(t *testing.T) {
		if err := filesystem.MkdirAll("deep/a/b/c", 0o755); err != nil {
			t.Fatalf("MkdirAll(deep/a/b/c): got error %v, want nil", err)
		}
		if err := filesystem.MkdirAll("deep/a/b/c", 0o755); err != nil {
			t.Errorf("MkdirAll(deep/a/b/c) twice: got error %v, want nil", err)
		}
		info, err := filesystem.Stat("deep/a/b/c")
		if err != nil || !info.IsDir() {
			t.Errorf("Stat(deep/a/b/c): got %v, %v, want directory", info, err)
		}
	})

	t.Run("MkdirAllOverFile", func(t *testing.T) {
		if err := filesystem.WriteFile("plain", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(plain): setup failed: %v", err)
		}
		if err := filesystem.MkdirAll("plain/sub", 0o755); err == nil {
			t.Errorf("MkdirAll(plain/sub): got nil error, want failure")
		}
	})
}
