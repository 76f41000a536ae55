package billy

import (
	"io"
	"testing"
)

// TestFile_Methods verifies File delegates to the billy file and reports
// the name it was opened with.
func TestFile_Methods(t *testing.T) {
	for name, fs := range map[string]func(t *testing.T) (*File, func()){
		"Local": func(t *testing.T) (*File, func()) {
			lfs := NewLocal(WithRoot(t.TempDir()))
			f, err := lfs.Create("file.txt")
			if err != nil {
				t.Fatalf("Create(file.txt): %v", err)
			}
			return f.(*File), func() { _ = f.Close() }
		},
		"Memory": func(t *testing.T) (*File, func()) {
			mfs := NewMemory()
			f, err := mfs.Create("file.txt")
			if err != nil {
				t.Fatalf("Create(file.txt): %v", err)
			}
			return f.(*File), func() { _ = f.Close() }
		},
	} {
		t.Run(name, func(t *testing.T) {
			f, done := fs(t)
			defer done()

			if f.Name() == "" {
				t.Error("Name() is empty")
			}

			if _, err := f.Write([]byte("hello world")); err != nil {
				t.Fatalf("Write(): %v", err)
			}
			if err := f.Sync(); err != nil {
				t.Errorf("Sync(): %v", err)
			}

			info, err := f.Stat()
			if err != nil {
				t.Fatalf("Stat(): %v", err)
			}
			if info.Size() != 11 {
				t.Errorf("Stat().Size() = %d, want 11", info.Size())
			}

			if _, err := f.Seek(6, io.SeekStart); err != nil {
				t.Fatalf("Seek(): %v", err)
			}
			data, err := io.ReadAll(f)
			if err != nil {
				t.Fatalf("ReadAll(): %v", err)
			}
			if string(data) != "world" {
				t.Errorf("read after Seek = %q, want %q", data, "world")
			}
		})
	}
}
