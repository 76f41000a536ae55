package core_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jmgilman/go/fsx/core"
)

// fakeInfo is a minimal fs.FileInfo whose Sys value is configurable.
type fakeInfo struct {
	sys any
}

func (f fakeInfo) Name() string       { return "fake" }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() any           { return f.sys }

type idSys struct {
	id core.FileID
}

func (s idSys) FileID() core.FileID { return s.id }

// TestIDOf_Identifier verifies identity is read from Identifier Sys values.
func TestIDOf_Identifier(t *testing.T) {
	want := core.FileID{Dev: 7, Ino: 1 << 60}
	got, ok := core.IDOf(fakeInfo{sys: idSys{id: want}})
	if !ok {
		t.Fatal("IDOf() ok = false, want true")
	}
	if got != want {
		t.Errorf("IDOf() = %v, want %v", got, want)
	}
}

// TestIDOf_Missing verifies infos without identity report false.
func TestIDOf_Missing(t *testing.T) {
	tests := []struct {
		name string
		info fs.FileInfo
	}{
		{name: "NilInfo", info: nil},
		{name: "NilSys", info: fakeInfo{}},
		{name: "ForeignSys", info: fakeInfo{sys: "not a stat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := core.IDOf(tt.info); ok {
				t.Errorf("IDOf() ok = true, want false")
			}
		})
	}
}

// TestIDOf_HostFiles verifies stat results from the host carry identity.
func TestIDOf_HostFiles(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("host stat results carry no inode numbers")
	}

	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	if err := os.WriteFile(a, []byte("a"), 0o644); err != nil {
		t.Fatalf("WriteFile(a): %v", err)
	}
	if err := os.WriteFile(b, []byte("b"), 0o644); err != nil {
		t.Fatalf("WriteFile(b): %v", err)
	}
	if err := os.Link(a, filepath.Join(dir, "hard")); err != nil {
		t.Fatalf("Link(a, hard): %v", err)
	}

	idOf := func(name string) core.FileID {
		t.Helper()
		info, err := os.Lstat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Lstat(%s): %v", name, err)
		}
		id, ok := core.IDOf(info)
		if !ok {
			t.Fatalf("IDOf(%s) ok = false, want true", name)
		}
		return id
	}

	if idOf("a") == idOf("b") {
		t.Error("distinct files share an identity")
	}
	if idOf("a") != idOf("hard") {
		t.Error("hard link does not share the identity of its target")
	}
}

// TestFileID_String verifies the dev:ino rendering.
func TestFileID_String(t *testing.T) {
	id := core.FileID{Dev: 1, Ino: 18446744073709551615}
	if got, want := id.String(), "1:18446744073709551615"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
