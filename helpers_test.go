package fsx_test

import (
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsx/billy"
	"github.com/jmgilman/go/fsx/core"
)

// backend builds a fresh filesystem for one test.
type backend struct {
	name  string
	newFS func(t *testing.T) core.FS
}

func backends() []backend {
	return []backend{
		{
			name: "Local",
			newFS: func(t *testing.T) core.FS {
				return billy.NewLocal(billy.WithRoot(t.TempDir()))
			},
		},
		{
			name: "Memory",
			newFS: func(*testing.T) core.FS {
				return billy.NewMemory()
			},
		},
	}
}

// forEachBackend runs fn once per backend as a subtest.
func forEachBackend(t *testing.T, fn func(t *testing.T, fsys core.FS)) {
	t.Helper()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.newFS(t))
		})
	}
}

func writeFile(t *testing.T, fsys core.FS, name, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(path.Dir(name), 0o755))
	require.NoError(t, fsys.WriteFile(name, []byte(content), 0o644))
}

func mkdir(t *testing.T, fsys core.FS, name string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(name, 0o755))
}

func symlink(t *testing.T, fsys core.FS, target, name string) {
	t.Helper()
	lfs, ok := fsys.(core.LinkFS)
	require.True(t, ok, "filesystem does not support symbolic links")
	require.NoError(t, fsys.MkdirAll(path.Dir(name), 0o755))
	require.NoError(t, lfs.Symlink(target, name))
}

func readFile(t *testing.T, fsys core.FS, name string) string {
	t.Helper()
	data, err := fsys.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

func lstat(t *testing.T, fsys core.FS, name string) fs.FileInfo {
	t.Helper()
	info, err := fsys.(core.LinkFS).Lstat(name)
	require.NoError(t, err)
	return info
}

func exists(t *testing.T, fsys core.FS, name string) bool {
	t.Helper()
	if lfs, ok := fsys.(core.LinkFS); ok {
		_, err := lfs.Lstat(name)
		return err == nil
	}
	ok, err := fsys.Exists(name)
	require.NoError(t, err)
	return ok
}

func readDirNames(t *testing.T, fsys core.FS, name string) []string {
	t.Helper()
	entries, err := fsys.ReadDir(name)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// buildTree creates a small project layout under root and returns the
// number of files and directories below it.
func buildTree(t *testing.T, fsys core.FS, root string) (files, dirs int) {
	t.Helper()
	mkdir(t, fsys, root)
	writeFile(t, fsys, root+"/README.md", "# project\n")
	writeFile(t, fsys, root+"/go.mod", "module example.com/project\n")
	writeFile(t, fsys, root+"/cmd/app/main.go", "package main\n")
	writeFile(t, fsys, root+"/internal/store/store.go", "package store\n")
	writeFile(t, fsys, root+"/internal/store/store_test.go", "package store\n")
	writeFile(t, fsys, root+"/testdata/blob.bin", string([]byte{0, 1, 2, 3, 255}))
	mkdir(t, fsys, root+"/empty")
	return 6, 6
}

// anonymousFS hides entry identity, the way backends whose file infos carry
// no device or inode numbers do. With fold set, names are matched without
// regard to letter case.
type anonymousFS struct {
	*billy.MemoryFS
	fold bool
}

type anonymousInfo struct{ fs.FileInfo }

func (anonymousInfo) Sys() any { return nil }

func (a *anonymousFS) name(n string) string {
	if a.fold {
		return strings.ToLower(n)
	}
	return n
}

func (a *anonymousFS) Stat(name string) (fs.FileInfo, error) {
	info, err := a.MemoryFS.Stat(a.name(name))
	if err != nil {
		return nil, err
	}
	return anonymousInfo{info}, nil
}

func (a *anonymousFS) Lstat(name string) (fs.FileInfo, error) {
	info, err := a.MemoryFS.Lstat(a.name(name))
	if err != nil {
		return nil, err
	}
	return anonymousInfo{info}, nil
}

func (a *anonymousFS) Exists(name string) (bool, error) {
	return a.MemoryFS.Exists(a.name(name))
}

func (a *anonymousFS) Open(name string) (fs.File, error) {
	return a.MemoryFS.Open(a.name(name))
}

func (a *anonymousFS) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	return a.MemoryFS.OpenFile(a.name(name), flag, perm)
}

func (a *anonymousFS) Remove(name string) error {
	return a.MemoryFS.Remove(a.name(name))
}

func (a *anonymousFS) Rename(oldpath, newpath string) error {
	return a.MemoryFS.Rename(a.name(oldpath), a.name(newpath))
}

// foldingPaths is a slash path API for case-insensitive names.
type foldingPaths struct{ core.PathAPI }

func (foldingPaths) CaseInsensitive() bool { return true }
