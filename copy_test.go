package fsx_test

import (
	"context"
	stderrors "errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsx"
	"github.com/jmgilman/go/fsx/billy"
	"github.com/jmgilman/go/fsx/core"
	"github.com/jmgilman/go/fsx/errors"
	"github.com/jmgilman/go/fsx/fstest"
)

func TestCopy_Tree(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		files, dirs := buildTree(t, fsys, "/src")

		require.NoError(t, fsx.Copy(context.Background(), fsys, "/src", "/dest"))

		fstest.AssertSameTree(t, fsys, "/src", fsys, "/dest")

		tree, err := fstest.HashTree(fsys, "/dest")
		require.NoError(t, err)
		var gotFiles, gotDirs int
		for rel, digest := range tree {
			switch {
			case rel == ".":
			case strings.HasPrefix(digest, "file "):
				gotFiles++
			case strings.HasPrefix(digest, "dir "):
				gotDirs++
			}
		}
		assert.Equal(t, files, gotFiles)
		assert.Equal(t, dirs, gotDirs)
	})
}

func TestCopy_Sequential(t *testing.T) {
	fsys := billy.NewMemory()
	buildTree(t, fsys, "/src")

	ops := fsx.New(fsys, fsx.WithConcurrency(1))
	require.NoError(t, ops.Copy(context.Background(), "/src", "/dest"))

	fstest.AssertSameTree(t, fsys, "/src", fsys, "/dest")
}

func TestCopy_IntoExistingDirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		writeFile(t, fsys, "/src/a.txt", "new a")
		writeFile(t, fsys, "/dest/a.txt", "old a")
		writeFile(t, fsys, "/dest/keep.txt", "keep")

		require.NoError(t, fsx.Copy(context.Background(), fsys, "/src", "/dest"))

		assert.Equal(t, "new a", readFile(t, fsys, "/dest/a.txt"))
		assert.Equal(t, "keep", readFile(t, fsys, "/dest/keep.txt"))
	})
}

func TestCopy_CreatesParents(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		writeFile(t, fsys, "/src/file.txt", "content")

		require.NoError(t, fsx.Copy(context.Background(), fsys, "/src/file.txt", "/a/b/c/file.txt"))

		assert.Equal(t, "content", readFile(t, fsys, "/a/b/c/file.txt"))
	})
}

func TestCopy_SelfCopyRejected(t *testing.T) {
	tests := []struct {
		name string
		src  string
		dest string
	}{
		{name: "same path", src: "/src", dest: "/src"},
		{name: "existing subdirectory", src: "/src", dest: "/src/cmd"},
		{name: "new subdirectory", src: "/src", dest: "/src/cmd/app/copy"},
		{name: "trailing separator", src: "/src/", dest: "/src//nested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachBackend(t, func(t *testing.T, fsys core.FS) {
				buildTree(t, fsys, "/src")
				before, err := fstest.HashTree(fsys, "/src")
				require.NoError(t, err)

				err = fsx.Copy(context.Background(), fsys, tt.src, tt.dest)
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation), "got %v", err)

				after, err := fstest.HashTree(fsys, "/src")
				require.NoError(t, err)
				assert.Empty(t, before.Diff(after), "source tree was modified")
			})
		})
	}
}

// Without entry identity, the same name still means the same entry.
func TestCopy_SelfCopyWithoutIdentity(t *testing.T) {
	tests := []struct {
		name  string
		fold  bool
		setup func(t *testing.T, fsys core.FS)
		src   string
		dest  string
	}{
		{
			name:  "file",
			setup: func(t *testing.T, fsys core.FS) { writeFile(t, fsys, "/a.txt", "keep") },
			src:   "/a.txt",
			dest:  "/a.txt",
		},
		{
			name:  "file through other spelling",
			fold:  true,
			setup: func(t *testing.T, fsys core.FS) { writeFile(t, fsys, "/a.txt", "keep") },
			src:   "/a.txt",
			dest:  "/A.TXT",
		},
		{
			name:  "directory",
			setup: func(t *testing.T, fsys core.FS) { writeFile(t, fsys, "/dir/a.txt", "keep") },
			src:   "/dir",
			dest:  "/dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := &anonymousFS{MemoryFS: billy.NewMemory(), fold: tt.fold}
			tt.setup(t, fsys)
			opts := []fsx.Option{}
			if tt.fold {
				opts = append(opts, fsx.WithPaths(foldingPaths{core.RootedPaths()}))
			}
			before, err := fstest.HashTree(fsys, "/")
			require.NoError(t, err)

			err = fsx.New(fsys, opts...).Copy(context.Background(), tt.src, tt.dest)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation), "got %v", err)
			assert.Contains(t, err.Error(), "must not be the same")

			after, err := fstest.HashTree(fsys, "/")
			require.NoError(t, err)
			assert.Empty(t, before.Diff(after), "filesystem was modified")
		})
	}
}

// Names differing in case are distinct entries on case-sensitive paths.
func TestCopy_WithoutIdentityCaseSensitive(t *testing.T) {
	fsys := &anonymousFS{MemoryFS: billy.NewMemory()}
	writeFile(t, fsys, "/a.txt", "lower")
	writeFile(t, fsys, "/A.txt", "upper")

	require.NoError(t, fsx.Copy(context.Background(), fsys, "/a.txt", "/A.txt"))
	assert.Equal(t, "lower", readFile(t, fsys, "/A.txt"))
	assert.Equal(t, "lower", readFile(t, fsys, "/a.txt"))
}

func TestCopy_AncestorThroughLink(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		writeFile(t, fsys, "/data/sub/file.txt", "x")
		symlink(t, fsys, "/data", "/alias")

		err := fsx.Copy(context.Background(), fsys, "/data", "/alias/sub")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation), "got %v", err)
		assert.Contains(t, err.Error(), "subdirectory of itself")
	})
}

func TestCopy_TypeMismatch(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		writeFile(t, fsys, "/file.txt", "x")
		mkdir(t, fsys, "/dir")

		err := fsx.Copy(context.Background(), fsys, "/dir", "/file.txt")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation))
		assert.Contains(t, err.Error(), "cannot overwrite non-directory")

		err = fsx.Copy(context.Background(), fsys, "/file.txt", "/dir")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation))
		assert.Contains(t, err.Error(), "cannot overwrite directory")
	})
}

func TestCopy_MissingSource(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		err := fsx.Copy(context.Background(), fsys, "/nope", "/dest")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeNotFound), "got %v", err)

		var oe errors.OpError
		require.True(t, errors.As(err, &oe))
		assert.Equal(t, "copy", oe.Op())
		assert.Equal(t, "/nope", oe.Path())
		assert.Equal(t, "/dest", oe.Dest())
	})
}

func TestCopy_OverwritePolicy(t *testing.T) {
	tests := []struct {
		name     string
		opts     []fsx.CopyOption
		wantCode errors.ErrorCode
		want     string
	}{
		{name: "force replaces", opts: nil, want: "source"},
		{name: "error on exist", opts: []fsx.CopyOption{fsx.WithForce(false), fsx.WithErrorOnExist(true)}, wantCode: errors.CodeAlreadyExists, want: "existing"},
		{name: "skip silently", opts: []fsx.CopyOption{fsx.WithForce(false)}, want: "existing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachBackend(t, func(t *testing.T, fsys core.FS) {
				writeFile(t, fsys, "/src.txt", "source")
				writeFile(t, fsys, "/dest.txt", "existing")

				err := fsx.Copy(context.Background(), fsys, "/src.txt", "/dest.txt", tt.opts...)
				if tt.wantCode != "" {
					require.Error(t, err)
					assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
				} else {
					require.NoError(t, err)
				}
				assert.Equal(t, tt.want, readFile(t, fsys, "/dest.txt"))
			})
		})
	}
}

func TestCopy_NotRecursive(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		writeFile(t, fsys, "/src/a.txt", "a")
		writeFile(t, fsys, "/single.txt", "s")

		err := fsx.Copy(context.Background(), fsys, "/src", "/dest", fsx.WithRecursive(false))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation))
		assert.Contains(t, err.Error(), "is a directory, not copied")
		assert.False(t, exists(t, fsys, "/dest"))

		require.NoError(t, fsx.Copy(context.Background(), fsys, "/single.txt", "/copy.txt", fsx.WithRecursive(false)))
		assert.Equal(t, "s", readFile(t, fsys, "/copy.txt"))
	})
}

func TestCopy_SymlinksKept(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		writeFile(t, fsys, "/src/file.txt", "payload")
		symlink(t, fsys, "../file.txt", "/src/dir/rel")
		symlink(t, fsys, "/src/file.txt", "/src/abs")

		require.NoError(t, fsx.Copy(context.Background(), fsys, "/src", "/dest"))

		lfs := fsys.(core.LinkFS)
		for name, want := range map[string]string{"/dest/dir/rel": "../file.txt", "/dest/abs": "/src/file.txt"} {
			info := lstat(t, fsys, name)
			assert.NotZero(t, info.Mode()&fs.ModeSymlink, "%s is not a link", name)
			target, err := lfs.Readlink(name)
			require.NoError(t, err)
			assert.Equal(t, want, target)
		}
		fstest.AssertSameTree(t, fsys, "/src", fsys, "/dest")
	})
}

func TestCopy_Dereference(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		writeFile(t, fsys, "/src/real.txt", "payload")
		symlink(t, fsys, "real.txt", "/src/link.txt")

		require.NoError(t, fsx.Copy(context.Background(), fsys, "/src", "/dest", fsx.WithDereference(true)))

		info := lstat(t, fsys, "/dest/link.txt")
		assert.True(t, info.Mode().IsRegular(), "link was not dereferenced")
		assert.Equal(t, "payload", readFile(t, fsys, "/dest/link.txt"))
	})
}

func TestCopy_ReplaceLink(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		symlink(t, fsys, "target-a", "/src/link")
		symlink(t, fsys, "/elsewhere", "/dest/link")

		require.NoError(t, fsx.Copy(context.Background(), fsys, "/src/link", "/dest/link"))

		target, err := fsys.(core.LinkFS).Readlink("/dest/link")
		require.NoError(t, err)
		assert.Equal(t, "target-a", target)
	})
}

func TestCopy_LinkOverlap(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		writeFile(t, fsys, "/data/sub/file.txt", "x")
		symlink(t, fsys, "/data", "/src/link")
		symlink(t, fsys, "/data/sub", "/dest/into")
		symlink(t, fsys, "/", "/dest/above")

		err := fsx.Copy(context.Background(), fsys, "/src/link", "/dest/into")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation), "got %v", err)
		assert.Contains(t, err.Error(), "subdirectory of itself")

		err = fsx.Copy(context.Background(), fsys, "/src/link", "/dest/above")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation), "got %v", err)
		assert.Contains(t, err.Error(), "cannot overwrite")
	})
}

// Relative link targets are compared after resolving them against each
// link's directory, or as written with verbatim symlinks.
func TestCopy_VerbatimSymlinks(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		ctx := context.Background()
		lfs := fsys.(core.LinkFS)
		symlink(t, fsys, "sub", "/src/link")
		symlink(t, fsys, "sub/inner", "/dest/link")

		err := fsx.Copy(ctx, fsys, "/src/link", "/dest/link", fsx.WithVerbatimSymlinks(true))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation), "got %v", err)
		target, err := lfs.Readlink("/dest/link")
		require.NoError(t, err)
		assert.Equal(t, "sub/inner", target)

		require.NoError(t, fsx.Copy(ctx, fsys, "/src/link", "/dest/link"))
		target, err = lfs.Readlink("/dest/link")
		require.NoError(t, err)
		assert.Equal(t, "sub", target)
	})
}

func TestCopy_LinkOntoFile(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		symlink(t, fsys, "anywhere", "/src/link")
		writeFile(t, fsys, "/dest/link", "regular")

		err := fsx.Copy(context.Background(), fsys, "/src/link", "/dest/link")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeAlreadyExists), "got %v", err)
		assert.Equal(t, "regular", readFile(t, fsys, "/dest/link"))
	})
}

func TestCopy_Filter(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		buildTree(t, fsys, "/src")

		var seen []string
		filter := func(_ context.Context, src, _ string) (bool, error) {
			seen = append(seen, src)
			return src != "/src/internal" && src != "/src/go.mod", nil
		}
		ops := fsx.New(fsys, fsx.WithConcurrency(1))
		require.NoError(t, ops.Copy(context.Background(), "/src", "/dest", fsx.WithFilter(filter)))

		assert.Contains(t, seen, "/src")
		assert.Contains(t, seen, "/src/cmd/app/main.go")
		assert.NotContains(t, seen, "/src/internal/store", "excluded directory was traversed")
		assert.False(t, exists(t, fsys, "/dest/internal"))
		assert.False(t, exists(t, fsys, "/dest/go.mod"))
		assert.True(t, exists(t, fsys, "/dest/cmd/app/main.go"))
	})
}

func TestCopy_FilterRejectsRoot(t *testing.T) {
	fsys := billy.NewMemory()
	writeFile(t, fsys, "/src/a.txt", "a")

	err := fsx.Copy(context.Background(), fsys, "/src", "/dest",
		fsx.WithFilter(func(context.Context, string, string) (bool, error) { return false, nil }))
	require.NoError(t, err)
	assert.False(t, exists(t, fsys, "/dest"))
}

func TestCopy_FilterError(t *testing.T) {
	fsys := billy.NewMemory()
	writeFile(t, fsys, "/src/a.txt", "a")
	boom := stderrors.New("boom")

	err := fsx.Copy(context.Background(), fsys, "/src", "/dest",
		fsx.WithFilter(func(_ context.Context, src, _ string) (bool, error) {
			if src == "/src/a.txt" {
				return false, boom
			}
			return true, nil
		}))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestCopy_FirstErrorAborts(t *testing.T) {
	mem := billy.NewMemory()
	buildTree(t, mem, "/src")
	boom := stderrors.New("disk full")
	fsys := fstest.NewFaultFS(mem, fstest.FailPath("openfile", "/dest/go.mod", boom))

	err := fsx.Copy(context.Background(), fsys, "/src", "/dest")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var oe errors.OpError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, errors.CodeIO, oe.Code())
	assert.Equal(t, "/src/go.mod", oe.Path())
	assert.Equal(t, "/dest/go.mod", oe.Dest())
}

func TestCopy_Canceled(t *testing.T) {
	fsys := billy.NewMemory()
	buildTree(t, fsys, "/src")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fsx.Copy(ctx, fsys, "/src", "/dest")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeCanceled), "got %v", err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, exists(t, fsys, "/dest"))
}

func TestCopy_PreserveTimestamps(t *testing.T) {
	fsys := billy.NewLocal(billy.WithRoot(t.TempDir()))

	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	writeFile(t, fsys, "/src/rw.txt", "rw")
	writeFile(t, fsys, "/src/ro.txt", "ro")
	require.NoError(t, fsys.Chtimes("/src/rw.txt", stamp, stamp))
	require.NoError(t, fsys.Chtimes("/src/ro.txt", stamp, stamp))
	require.NoError(t, fsys.Chmod("/src/ro.txt", 0o444))

	require.NoError(t, fsx.Copy(context.Background(), fsys, "/src", "/dest", fsx.WithPreserveTimestamps(true)))

	for _, name := range []string{"/dest/rw.txt", "/dest/ro.txt"} {
		info, err := fsys.Stat(name)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(stamp), "%s mtime = %v, want %v", name, info.ModTime(), stamp)
	}
	info, err := fsys.Stat("/dest/ro.txt")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o444), info.Mode().Perm())
}

func TestCopy_PreserveTimestampsWithoutMetadata(t *testing.T) {
	fsys := billy.NewMemory()
	writeFile(t, fsys, "/src/a.txt", "a")

	require.NoError(t, fsx.Copy(context.Background(), fsys, "/src", "/dest", fsx.WithPreserveTimestamps(true)))
	assert.Equal(t, "a", readFile(t, fsys, "/dest/a.txt"))
}

func TestCopy_AppliesModes(t *testing.T) {
	fsys := billy.NewLocal(billy.WithRoot(t.TempDir()))
	writeFile(t, fsys, "/src/secret.txt", "s")
	writeFile(t, fsys, "/src/locked/inner.txt", "i")
	require.NoError(t, fsys.Chmod("/src/secret.txt", 0o600))
	require.NoError(t, fsys.Chmod("/src/locked", 0o500))
	t.Cleanup(func() {
		_ = fsys.Chmod("/src/locked", 0o755)
		_ = fsys.Chmod("/dest/locked", 0o755)
	})

	require.NoError(t, fsx.Copy(context.Background(), fsys, "/src", "/dest"))

	info, err := fsys.Stat("/dest/secret.txt")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	info, err = fsys.Stat("/dest/locked")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o500), info.Mode().Perm())
	assert.Equal(t, "i", readFile(t, fsys, "/dest/locked/inner.txt"))
}
