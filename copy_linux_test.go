package fsx_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/jmgilman/go/fsx"
	"github.com/jmgilman/go/fsx/billy"
)

func hostAtime(t *testing.T, name string) time.Time {
	t.Helper()
	var st unix.Stat_t
	require.NoError(t, unix.Stat(name, &st))
	return time.Unix(st.Atim.Unix())
}

// The access time copied is the one the source has after being read.
func TestCopy_PreserveAccessTime(t *testing.T) {
	root := t.TempDir()
	fsys := billy.NewLocal(billy.WithRoot(root))
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	atime := time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)
	writeFile(t, fsys, "/src/a.txt", "a")
	require.NoError(t, fsys.Chtimes("/src/a.txt", atime, mtime))

	require.NoError(t, fsx.Copy(context.Background(), fsys, "/src", "/dest", fsx.WithPreserveTimestamps(true)))

	srcAtime := hostAtime(t, filepath.Join(root, "src", "a.txt"))
	destAtime := hostAtime(t, filepath.Join(root, "dest", "a.txt"))
	assert.True(t, destAtime.Equal(srcAtime), "dest atime = %v, want %v", destAtime, srcAtime)
	assert.False(t, destAtime.Equal(mtime), "dest atime was set from the modification time")

	info, err := fsys.Stat("/dest/a.txt")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "dest mtime = %v, want %v", info.ModTime(), mtime)
}
