//go:build unix

package fsx_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/jmgilman/go/fsx"
	"github.com/jmgilman/go/fsx/billy"
	"github.com/jmgilman/go/fsx/errors"
)

func TestCopy_FIFOUnsupported(t *testing.T) {
	root := t.TempDir()
	fsys := billy.NewLocal(billy.WithRoot(root))
	writeFile(t, fsys, "/src/a.txt", "a")
	require.NoError(t, unix.Mkfifo(filepath.Join(root, "src", "pipe"), 0o644))

	err := fsx.Copy(context.Background(), fsys, "/src", "/dest")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeUnsupportedEntry), "got %v", err)
	assert.Contains(t, err.Error(), "FIFO")

	var oe errors.OpError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "/src/pipe", oe.Path())
}

func TestCopy_CharDevice(t *testing.T) {
	fsys := billy.NewLocal()
	dest := filepath.Join(t.TempDir(), "null-copy")

	require.NoError(t, fsx.Copy(context.Background(), fsys, "/dev/null", dest))

	info, err := fsys.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Zero(t, info.Size())
}
