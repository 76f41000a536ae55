//go:build unix

package fsx_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsx"
	"github.com/jmgilman/go/fsx/billy"
	"github.com/jmgilman/go/fsx/errors"
	"github.com/jmgilman/go/fsx/fstest"
)

// Two hard links to one inode stand in for the two spellings of a name on
// a case-insensitive filesystem: both resolve to the same entry.
func TestMove_CaseOnlyRename(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Foo"), []byte("data"), 0o644))
	require.NoError(t, os.Link(filepath.Join(root, "Foo"), filepath.Join(root, "foo")))
	require.NoError(t, os.Link(filepath.Join(root, "Foo"), filepath.Join(root, "bar")))

	fsys := fstest.NewFaultFS(billy.NewLocal(billy.WithRoot(root)))

	require.NoError(t, fsx.Move(context.Background(), fsys, "/Foo", "/foo"))
	assert.Equal(t, 1, fsys.Calls("rename"))
	assert.Zero(t, fsys.Calls("removeall"), "case-only rename must not remove the destination")
	assert.Equal(t, "data", readFile(t, fsys, "/foo"))

	err := fsx.Move(context.Background(), fsys, "/foo", "/bar")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation), "got %v", err)
	assert.Contains(t, err.Error(), "must not be the same")
	assert.Equal(t, 1, fsys.Calls("rename"))
}
