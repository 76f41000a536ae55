package fsx_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsx"
	"github.com/jmgilman/go/fsx/billy"
	"github.com/jmgilman/go/fsx/core"
	"github.com/jmgilman/go/fsx/errors"
	"github.com/jmgilman/go/fsx/fstest"
)

func TestRemove_Idempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fsys core.FS) {
		buildTree(t, fsys, "/tree")
		writeFile(t, fsys, "/file.txt", "x")

		for _, name := range []string{"/tree", "/file.txt", "/never-existed"} {
			require.NoError(t, fsx.Remove(context.Background(), fsys, name))
			require.NoError(t, fsx.Remove(context.Background(), fsys, name), "second remove of %s", name)
			assert.False(t, exists(t, fsys, name))
		}
	})
}

// The walk used when the backend has no recursive remove.
func TestRemove_Fallback(t *testing.T) {
	forEachBackend(t, func(t *testing.T, inner core.FS) {
		buildTree(t, inner, "/tree")
		writeFile(t, inner, "/outside/keep.txt", "keep")
		symlink(t, inner, "/outside", "/tree/link")

		fsys := fstest.NewFaultFS(inner, fstest.FailOp("removeall", core.ErrUnsupported))
		require.NoError(t, fsx.Remove(context.Background(), fsys, "/tree"))
		require.NoError(t, fsx.Remove(context.Background(), fsys, "/tree"))

		assert.False(t, exists(t, inner, "/tree"))
		assert.Equal(t, "keep", readFile(t, inner, "/outside/keep.txt"), "link target was removed")
		assert.Positive(t, fsys.Calls("remove"))
	})
}

func TestRemove_Error(t *testing.T) {
	mem := billy.NewMemory()
	writeFile(t, mem, "/tree/a.txt", "a")
	boom := stderrors.New("read-only filesystem")
	fsys := fstest.NewFaultFS(mem,
		fstest.FailOp("removeall", core.ErrUnsupported),
		fstest.FailPath("remove", "/tree/a.txt", boom),
	)

	err := fsx.Remove(context.Background(), fsys, "/tree")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var oe errors.OpError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "remove", oe.Op())
	assert.Equal(t, "/tree/a.txt", oe.Path())
	assert.True(t, exists(t, mem, "/tree"))
}
