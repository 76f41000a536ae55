package fsx_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsx"
	"github.com/jmgilman/go/fsx/billy"
	"github.com/jmgilman/go/fsx/errors"
)

func TestExcludeFilter(t *testing.T) {
	filter, err := fsx.ExcludeFilter(".git", "*.log", "**/build/*.o", "/src/vendor")
	require.NoError(t, err)

	tests := []struct {
		src  string
		want bool
	}{
		{src: "/src/.git", want: false},
		{src: "/src/pkg/.git", want: false},
		{src: "/src/debug.log", want: false},
		{src: "/src/logs/app.log", want: false},
		{src: "/src/build/main.o", want: false},
		{src: "/src/a/build/util.o", want: false},
		{src: "/src/vendor", want: false},
		{src: "/src/.gitignore", want: true},
		{src: "/src/build/main.go", want: true},
		{src: "/src/pkg/vendor", want: true},
		{src: "/src/log.txt", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := filter(context.Background(), tt.src, "/dest")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExcludeFilter_InvalidPattern(t *testing.T) {
	_, err := fsx.ExcludeFilter("[unterminated")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidOperation))
	assert.Contains(t, err.Error(), "[unterminated")
}

func TestChainFilters(t *testing.T) {
	noLogs, err := fsx.ExcludeFilter("*.log")
	require.NoError(t, err)
	noTmp, err := fsx.ExcludeFilter("*.tmp")
	require.NoError(t, err)
	chain := fsx.ChainFilters(noLogs, nil, noTmp)

	for src, want := range map[string]bool{"/a.log": false, "/a.tmp": false, "/a.go": true} {
		got, err := chain(context.Background(), src, "")
		require.NoError(t, err)
		assert.Equal(t, want, got, src)
	}

	boom := stderrors.New("boom")
	failing := fsx.ChainFilters(func(context.Context, string, string) (bool, error) { return true, boom })
	got, err := failing(context.Background(), "/a", "/b")
	assert.False(t, got)
	assert.ErrorIs(t, err, boom)

	got, err = fsx.ChainFilters()(context.Background(), "/a", "/b")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestCopy_ExcludeFilter(t *testing.T) {
	fsys := billy.NewMemory()
	writeFile(t, fsys, "/src/main.go", "package main")
	writeFile(t, fsys, "/src/debug.log", "noise")
	writeFile(t, fsys, "/src/.git/HEAD", "ref: refs/heads/main")

	skip, err := fsx.ExcludeFilter(".git", "*.log")
	require.NoError(t, err)
	require.NoError(t, fsx.Copy(context.Background(), fsys, "/src", "/dest", fsx.WithFilter(skip)))

	assert.Equal(t, []string{"main.go"}, readDirNames(t, fsys, "/dest"))
}
