package fsx

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/jmgilman/go/fsx/errors"
)

// ExcludeFilter returns a filter that skips every entry whose base name or
// full source path matches one of patterns.
//
// Patterns use glob syntax with "/" as the separator: "*" and "?" stay
// within one path segment, "**" spans segments, and "[a-z]" and "{a,b}"
// are supported. Paths are converted to slashes before matching.
//
// Example:
//
//	skip, err := fsx.ExcludeFilter(".git", "*.log", "**/node_modules/**")
//	if err != nil {
//	    return err
//	}
//	err = ops.Copy(ctx, src, dest, fsx.WithFilter(skip))
func ExcludeFilter(patterns ...string) (FilterFunc, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, errors.WrapCode(err, errors.CodeInvalidOperation, "filter", "",
				fmt.Sprintf("invalid exclude pattern %q", pattern))
		}
		globs = append(globs, g)
	}

	return func(_ context.Context, src, _ string) (bool, error) {
		full := filepath.ToSlash(src)
		base := path.Base(full)
		for _, g := range globs {
			if g.Match(base) || g.Match(full) {
				return false, nil
			}
		}
		return true, nil
	}, nil
}

// ChainFilters returns a filter that includes an entry only when every
// filter includes it. Filters run in order and the first exclusion or
// error wins. Nil filters are ignored.
func ChainFilters(filters ...FilterFunc) FilterFunc {
	return func(ctx context.Context, src, dest string) (bool, error) {
		for _, filter := range filters {
			if filter == nil {
				continue
			}
			ok, err := filter(ctx, src, dest)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}
