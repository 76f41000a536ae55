package fstest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"testing"

	"github.com/zeebo/blake3"

	"github.com/jmgilman/go/fsx/core"
)

// Tree maps slash-separated paths relative to a root (the root itself is
// ".") to a digest of the entry: its type, permission bits and, for regular
// files, the BLAKE3 hash of the content, or for links, the link target.
type Tree map[string]string

// HashTree digests every entry under root. Symbolic links are recorded, not
// followed.
func HashTree(fsys core.FS, root string) (Tree, error) {
	tree := make(Tree)
	if err := hashEntry(fsys, tree, root, "."); err != nil {
		return nil, err
	}
	return tree, nil
}

func lstat(fsys core.FS, name string) (fs.FileInfo, error) {
	if lfs, ok := fsys.(core.LinkFS); ok {
		info, err := lfs.Lstat(name)
		if !errors.Is(err, core.ErrUnsupported) {
			return info, err
		}
	}
	return fsys.Stat(name)
}

func hashEntry(fsys core.FS, tree Tree, name, rel string) error {
	info, err := lstat(fsys, name)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := fsys.(core.LinkFS).Readlink(name)
		if err != nil {
			return err
		}
		tree[rel] = "link " + target
	case info.IsDir():
		tree[rel] = fmt.Sprintf("dir %04o", info.Mode().Perm())
		entries, err := fsys.ReadDir(name)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := hashEntry(fsys, tree, path.Join(name, e.Name()), path.Join(rel, e.Name())); err != nil {
				return err
			}
		}
	case info.Mode().IsRegular():
		digest, err := hashFile(fsys, name)
		if err != nil {
			return err
		}
		tree[rel] = fmt.Sprintf("file %04o %s", info.Mode().Perm(), digest)
	default:
		tree[rel] = "other " + info.Mode().Type().String()
	}
	return nil
}

// hashFile computes the BLAKE3 hash of the named file, hex encoded.
func hashFile(fsys core.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", name, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Diff lists the paths whose digests differ between t and other, sorted.
func (t Tree) Diff(other Tree) []string {
	var diff []string
	for p, d := range t {
		if other[p] != d {
			diff = append(diff, p)
		}
	}
	for p := range other {
		if _, ok := t[p]; !ok {
			diff = append(diff, p)
		}
	}
	slices.Sort(diff)
	return diff
}

// AssertSameTree fails the test if the trees at a and b differ.
func AssertSameTree(t testing.TB, fsysA core.FS, a string, fsysB core.FS, b string) {
	t.Helper()
	treeA, err := HashTree(fsysA, a)
	if err != nil {
		t.Fatalf("HashTree(%s): got error %v, want nil", a, err)
	}
	treeB, err := HashTree(fsysB, b)
	if err != nil {
		t.Fatalf("HashTree(%s): got error %v, want nil", b, err)
	}
	if diff := treeA.Diff(treeB); len(diff) > 0 {
		for _, p := range diff {
			t.Errorf("tree %s vs %s: %s: %q != %q", a, b, p, treeA[p], treeB[p])
		}
	}
}
