package fileInfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTree creates:
//
//	root/a.txt
//	root/photos/b.txt
//	root/photos/c.txt
//	root/photos/nested/d.txt
func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello a"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "photos", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photos", "c.txt"), []byte("c"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photos", "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photos", "nested", "d.txt"), []byte("d"), 0o644))
	return root
}

func TestCreateNode(t *testing.T) {
	root := setupTree(t)

	node, err := CreateNode(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a.txt", node.Name)
	assert.Equal(t, int64(7), node.Size)
	assert.Contains(t, node.MimeType, "text/plain")

	_, err = CreateNode(filepath.Join(root, "photos"))
	assert.ErrorIs(t, err, ErrNotRegular)
}

func TestExpandDir_OneLevel(t *testing.T) {
	root := setupTree(t)

	nodes, err := ExpandDir(filepath.Join(root, "photos"))
	require.NoError(t, err)

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"b.txt", "c.txt"}, names)
}

func TestResolve(t *testing.T) {
	root := setupTree(t)

	nodes := Resolve([]string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "missing.txt"),
		filepath.Join(root, "photos"),
	})

	paths := make([]string, 0, len(nodes))
	for _, n := range nodes {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "photos", "b.txt"),
		filepath.Join(root, "photos", "c.txt"),
	}, paths)
}

func TestResolve_Empty(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "only-dirs"), 0o755))

	assert.Empty(t, Resolve([]string{root}))
	assert.Empty(t, Resolve(nil))
}
