package shellbind

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathIsUnique(t *testing.T) {
	b := Binder{}
	p1, err := b.NewPath()
	require.NoError(t, err)
	p2, err := b.NewPath()
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}

func TestCreateAndRepoint(t *testing.T) {
	b := Binder{}
	root := t.TempDir()
	link := filepath.Join(root, "shell-link")
	v1 := filepath.Join(root, "v1")
	v2 := filepath.Join(root, "v2")
	require.NoError(t, os.MkdirAll(v1, 0o755))
	require.NoError(t, os.MkdirAll(v2, 0o755))

	require.NoError(t, b.CreatePointingAt(link, v1))
	resolved, err := Resolve(link)
	require.NoError(t, err)
	assert.Equal(t, v1, resolved)

	require.NoError(t, b.Repoint(link, v2))
	resolved, err = Resolve(link)
	require.NoError(t, err)
	assert.Equal(t, v2, resolved)
}

func TestRemoveIsIdempotent(t *testing.T) {
	root := t.TempDir()
	link := filepath.Join(root, "shell-link")
	require.NoError(t, Remove(link))

	require.NoError(t, os.Symlink(root, link))
	require.NoError(t, Remove(link))
	require.NoError(t, Remove(link))
}
