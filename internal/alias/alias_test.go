package alias

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadena-community/pactup/internal/layout"
)

func newStore(t *testing.T) (Store, string) {
	tmp := t.TempDir()
	l, err := layout.Resolve(tmp)
	require.NoError(t, err)
	return Store{Layout: l}, tmp
}

func TestCreateAndResolve(t *testing.T) {
	s, tmp := newStore(t)
	target := filepath.Join(tmp, "pact-versions", "v4.13.0")
	require.NoError(t, os.MkdirAll(target, 0o755))

	require.NoError(t, s.Create("default", target))

	resolved, err := s.Resolve("default")
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}

func TestCreateIsAtomicReplace(t *testing.T) {
	s, tmp := newStore(t)
	v1 := filepath.Join(tmp, "pact-versions", "v4.13.0")
	v2 := filepath.Join(tmp, "pact-versions", "v4.14.0")
	require.NoError(t, os.MkdirAll(v1, 0o755))
	require.NoError(t, os.MkdirAll(v2, 0o755))

	require.NoError(t, s.Create("default", v1))
	require.NoError(t, s.Create("default", v2))

	resolved, err := s.Resolve("default")
	require.NoError(t, err)
	assert.Equal(t, v2, resolved)
}

func TestListDerivesVersionFromBasename(t *testing.T) {
	s, tmp := newStore(t)
	target := filepath.Join(tmp, "pact-versions", "v4.13.0")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, s.Create("default", target))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "default", entries[0].Name)
	assert.Equal(t, "v4.13.0", entries[0].Version)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, tmp := newStore(t)
	target := filepath.Join(tmp, "pact-versions", "v4.13.0")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, s.Create("x", target))

	require.NoError(t, s.Delete("x"))
	require.NoError(t, s.Delete("x")) // no-op the second time

	_, err := s.Resolve("x")
	assert.Error(t, err)
}
