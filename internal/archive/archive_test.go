package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	cases := map[string]Kind{
		"pact-4.13.0-linux-x64.tar.gz": TarGz,
		"pact-4.13.0-linux-x64.tar.xz": TarXz,
		"pact-4.13.0-windows-x64.zip":  Zip,
	}
	for name, want := range cases {
		got, err := DetectKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestDetectKindUnknown(t *testing.T) {
	_, err := DetectKind("pact-4.13.0-linux-x64.rar")
	require.Error(t, err)
}

func TestNormalizePermissions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o700))
	exe := filepath.Join(root, "bin", "pact")
	require.NoError(t, os.WriteFile(exe, []byte("x"), 0o700))
	other := filepath.Join(root, "README.md")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))

	require.NoError(t, NormalizePermissions(root))

	info, err := os.Stat(exe)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	info, err = os.Stat(other)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(root, "bin"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
