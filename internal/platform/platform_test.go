package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOverridesArch(t *testing.T) {
	p, err := Detect("arm64")
	require.NoError(t, err)
	assert.Equal(t, Arm64, p.Arch)
}

func TestDetectUnsupportedArch(t *testing.T) {
	_, err := Detect("sparc")
	require.Error(t, err)
	var uae *UnsupportedArchError
	assert.ErrorAs(t, err, &uae)
}

func TestAliasesNonEmpty(t *testing.T) {
	for os := Linux; os <= Windows; os++ {
		assert.NotEmpty(t, os.Aliases())
	}
	for a := X86; a <= S390x; a++ {
		assert.NotEmpty(t, a.Aliases())
	}
}

func TestIsDefault64Bit(t *testing.T) {
	assert.True(t, X64.IsDefault64Bit())
	assert.False(t, Arm64.IsDefault64Bit())
}
