package assetmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadena-community/pactup/internal/catalog"
	"github.com/kadena-community/pactup/internal/platform"
	"github.com/kadena-community/pactup/internal/version"
)

func release(names ...string) catalog.Release {
	assets := make([]catalog.Asset, len(names))
	for i, n := range names {
		assets[i] = catalog.Asset{Name: n, DownloadURL: "https://example.com/" + n}
	}
	return catalog.Release{Tag: version.Semver(4, 13, 0), Assets: assets}
}

func TestMatchStandardAsset(t *testing.T) {
	r := release("tool-4.13.0-linux-x64.tar.gz")
	plat := platform.Platform{OS: platform.Linux, Arch: platform.X64}
	a, ok := Match(r, plat, "tool")
	require.True(t, ok)
	assert.Equal(t, "tool-4.13.0-linux-x64.tar.gz", a.Name)
}

func TestMatchArchlessFallsBackOnDefaultArch(t *testing.T) {
	r := release("tool-4.13.0-linux-20.04.tar.gz")
	plat := platform.Platform{OS: platform.Linux, Arch: platform.X64}
	_, ok := Match(r, plat, "tool")
	require.True(t, ok)
}

func TestMatchRejectsWrongArch(t *testing.T) {
	r := release("tool-4.13.0-darwin-x64.tar.gz")
	plat := platform.Platform{OS: platform.MacOS, Arch: platform.Arm64}
	_, ok := Match(r, plat, "tool")
	assert.False(t, ok)
}

func TestMatchArchlessDoesNotFallBackOnNonDefaultArch(t *testing.T) {
	r := release("tool-4.13.0-linux-20.04.tar.gz")
	plat := platform.Platform{OS: platform.Linux, Arch: platform.Arm64}
	_, ok := Match(r, plat, "tool")
	assert.False(t, ok)
}

func TestMatchOrderIndependent(t *testing.T) {
	r1 := release("tool-4.13.0-arm64-darwin.tar.gz", "tool-4.13.0-linux-x64.tar.gz")
	r2 := release("tool-4.13.0-linux-x64.tar.gz", "tool-4.13.0-arm64-darwin.tar.gz")
	plat := platform.Platform{OS: platform.Linux, Arch: platform.X64}
	a1, ok1 := Match(r1, plat, "tool")
	a2, ok2 := Match(r2, plat, "tool")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, a1.Name, a2.Name)
}
