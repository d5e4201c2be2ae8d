package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadena-community/pactup/internal/alias"
	"github.com/kadena-community/pactup/internal/config"
	"github.com/kadena-community/pactup/internal/layout"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	l, err := layout.Resolve(t.TempDir())
	require.NoError(t, err)
	return &app{
		cfg:     config.Config{Repos: config.DefaultRepos},
		layout:  l,
		aliases: alias.Store{Layout: l},
	}
}

func installFixture(t *testing.T, a *app, display string) string {
	t.Helper()
	dir, err := a.layout.InstallationDir(display)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))
	require.NoError(t, os.WriteFile(layout.BinPath(dir), []byte("#!/bin/sh\n"), 0o755))
	return dir
}

func TestInstalledVersionsSkipsDownloadsAndIncomplete(t *testing.T) {
	a := newTestApp(t)
	installFixture(t, a, "v4.13.0")
	installFixture(t, a, "v4.12.0")

	installsDir, err := a.layout.InstallationsDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(installsDir, ".downloads"), 0o755))

	// v4.11.0 has a directory but no bin/pact binary — a half-finished
	// install that must not be treated as usable (I1).
	incomplete, err := a.layout.InstallationDir("v4.11.0")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(incomplete, 0o755))

	versions, err := a.installedVersions()
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "v4.12.0", versions[0].Display())
	assert.Equal(t, "v4.13.0", versions[1].Display())
}

func TestResolveSelectorMatchesOnlyMajor(t *testing.T) {
	a := newTestApp(t)
	installFixture(t, a, "v4.13.0")
	installFixture(t, a, "v4.12.0")

	v, dir, err := a.resolveSelector("4", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "v4.13.0", v.Display())
	assert.Contains(t, dir, "v4.13.0")
}

func TestResolveSelectorFollowsAlias(t *testing.T) {
	a := newTestApp(t)
	dir := installFixture(t, a, "v4.13.0")
	require.NoError(t, a.aliases.Create("default", dir))

	v, resolved, err := a.resolveSelector("default", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "default", v.Display())
	assert.Equal(t, dir, resolved)
}

func TestResolveSelectorErrorsWithNoVersionOrFile(t *testing.T) {
	a := newTestApp(t)
	_, _, err := a.resolveSelector("", t.TempDir())
	assert.Error(t, err)
}

func TestResolveSelectorSystemBypassesInstalledLookup(t *testing.T) {
	a := newTestApp(t)

	v, dir, err := a.resolveSelector("system", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "system", v.Display())
	assert.Equal(t, bypassedSentinelPath(), dir)
}
