package cli

import (
	"os"
	"runtime"
	"sort"

	"golang.org/x/xerrors"

	"github.com/kadena-community/pactup/internal/layout"
	"github.com/kadena-community/pactup/internal/userversion"
	"github.com/kadena-community/pactup/internal/version"
	"github.com/kadena-community/pactup/internal/versionfile"
)

// installedVersions lists every Version directory currently published
// under pact-versions/, skipping the .downloads staging dir and any
// entry that doesn't parse or isn't a complete installation (I1).
func (a *app) installedVersions() ([]version.Version, error) {
	dir, err := a.layout.InstallationsDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("listing installed versions: %w", err)
	}

	var out []version.Version
	for _, e := range entries {
		if !e.IsDir() || e.Name() == ".downloads" {
			continue
		}
		v, err := version.Parse(e.Name())
		if err != nil {
			continue
		}
		if !a.layoutIsComplete(e.Name()) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return version.Less(out[i], out[j]) })
	return out, nil
}

func (a *app) layoutIsComplete(display string) bool {
	dir, err := a.layout.InstallationDir(display)
	if err != nil {
		return false
	}
	return layout.IsCompleteInstallation(dir)
}

// bypassedSentinelPath is the OS-appropriate path resolveSelector hands
// back for version.Bypassed — never a real installation directory.
func bypassedSentinelPath() string {
	if runtime.GOOS == "windows" {
		return version.BypassedSentinelWindows
	}
	return version.BypassedSentinelPOSIX
}

// aliasConfig builds the userversion.Config needed to resolve an alias
// name (spec.md §3's Full(alias) matching rule) against the aliases
// directory's current contents.
func (a *app) aliasConfig() userversion.Config {
	entries, err := a.aliases.List()
	cfg := userversion.Config{Aliases: map[string]version.Version{}}
	if err != nil {
		return cfg
	}
	for _, e := range entries {
		if v, err := version.Parse(e.Version); err == nil {
			cfg.Aliases[e.Name] = v
		}
	}
	return cfg
}

// resolveSelector parses the user's raw selector (or, if empty, consults
// the version file per spec.md §6) and matches it against the installed
// set, returning the winning Version and its directory.
func (a *app) resolveSelector(raw, cwd string) (version.Version, string, error) {
	if raw == "" {
		if r, ok := versionfile.Discover(cwd, a.cfg.VersionFileStrategy, a.cfg.ResolveEngines); ok {
			raw = r.Selector
		}
	}
	if raw == "" {
		return version.Version{}, "", xerrors.New("no version specified and no version file found")
	}

	uv, err := userversion.Parse(raw)
	if err != nil {
		return version.Version{}, "", err
	}

	if uv.Kind() == userversion.KindFull && uv.Matches(version.Bypassed, userversion.Config{}) {
		return version.Bypassed, bypassedSentinelPath(), nil
	}

	installed, err := a.installedVersions()
	if err != nil {
		return version.Version{}, "", err
	}

	// A bare alias name (e.g. "default") isn't itself in installedVersions
	// (only real Semver/Nightly/Latest directories live there), so try it
	// directly against the alias store first.
	if uv.Kind() == userversion.KindFull {
		if dir, err := a.aliases.Resolve(raw); err == nil {
			return version.Alias(raw), dir, nil
		}
	}

	best, ok := uv.ToVersion(installed, a.aliasConfig())
	if !ok {
		return version.Version{}, "", xerrors.Errorf("no installed version matches %q", raw)
	}
	dir, err := a.layout.InstallationDir(best.Display())
	if err != nil {
		return version.Version{}, "", err
	}
	return best, dir, nil
}
