// Package config resolves pactup's environment variables (spec.md §6)
// into a typed Config, with CLI flags (bound by internal/cli) taking
// precedence where both are set.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/kadena-community/pactup/internal/catalog"
	"github.com/kadena-community/pactup/internal/versionfile"
)

// LogLevel mirrors PACTUP_LOGLEVEL.
type LogLevel string

const (
	LogQuiet LogLevel = "quiet"
	LogInfo  LogLevel = "info"
	LogError LogLevel = "error"
)

// Config is the resolved set of §6 environment variables.
type Config struct {
	BaseDir             string
	Repos               []catalog.Repo
	MultishellPath      string
	LogLevel            LogLevel
	ArchOverride        string
	VersionFileStrategy versionfile.Strategy
	ResolveEngines      bool
}

// FromEnvironment reads the process environment. CLI flag overrides are
// applied by the caller on top of the returned Config.
func FromEnvironment() Config {
	c := Config{
		BaseDir:        os.Getenv("PACTUP_DIR"),
		MultishellPath: os.Getenv("PACTUP_MULTISHELL_PATH"),
		LogLevel:       parseLogLevel(os.Getenv("PACTUP_LOGLEVEL")),
		ArchOverride:   os.Getenv("PACTUP_ARCH"),
	}

	c.Repos = parseRepos(os.Getenv("PACTUP_PACT4X_REPO"), os.Getenv("PACTUP_PACT5X_REPO"))

	switch strings.ToLower(os.Getenv("PACTUP_VERSION_FILE_STRATEGY")) {
	case "recursive":
		c.VersionFileStrategy = versionfile.Recursive
	default:
		c.VersionFileStrategy = versionfile.Local
	}

	if b, err := strconv.ParseBool(os.Getenv("PACTUP_RESOLVE_ENGINES")); err == nil {
		c.ResolveEngines = b
	}

	return c
}

func parseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "quiet":
		return LogQuiet
	case "error":
		return LogError
	default:
		return LogInfo
	}
}

// DefaultRepos are consulted when neither PACTUP_PACT4X_REPO nor
// PACTUP_PACT5X_REPO is set.
var DefaultRepos = []catalog.Repo{
	{Owner: "kadena-io", Name: "pact"},
	{Owner: "kadena-io", Name: "pact-5"},
}

func parseRepos(specs ...string) []catalog.Repo {
	var repos []catalog.Repo
	for _, s := range specs {
		if s == "" {
			continue
		}
		parts := strings.SplitN(s, "/", 2)
		if len(parts) != 2 {
			continue
		}
		repos = append(repos, catalog.Repo{Owner: parts[0], Name: parts[1]})
	}
	if len(repos) == 0 {
		return DefaultRepos
	}
	return repos
}
