package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReposDefaultsWhenUnset(t *testing.T) {
	repos := parseRepos("", "")
	assert.Equal(t, DefaultRepos, repos)
}

func TestParseReposOrdered(t *testing.T) {
	repos := parseRepos("kadena-io/pact", "kadena-io/pact-5")
	assert.Equal(t, "kadena-io", repos[0].Owner)
	assert.Equal(t, "pact", repos[0].Name)
	assert.Equal(t, "pact-5", repos[1].Name)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogQuiet, parseLogLevel("quiet"))
	assert.Equal(t, LogError, parseLogLevel("ERROR"))
	assert.Equal(t, LogInfo, parseLogLevel(""))
	assert.Equal(t, LogInfo, parseLogLevel("bogus"))
}
