package pactlog

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/kadena-community/pactup/internal/config"
)

func TestNewInfoLevelWritesToStderr(t *testing.T) {
	l := New(config.LogInfo)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.Equal(t, os.Stderr, l.Out)
}

func TestNewErrorLevelWritesToStderr(t *testing.T) {
	l := New(config.LogError)
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())
	assert.Equal(t, os.Stderr, l.Out)
}

func TestNewQuietDiscardsNonFatalOutput(t *testing.T) {
	l := New(config.LogQuiet)
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())
	assert.Equal(t, io.Discard, l.Out)

	// Route the fatal-only hook into buf: an error-level entry must not
	// reach it either.
	var buf bytes.Buffer
	l.ReplaceHooks(logrus.LevelHooks{})
	l.AddHook(fatalOnlyHook{out: &buf})
	l.Error("should not appear anywhere visible")
	assert.Empty(t, buf.String())
}

func TestFatalOnlyHookFiresOnFatalLevel(t *testing.T) {
	var buf bytes.Buffer
	hook := fatalOnlyHook{out: &buf}

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Level:   logrus.FatalLevel,
		Message: "disk is gone",
	}
	require := assert.New(t)
	require.NoError(hook.Fire(entry))
	require.Contains(buf.String(), "disk is gone")
}
