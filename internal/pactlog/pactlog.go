// Package pactlog wraps logrus with the three levels PACTUP_LOGLEVEL
// recognizes (spec.md §6).
package pactlog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kadena-community/pactup/internal/config"
)

// New builds a *logrus.Logger configured for level.
func New(level config.LogLevel) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch level {
	case config.LogQuiet:
		l.SetLevel(logrus.ErrorLevel)
		l.SetOutput(io.Discard)
		l.AddHook(fatalOnlyHook{out: os.Stderr})
	case config.LogError:
		l.SetLevel(logrus.ErrorLevel)
		l.SetOutput(os.Stderr)
	default:
		l.SetLevel(logrus.InfoLevel)
		l.SetOutput(os.Stderr)
	}

	return l
}

// fatalOnlyHook lets quiet mode still surface fatal- and panic-level
// entries on stderr, which the discarded output would otherwise swallow.
// The command-boundary error line is printed by cmd/pactup itself, not
// through this logger.
type fatalOnlyHook struct{ out io.Writer }

func (fatalOnlyHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.FatalLevel, logrus.PanicLevel}
}

func (h fatalOnlyHook) Fire(e *logrus.Entry) error {
	line, err := e.String()
	if err != nil {
		return err
	}
	_, err = h.out.Write([]byte(line))
	return err
}
