package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used throughout cfit.
type Logger = *logrus.Entry

// NewLogger returns a logger tagged with the given component name.
func NewLogger(component string) Logger {
	return logrus.WithField("component", component)
}

// SetLevel configures the global log level from its textual name
// (e.g. "debug", "info", "warn", "error").
func SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(parsed)
	return nil
}

func init() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
}
