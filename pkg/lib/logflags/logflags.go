// Package logflags configures the diagnostic loggers of the probe.
// Loggers are silent until Setup enables them.
package logflags

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	verbose = false
	out     io.Writer = os.Stderr
)

// Setup enables or disables diagnostic logging and selects where it goes.
// A nil writer keeps the current destination.
func Setup(enabled bool, w io.Writer) {
	verbose = enabled
	if w != nil {
		out = w
	}
}

// Verbose returns true if diagnostic logging is enabled.
func Verbose() bool {
	return verbose
}

func makeLogger(fields logrus.Fields) *logrus.Entry {
	logger := logrus.New()
	logger.Out = out
	logger.Level = logrus.DebugLevel
	if !verbose {
		logger.Out = io.Discard
		logger.Level = logrus.PanicLevel
	}
	return logger.WithFields(fields)
}

// ProbeLogger returns a logger for the probe package.
func ProbeLogger() *logrus.Entry {
	return makeLogger(logrus.Fields{"layer": "probe"})
}

// ServerLogger returns a logger for the probe server.
func ServerLogger() *logrus.Entry {
	return makeLogger(logrus.Fields{"layer": "server"})
}
