// Package probe checks for a command processor, spawns commands through it
// and reports the identity of the probing process.
package probe

import (
	"io"
	"os"

	"github.com/SanjoDeundiak/process-probe/pkg/lib/logflags"
	"github.com/sirupsen/logrus"
)

// Options tune a Probe. Zero values fall back to the process's own streams
// and no metrics.
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Metrics *Metrics
}

// Probe runs availability checks and spawns against a Launcher.
// It keeps no state between operations.
type Probe struct {
	launcher Launcher
	stdout   io.Writer
	stderr   io.Writer
	metrics  *Metrics
	logger   *logrus.Entry
}

// New creates a Probe backed by launcher.
func New(launcher Launcher, opts Options) *Probe {
	p := &Probe{
		launcher: launcher,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		metrics:  opts.Metrics,
		logger:   logflags.ProbeLogger(),
	}
	if p.stdout == nil {
		p.stdout = os.Stdout
	}
	if p.stderr == nil {
		p.stderr = os.Stderr
	}
	return p
}
