package probe

import (
	"strings"
	"time"

	"github.com/SanjoDeundiak/process-probe/pkg/lib"
)

// Spawn runs commandLine through the launcher and blocks until it exits.
// The result is always returned; on error its status is
// lib.ExitStatusLaunchFailed unless the command did run.
// A non-zero exit status alone is not an error.
func (p *Probe) Spawn(commandLine string) (*lib.SpawnResult, error) {
	result := &lib.SpawnResult{
		RunID:       lib.NewRunID(),
		CommandLine: commandLine,
		ExitStatus:  lib.ExitStatusLaunchFailed,
	}
	if strings.TrimSpace(commandLine) == "" {
		p.metrics.observeSpawn(result.ExitStatus, ErrEmptyCommand)
		return result, ErrEmptyCommand
	}

	log := p.logger.WithField("run_id", result.RunID)
	log.Debugf("Spawning %q", commandLine)

	result.StartTime = time.Now()
	status, err := p.launcher.Run(commandLine, p.stdout, p.stderr)
	result.EndTime = time.Now()
	result.ExitStatus = status

	p.metrics.observeSpawn(status, err)

	if err != nil {
		log.WithError(err).Debug("Spawn failed")
		return result, err
	}
	log.WithField("duration", result.EndTime.Sub(result.StartTime)).Debugf("Process finished with status %d", status)
	return result, nil
}
