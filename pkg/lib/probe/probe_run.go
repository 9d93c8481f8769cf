package probe

import (
	"fmt"

	"github.com/SanjoDeundiak/process-probe/pkg/lib"
)

// Run is the top-level driver: check, spawn commandLine, report the
// return code and the parent PID. Outcomes of the child are reported,
// never returned; only failures to write the report are.
func (p *Probe) Run(commandLine string) error {
	available := p.CheckAvailability()
	if err := p.ReportAvailability(available); err != nil {
		return err
	}
	if !available {
		return nil
	}

	result, err := p.Spawn(commandLine)
	if err != nil {
		p.logger.WithError(err).Warn("Process creation failed")
	}
	if err := p.ReportSpawn(result); err != nil {
		return err
	}

	return p.ReportPID(p.CurrentProcessID())
}

// ReportAvailability writes the availability line.
func (p *Probe) ReportAvailability(available lib.Availability) error {
	if !available {
		_, err := fmt.Fprintln(p.stdout, "No Command Processor available!")
		return err
	}
	_, err := fmt.Fprintln(p.stdout, "Command Processor available!")
	return err
}

// ReportSpawn writes the return code line, classified solely by equality to zero.
func (p *Probe) ReportSpawn(result *lib.SpawnResult) error {
	if result.ExitStatus.Success() {
		_, err := fmt.Fprintf(p.stdout, "Process creation successful. Return code: %d\n", result.ExitStatus)
		return err
	}
	_, err := fmt.Fprintf(p.stdout, "Process creation failed. Return code: %d\n", result.ExitStatus)
	return err
}

// ReportPID writes the parent PID line.
func (p *Probe) ReportPID(pid lib.ProcessIdentifier) error {
	_, err := fmt.Fprintf(p.stdout, "The parent PID is %d\n", pid)
	return err
}
