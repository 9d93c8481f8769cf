package probe

import "github.com/SanjoDeundiak/process-probe/pkg/lib"

// CheckAvailability queries whether the command processor is present.
// Absence is a normal outcome, not an error.
func (p *Probe) CheckAvailability() lib.Availability {
	available := lib.Availability(p.launcher.Available())
	p.metrics.observeAvailability(available)
	p.logger.WithField("available", bool(available)).Debug("Checked command processor")
	return available
}
