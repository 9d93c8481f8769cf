package probe

import (
	"github.com/SanjoDeundiak/process-probe/pkg/lib"
	"golang.org/x/sys/unix"
)

// CurrentProcessID returns the identifier of the probing process.
func (p *Probe) CurrentProcessID() lib.ProcessIdentifier {
	return lib.ProcessIdentifier(unix.Getpid())
}
