package lib

import "time"

// ExitStatus is the status a spawned command terminated with.
// Zero is success; any other value is failure, with no further classification.
// It holds the decoded exit code (128+signal for a signal kill), not the raw
// wait status word that system(3) returns, so "exit 1" is 1 rather than 256.
type ExitStatus int

// ExitStatusLaunchFailed is returned when the command processor itself
// could not be invoked, so no command ran at all.
const ExitStatusLaunchFailed ExitStatus = -1

// Success reports whether the status denotes a successful command.
func (s ExitStatus) Success() bool {
	return s == 0
}

// ProcessIdentifier is the OS-assigned identifier of the probing process.
type ProcessIdentifier int

// Availability tells whether a command processor is present.
type Availability bool

// SpawnResult is a snapshot of one completed spawn. It is never reused.
type SpawnResult struct {
	RunID       string
	CommandLine string
	ExitStatus  ExitStatus
	StartTime   time.Time
	EndTime     time.Time
}
