package probe

import "errors"

var (
	// ErrFacilityUnavailable means the command processor could not be found.
	ErrFacilityUnavailable = errors.New("command processor unavailable")
	// ErrLaunchFailed means the command processor exists but could not be started.
	ErrLaunchFailed = errors.New("failed to launch command processor")
	// ErrEmptyCommand is returned by Spawn for a blank command line.
	ErrEmptyCommand = errors.New("command line is required")
)
