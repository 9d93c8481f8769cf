package probe

import (
	"io"
	"sync"

	"github.com/SanjoDeundiak/process-probe/pkg/lib"
)

// unknownCommandStatus is what a POSIX shell returns for a missing executable.
const unknownCommandStatus lib.ExitStatus = 127

type fakeCommand struct {
	status lib.ExitStatus
	output string
}

// FakeLauncher is a test Launcher returning deterministic exit statuses
// for registered command lines. Unregistered command lines exit with 127.
type FakeLauncher struct {
	mu        sync.Mutex
	available bool
	commands  map[string]fakeCommand
	checks    int
	calls     []string
}

var _ Launcher = (*FakeLauncher)(nil)

// NewFakeLauncher creates a FakeLauncher with the given availability.
func NewFakeLauncher(available bool) *FakeLauncher {
	return &FakeLauncher{
		available: available,
		commands:  make(map[string]fakeCommand),
	}
}

// SetAvailable changes what Available reports.
func (f *FakeLauncher) SetAvailable(available bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.available = available
}

// RegisterCommand makes commandLine write output to stdout and exit with status.
func (f *FakeLauncher) RegisterCommand(commandLine string, status lib.ExitStatus, output string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands[commandLine] = fakeCommand{status: status, output: output}
}

func (f *FakeLauncher) Available() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return f.available
}

func (f *FakeLauncher) Run(commandLine string, stdout, stderr io.Writer) (lib.ExitStatus, error) {
	f.mu.Lock()
	f.calls = append(f.calls, commandLine)
	available := f.available
	command, ok := f.commands[commandLine]
	f.mu.Unlock()

	if !available {
		return lib.ExitStatusLaunchFailed, ErrFacilityUnavailable
	}
	if !ok {
		_, _ = io.WriteString(stderr, "sh: "+commandLine+": not found\n")
		return unknownCommandStatus, nil
	}
	if command.output != "" {
		if _, err := io.WriteString(stdout, command.output); err != nil {
			return command.status, err
		}
	}
	return command.status, nil
}

// Checks returns how many times Available was called.
func (f *FakeLauncher) Checks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checks
}

// Calls returns the command lines passed to Run, in order.
func (f *FakeLauncher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
