package probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/SanjoDeundiak/process-probe/pkg/lib"
	"golang.org/x/sys/unix"
)

// Launcher is the command-execution facility the probe talks to.
type Launcher interface {
	// Available reports whether the facility is present. It must not start anything.
	Available() bool
	// Run executes commandLine and blocks until it terminates.
	// A non-nil error means the facility itself could not be invoked,
	// in which case the status is lib.ExitStatusLaunchFailed.
	Run(commandLine string, stdout, stderr io.Writer) (lib.ExitStatus, error)
}

// ShellLauncher runs command lines through a shell, e.g. "/bin/sh -c".
type ShellLauncher struct {
	shell []string
}

var _ Launcher = (*ShellLauncher)(nil)

// NewShellLauncher creates a launcher that appends the command line to shell.
func NewShellLauncher(shell ...string) (*ShellLauncher, error) {
	if len(shell) == 0 || shell[0] == "" {
		return nil, errors.New("shell is required")
	}
	return &ShellLauncher{shell: append([]string(nil), shell...)}, nil
}

// Shell returns the shell invocation prefix.
func (l *ShellLauncher) Shell() []string {
	return append([]string(nil), l.shell...)
}

func (l *ShellLauncher) Available() bool {
	_, err := l.resolve()
	return err == nil
}

func (l *ShellLauncher) resolve() (string, error) {
	name := l.shell[0]
	if !strings.Contains(name, "/") {
		return exec.LookPath(name)
	}

	info, err := os.Stat(name)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", name)
	}
	if err := unix.Access(name, unix.X_OK); err != nil {
		return "", fmt.Errorf("%s is not executable: %w", name, err)
	}
	return name, nil
}

func (l *ShellLauncher) Run(commandLine string, stdout, stderr io.Writer) (lib.ExitStatus, error) {
	path, err := l.resolve()
	if err != nil {
		return lib.ExitStatusLaunchFailed, fmt.Errorf("%w: %v", ErrFacilityUnavailable, err)
	}

	args := append(append([]string(nil), l.shell[1:]...), commandLine)
	cmd := exec.Command(path, args...)
	// Streams are inherited from the caller as-is.
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return lib.ExitStatusLaunchFailed, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}

	err = cmd.Wait()
	if cmd.ProcessState == nil {
		return lib.ExitStatusLaunchFailed, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}

	status := exitStatusOf(cmd.ProcessState)
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// The child ran to completion but its output could not be copied.
		return status, fmt.Errorf("command finished with status %d: %w", status, err)
	}
	return status, nil
}

// exitStatusOf maps signal termination to 128+signal, as shells do.
func exitStatusOf(state *os.ProcessState) lib.ExitStatus {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return lib.ExitStatus(128 + int(ws.Signal()))
	}
	return lib.ExitStatus(state.ExitCode())
}
