package probe

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/SanjoDeundiak/process-probe/pkg/lib"
)

func newTestProbe(t *testing.T, launcher Launcher) (*Probe, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return New(launcher, Options{Stdout: &out, Stderr: &out}), &out
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestRunAvailableSuccess(t *testing.T) {
	launcher := NewFakeLauncher(true)
	launcher.RegisterCommand("ls", 0, "a.txt\n")
	p, out := newTestProbe(t, launcher)

	if err := p.Run("ls"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	expected := []string{
		"Command Processor available!",
		"a.txt",
		"Process creation successful. Return code: 0",
		fmt.Sprintf("The parent PID is %d", os.Getpid()),
	}
	got := lines(out.String())
	if len(got) != len(expected) {
		t.Fatalf("expected %d lines, got %q", len(expected), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("line %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestRunUnavailable(t *testing.T) {
	launcher := NewFakeLauncher(false)
	p, out := newTestProbe(t, launcher)

	if err := p.Run("ls"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if out.String() != "No Command Processor available!\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if calls := launcher.Calls(); len(calls) != 0 {
		t.Fatalf("expected no spawn, got %v", calls)
	}
}

func TestRunCommandFails(t *testing.T) {
	launcher := NewFakeLauncher(true)
	launcher.RegisterCommand("false", 1, "")
	p, out := newTestProbe(t, launcher)

	if err := p.Run("false"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := lines(out.String())
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	if got[1] != "Process creation failed. Return code: 1" {
		t.Fatalf("unexpected return code line %q", got[1])
	}
	if !strings.HasPrefix(got[2], "The parent PID is ") {
		t.Fatalf("unexpected PID line %q", got[2])
	}
}

func TestRunLaunchFailureReportsSentinel(t *testing.T) {
	launcher := NewFakeLauncher(true)
	p, out := newTestProbe(t, launcher)

	// Empty command lines never reach the launcher.
	if err := p.Run(" "); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Process creation failed. Return code: -1\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if calls := launcher.Calls(); len(calls) != 0 {
		t.Fatalf("expected no spawn, got %v", calls)
	}
}

func TestCheckAvailabilityIsIdempotent(t *testing.T) {
	for _, available := range []bool{true, false} {
		launcher := NewFakeLauncher(available)
		p, out := newTestProbe(t, launcher)

		for i := 0; i < 3; i++ {
			if got := p.CheckAvailability(); bool(got) != available {
				t.Fatalf("call %d: expected %v, got %v", i, available, got)
			}
		}
		if launcher.Checks() != 3 {
			t.Fatalf("expected 3 checks, got %d", launcher.Checks())
		}
		if len(launcher.Calls()) != 0 || out.Len() != 0 {
			t.Fatalf("availability check must not have side effects")
		}
	}
}

func TestSpawn(t *testing.T) {
	launcher := NewFakeLauncher(true)
	launcher.RegisterCommand("true", 0, "")
	p, _ := newTestProbe(t, launcher)

	first, err := p.Spawn("true")
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if first.ExitStatus != 0 || first.CommandLine != "true" {
		t.Fatalf("unexpected result %+v", first)
	}
	if first.EndTime.Before(first.StartTime) {
		t.Fatalf("end time before start time")
	}

	second, err := p.Spawn("no-such-command")
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if second.ExitStatus == 0 {
		t.Fatalf("expected non-zero status for unknown command")
	}
	if first.RunID == second.RunID {
		t.Fatalf("results must not be reused")
	}
}

func TestSpawnErrors(t *testing.T) {
	launcher := NewFakeLauncher(true)
	p, _ := newTestProbe(t, launcher)

	res, err := p.Spawn("")
	if !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
	if res.ExitStatus != lib.ExitStatusLaunchFailed {
		t.Fatalf("expected sentinel status, got %d", res.ExitStatus)
	}

	// Availability is not enforced by Spawn; the launcher decides.
	launcher.SetAvailable(false)
	res, err = p.Spawn("ls")
	if !errors.Is(err, ErrFacilityUnavailable) {
		t.Fatalf("expected ErrFacilityUnavailable, got %v", err)
	}
	if res.ExitStatus != lib.ExitStatusLaunchFailed {
		t.Fatalf("expected sentinel status, got %d", res.ExitStatus)
	}
}

func TestCurrentProcessID(t *testing.T) {
	p, _ := newTestProbe(t, NewFakeLauncher(true))

	pid := p.CurrentProcessID()
	if pid <= 0 {
		t.Fatalf("expected positive PID, got %d", pid)
	}
	if int(pid) != os.Getpid() {
		t.Fatalf("expected %d, got %d", os.Getpid(), pid)
	}
	if again := p.CurrentProcessID(); again != pid {
		t.Fatalf("PID changed from %d to %d", pid, again)
	}
}

func TestCurrentProcessIDMatchesProcfs(t *testing.T) {
	target, err := os.Readlink("/proc/self")
	if err != nil {
		t.Skip("Skipping: /proc/self not available")
	}

	p, _ := newTestProbe(t, NewFakeLauncher(true))
	if got := fmt.Sprint(p.CurrentProcessID()); got != target {
		t.Fatalf("expected %s, got %s", target, got)
	}
}
