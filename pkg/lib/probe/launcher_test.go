package probe

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/SanjoDeundiak/process-probe/pkg/lib"
)

func newShellLauncher(t *testing.T) *ShellLauncher {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("Skipping: sh not found")
	}
	l, err := NewShellLauncher("sh", "-c")
	if err != nil {
		t.Fatalf("NewShellLauncher failed: %v", err)
	}
	return l
}

func TestShellLauncherExitStatus(t *testing.T) {
	l := newShellLauncher(t)
	if !l.Available() {
		t.Fatalf("expected sh to be available")
	}

	tests := []struct {
		commandLine string
		expected    lib.ExitStatus
	}{
		{"true", 0},
		{"false", 1},
		{"exit 3", 3},
		{"definitely-not-a-real-executable-4f2a", 127},
		{"kill -9 $$", 128 + 9},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		status, err := l.Run(tt.commandLine, &stdout, &stderr)
		if err != nil {
			t.Fatalf("%q: Run failed: %v", tt.commandLine, err)
		}
		if status != tt.expected {
			t.Fatalf("%q: expected status %d, got %d", tt.commandLine, tt.expected, status)
		}
	}
}

func TestShellLauncherOutput(t *testing.T) {
	l := newShellLauncher(t)

	var stdout, stderr bytes.Buffer
	status, err := l.Run("echo out; echo err 1>&2", &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != 0 {
		t.Fatalf("expected status 0, got %d", status)
	}
	if stdout.String() != "out\n" {
		t.Fatalf("stdout: wrong value %q", stdout.String())
	}
	if stderr.String() != "err\n" {
		t.Fatalf("stderr: wrong value %q", stderr.String())
	}
}

func TestShellLauncherMissingShell(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-shell")
	l, err := NewShellLauncher(missing, "-c")
	if err != nil {
		t.Fatalf("NewShellLauncher failed: %v", err)
	}

	if l.Available() {
		t.Fatalf("expected missing shell to be unavailable")
	}
	if l.Available() {
		t.Fatalf("availability must be stable across calls")
	}

	status, err := l.Run("true", &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, ErrFacilityUnavailable) {
		t.Fatalf("expected ErrFacilityUnavailable, got %v", err)
	}
	if status != lib.ExitStatusLaunchFailed {
		t.Fatalf("expected sentinel status, got %d", status)
	}
}

func TestShellLauncherDirectoryIsNotAShell(t *testing.T) {
	l, err := NewShellLauncher(t.TempDir())
	if err != nil {
		t.Fatalf("NewShellLauncher failed: %v", err)
	}
	if l.Available() {
		t.Fatalf("expected a directory to be unavailable")
	}
}

func TestNewShellLauncherRequiresShell(t *testing.T) {
	if _, err := NewShellLauncher(); err == nil {
		t.Fatalf("expected error for empty shell")
	}
	if _, err := NewShellLauncher(""); err == nil {
		t.Fatalf("expected error for blank shell")
	}
}

func TestProbeWithShellLauncher(t *testing.T) {
	l := newShellLauncher(t)
	p, out := newTestProbe(t, l)

	if err := p.Run("exit 5"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := lines(out.String())
	if len(got) != 3 || got[1] != "Process creation failed. Return code: 5" {
		t.Fatalf("unexpected output %q", got)
	}
}
