package execx

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/devrun-cli/devrun/internal/errors"
)

func newTestRunner() (*ShellRunner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	r := NewShellRunner("sh")
	r.Stdin = strings.NewReader("")
	r.Stdout = &stdout
	r.Stderr = &stderr
	return r, &stdout, &stderr
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRunSuccess(t *testing.T) {
	skipWithoutShell(t)
	r, stdout, _ := newTestRunner()

	if err := r.Run(context.Background(), Spec{Command: "echo hello"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "hello" {
		t.Errorf("stdout = %q, want %q", got, "hello")
	}
}

func TestRunNonZeroExit(t *testing.T) {
	skipWithoutShell(t)
	r, _, _ := newTestRunner()

	err := r.Run(context.Background(), Spec{Command: "exit 7"})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}

	var cmdErr *errors.CommandFailedError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error = %T, want *errors.CommandFailedError", err)
	}
	if cmdErr.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", cmdErr.ExitCode)
	}
	if cmdErr.Command != "exit 7" {
		t.Errorf("Command = %q, want %q", cmdErr.Command, "exit 7")
	}
}

func TestRunDirScopesCommandOnly(t *testing.T) {
	skipWithoutShell(t)
	r, stdout, _ := newTestRunner()

	before, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}

	dir := t.TempDir()
	if err := r.Run(context.Background(), Spec{Command: "pwd", Dir: dir}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := strings.TrimSpace(stdout.String())
	// Resolve symlinks: on some systems TempDir is behind a symlink.
	wantReal, _ := filepath.EvalSymlinks(dir)
	gotReal, _ := filepath.EvalSymlinks(got)
	if gotReal != wantReal {
		t.Errorf("command ran in %q, want %q", gotReal, wantReal)
	}

	after, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if after != before {
		t.Errorf("process working directory changed from %q to %q", before, after)
	}
}

func TestRunEnvAppended(t *testing.T) {
	skipWithoutShell(t)
	r, stdout, _ := newTestRunner()

	err := r.Run(context.Background(), Spec{
		Command: "printf '%s' \"$DEVRUN_PROBE\"",
		Env:     []string{"DEVRUN_PROBE=42"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stdout.String() != "42" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "42")
	}
}

func TestRunCanceled(t *testing.T) {
	skipWithoutShell(t)
	r, _, _ := newTestRunner()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := r.Run(ctx, Spec{Command: "sleep 10"})
	if err == nil {
		t.Fatal("expected error for canceled command")
	}
	if !errors.Is(err, errors.ErrCanceled) {
		t.Errorf("error = %v, want ErrCanceled", err)
	}
	if got := errors.ExitCode(err); got != errors.ExitInterrupted {
		t.Errorf("ExitCode = %d, want %d", got, errors.ExitInterrupted)
	}
}

func TestNewShellRunnerDefaultsShell(t *testing.T) {
	r := NewShellRunner("")
	if r.Shell != "sh" {
		t.Errorf("Shell = %q, want sh", r.Shell)
	}
}
