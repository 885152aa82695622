// Package execx runs external commands for the dispatcher. Commands are
// handed to the configured shell one at a time and run to completion before
// the next begins; the standard streams are inherited unmodified.
package execx

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/devrun-cli/devrun/internal/errors"
)

// Spec describes a single command invocation.
type Spec struct {
	// Command is the shell command string to run.
	Command string

	// Dir is the working directory for the command. Empty means the
	// process working directory. The command gets its own directory; the
	// devrun process never changes directory itself.
	Dir string

	// Env is extra environment entries in KEY=VALUE form, appended to the
	// inherited environment.
	Env []string
}

// Runner executes a single command and returns nil on exit code zero.
// A non-zero exit surfaces as *errors.CommandFailedError.
type Runner interface {
	Run(ctx context.Context, spec Spec) error
}

// ShellRunner runs commands through a shell interpreter (`<shell> -c <cmd>`),
// forwarding the standard streams of the devrun process.
type ShellRunner struct {
	// Shell is the interpreter binary, e.g. "sh" or "bash".
	Shell string

	// Stdin, Stdout, Stderr default to the process streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner creates a ShellRunner for the given shell, wired to the
// process standard streams.
func NewShellRunner(shell string) *ShellRunner {
	if shell == "" {
		shell = "sh"
	}
	return &ShellRunner{
		Shell:  shell,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes the command and blocks until it exits. On a non-zero exit it
// returns a *errors.CommandFailedError carrying the command and exit code.
// If the context is canceled the child is killed and ErrCanceled is returned.
func (r *ShellRunner) Run(ctx context.Context, spec Spec) error {
	cmd := exec.CommandContext(ctx, r.Shell, "-c", spec.Command)
	cmd.Dir = spec.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	// Cancellation takes precedence over whatever exit status the kill
	// produced.
	if ctx.Err() != nil {
		return errors.Wrapf(errors.ErrCanceled, "command %q", spec.Command)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return errors.NewCommandFailedError(spec.Command, exitErr.ExitCode()).WithCause(err)
	}

	// The command could not be started at all (shell missing, bad Dir).
	// Report it with the shell's command-not-found status.
	return errors.NewCommandFailedError(spec.Command, errors.ExitUnknownTask).WithCause(err)
}
