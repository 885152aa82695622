// Package errors provides centralized error definitions and error handling
// utilities for devrun. It defines the dispatch error taxonomy, error
// constructors with context wrapping, and the mapping from errors to process
// exit codes.
//
// # Error Types
//
// Dispatch errors represent the ways a task invocation can fail:
//   - UnknownTaskError: the requested task name is not in the registry
//   - CommandFailedError: an invoked external command returned non-zero
//   - PrerequisiteFailedError: a composed task's dependency failed
//
// Validation errors represent bad static configuration:
//   - ValidationError: an invalid registry or config value
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewUnknownTaskError("fromat", registry.Names())
//	err := errors.NewCommandFailedError("uv run black .", 1)
//	err := errors.NewPrerequisiteFailedError("all", "format", cause)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrCommandFailed) { ... }
//
//	var cmdErr *errors.CommandFailedError
//	if errors.As(err, &cmdErr) { ... }
//
// Mapping to a process exit status:
//
//	os.Exit(errors.ExitCode(err))
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Process exit codes produced by ExitCode.
const (
	// ExitOK is returned when dispatch succeeds.
	ExitOK = 0
	// ExitFailure is the fallback for errors with no specific mapping.
	ExitFailure = 1
	// ExitInvalidConfig is returned for registry or configuration errors.
	ExitInvalidConfig = 2
	// ExitUnknownTask is returned when the requested task does not exist,
	// by analogy with the shell's command-not-found status.
	ExitUnknownTask = 127
	// ExitInterrupted is returned when the operator cancels the run.
	ExitInterrupted = 130
)

// Dispatch sentinel errors
var (
	// ErrTaskNotFound indicates that a task name is not in the registry.
	ErrTaskNotFound = New("task not found")
	// ErrCommandFailed indicates that an external command returned non-zero.
	ErrCommandFailed = New("command failed")
	// ErrPrerequisiteFailed indicates that a composed task's dependency failed.
	ErrPrerequisiteFailed = New("prerequisite failed")
	// ErrCanceled indicates that the run was interrupted by the operator.
	ErrCanceled = New("run canceled")
)

// Registry sentinel errors
var (
	// ErrDuplicateTask indicates two registry entries share a name.
	ErrDuplicateTask = New("duplicate task name")
	// ErrUnknownPrerequisite indicates a dependency on a task that does not exist.
	ErrUnknownPrerequisite = New("unknown prerequisite")
	// ErrDependencyCycle indicates a circular prerequisite chain.
	ErrDependencyCycle = New("dependency cycle detected")
	// ErrInvalidTaskfile indicates the taskfile could not be parsed.
	ErrInvalidTaskfile = New("invalid taskfile")
)

// -----------------------------------------------------------------------------
// Dispatch Errors
// -----------------------------------------------------------------------------

// UnknownTaskError reports a task name that is not in the registry.
// It carries the set of valid names so callers can print them.
//
// Example:
//
//	err := errors.NewUnknownTaskError("fromat", []string{"format", "lint"})
//	fmt.Println(err) // `unknown task "fromat" (valid tasks: format, lint)`
type UnknownTaskError struct {
	Name  string
	Valid []string
}

// NewUnknownTaskError creates a new UnknownTaskError.
func NewUnknownTaskError(name string, valid []string) *UnknownTaskError {
	return &UnknownTaskError{Name: name, Valid: valid}
}

// Error returns the formatted error message.
func (e *UnknownTaskError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("unknown task %q", e.Name)
	}
	return fmt.Sprintf("unknown task %q (valid tasks: %s)", e.Name, strings.Join(e.Valid, ", "))
}

// Is reports whether this error matches the target.
func (e *UnknownTaskError) Is(target error) bool {
	if _, ok := target.(*UnknownTaskError); ok {
		return true
	}
	return target == ErrTaskNotFound
}

// Unwrap returns the sentinel this error specializes.
func (e *UnknownTaskError) Unwrap() error {
	return ErrTaskNotFound
}

// CommandFailedError reports an external command that exited non-zero.
//
// Example:
//
//	err := errors.NewCommandFailedError("uv run pytest", 2)
//	fmt.Println(err) // `command "uv run pytest" failed with exit code 2`
type CommandFailedError struct {
	Command  string
	ExitCode int
	cause    error
}

// NewCommandFailedError creates a new CommandFailedError.
func NewCommandFailedError(command string, exitCode int) *CommandFailedError {
	return &CommandFailedError{Command: command, ExitCode: exitCode}
}

// WithCause attaches the underlying process error.
func (e *CommandFailedError) WithCause(cause error) *CommandFailedError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
}

// Is reports whether this error matches the target.
func (e *CommandFailedError) Is(target error) bool {
	if _, ok := target.(*CommandFailedError); ok {
		return true
	}
	if target == ErrCommandFailed {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Unwrap returns the underlying process error, if any.
func (e *CommandFailedError) Unwrap() error {
	return e.cause
}

// PrerequisiteFailedError reports a composite task whose dependency failed.
// It wraps the dependency's failure so the original command and exit code
// remain reachable through errors.As.
//
// Example:
//
//	err := errors.NewPrerequisiteFailedError("all", "format", cmdErr)
//	fmt.Println(err) // `task "all": prerequisite "format" failed: ...`
type PrerequisiteFailedError struct {
	Task         string
	Prerequisite string
	cause        error
}

// NewPrerequisiteFailedError creates a new PrerequisiteFailedError.
func NewPrerequisiteFailedError(task, prerequisite string, cause error) *PrerequisiteFailedError {
	return &PrerequisiteFailedError{Task: task, Prerequisite: prerequisite, cause: cause}
}

// Error returns the formatted error message.
func (e *PrerequisiteFailedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("task %q: prerequisite %q failed: %v", e.Task, e.Prerequisite, e.cause)
	}
	return fmt.Sprintf("task %q: prerequisite %q failed", e.Task, e.Prerequisite)
}

// Is reports whether this error matches the target.
func (e *PrerequisiteFailedError) Is(target error) bool {
	if _, ok := target.(*PrerequisiteFailedError); ok {
		return true
	}
	if target == ErrPrerequisiteFailed {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Unwrap returns the dependency's failure.
func (e *PrerequisiteFailedError) Unwrap() error {
	return e.cause
}

// -----------------------------------------------------------------------------
// Validation Errors
// -----------------------------------------------------------------------------

// ValidationError represents a single invalid registry or configuration value.
type ValidationError struct {
	Field   string // The field path (e.g., "tasks.all.deps", "logging.level")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// -----------------------------------------------------------------------------
// Exit Code Mapping
// -----------------------------------------------------------------------------

// ExitCode maps an error to the process exit status documented for devrun:
// nil maps to 0, an unknown task maps to ExitUnknownTask, a failed command
// (directly or through any chain of failed prerequisites) maps to the failing
// command's own exit code, cancellation maps to ExitInterrupted, and registry
// or configuration errors map to ExitInvalidConfig. Anything else maps to
// ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var unknown *UnknownTaskError
	if As(err, &unknown) {
		return ExitUnknownTask
	}

	var cmdErr *CommandFailedError
	if As(err, &cmdErr) {
		return cmdErr.ExitCode
	}

	if Is(err, ErrCanceled) {
		return ExitInterrupted
	}

	var single ValidationError
	var many ValidationErrors
	if As(err, &single) || As(err, &many) {
		return ExitInvalidConfig
	}
	if Is(err, ErrDuplicateTask) || Is(err, ErrUnknownPrerequisite) ||
		Is(err, ErrDependencyCycle) || Is(err, ErrInvalidTaskfile) {
		return ExitInvalidConfig
	}

	return ExitFailure
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "loading taskfile")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "dispatching task %s", name)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
