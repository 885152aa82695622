package task

// Status represents the state of a single task invocation.
type Status string

const (
	// StatusNotStarted indicates the task has not been dispatched yet.
	StatusNotStarted Status = "not_started"

	// StatusRunning indicates the task's prerequisites or commands are
	// currently executing.
	StatusRunning Status = "running"

	// StatusSucceeded indicates every command of the task completed with
	// exit code zero.
	StatusSucceeded Status = "succeeded"

	// StatusFailed indicates a prerequisite or a command failed. The state
	// is terminal: nothing further runs for this invocation.
	StatusFailed Status = "failed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if this status represents a final state.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Task is a named, ordered sequence of shell commands plus optional
// prerequisite task names. A task with prerequisites and no commands of its
// own is a pure composite (e.g. "all").
type Task struct {
	// Name uniquely identifies the task within a registry.
	Name string

	// Desc is an optional one-line description shown by `devrun list`.
	Desc string

	// Commands are the shell command strings to execute, in order.
	Commands []string

	// Deps are prerequisite task names, executed in listed order before
	// this task's own commands.
	Deps []string

	// Dir is an optional working directory for the task's commands,
	// relative to the project root when not absolute.
	Dir string
}

// IsComposite returns true if the task only sequences other tasks.
func (t Task) IsComposite() bool {
	return len(t.Commands) == 0 && len(t.Deps) > 0
}
