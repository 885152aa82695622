// Package runner implements the task dispatcher: it resolves a task name
// against the registry, runs prerequisite tasks recursively in declared
// order, then the task's own commands in order, halting at the first
// failure. Execution is single-threaded and fully sequential; each command
// runs to completion before the next begins.
package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/devrun-cli/devrun/internal/errors"
	"github.com/devrun-cli/devrun/internal/execx"
	"github.com/devrun-cli/devrun/internal/logging"
	"github.com/devrun-cli/devrun/internal/task"
)

// Dispatcher executes tasks from an immutable registry.
type Dispatcher struct {
	registry *task.Registry
	exec     execx.Runner
	log      *logging.Logger
	echo     io.Writer
	root     string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(log *logging.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// WithEcho makes the dispatcher print each command line to w before running
// it, make-style. Nil disables echoing.
func WithEcho(w io.Writer) Option {
	return func(d *Dispatcher) { d.echo = w }
}

// WithRoot sets the project root that relative task directories resolve
// against. Defaults to the process working directory.
func WithRoot(root string) Option {
	return func(d *Dispatcher) { d.root = root }
}

// New creates a Dispatcher over the given registry and command runner.
func New(registry *task.Registry, exec execx.Runner, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		exec:     exec,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// invocation tracks per-dispatch state. Statuses follow
// not_started -> running -> (succeeded | failed), terminal on first failure.
type invocation struct {
	statuses map[string]task.Status
}

func (inv *invocation) status(name string) task.Status {
	if s, ok := inv.statuses[name]; ok {
		return s
	}
	return task.StatusNotStarted
}

// Dispatch runs the named task: prerequisites first, in declared order, then
// the task's own commands in order. It returns nil only if everything exited
// zero. The first failure aborts the invocation; later commands and dependent
// tasks are not run.
func (d *Dispatcher) Dispatch(ctx context.Context, name string) error {
	inv := &invocation{statuses: make(map[string]task.Status)}
	return d.dispatch(ctx, inv, name)
}

func (d *Dispatcher) dispatch(ctx context.Context, inv *invocation, name string) error {
	t, ok := d.registry.Get(name)
	if !ok {
		return errors.NewUnknownTaskError(name, d.registry.Names())
	}

	// A prerequisite shared by several tasks runs once per invocation.
	// Failed tasks never reach this state: the invocation aborts first.
	if inv.status(name) == task.StatusSucceeded {
		return nil
	}

	inv.statuses[name] = task.StatusRunning
	log := d.log.WithTask(name)
	log.Info("task started")

	for _, dep := range t.Deps {
		if err := d.dispatch(ctx, inv, dep); err != nil {
			inv.statuses[name] = task.StatusFailed
			log.Error("prerequisite failed", "prerequisite", dep)
			return errors.NewPrerequisiteFailedError(name, dep, err)
		}
	}

	for _, command := range t.Commands {
		if err := d.runCommand(ctx, log, t, command); err != nil {
			inv.statuses[name] = task.StatusFailed
			return err
		}
	}

	inv.statuses[name] = task.StatusSucceeded
	log.Info("task succeeded")
	return nil
}

// runCommand executes one command of a task in the task's scoped working
// directory. The process working directory is never changed, so it is
// identical before and after on every exit path.
func (d *Dispatcher) runCommand(ctx context.Context, log *logging.Logger, t task.Task, command string) error {
	dir := t.Dir
	if dir != "" && !filepath.IsAbs(dir) && d.root != "" {
		dir = filepath.Join(d.root, dir)
	}

	if d.echo != nil {
		fmt.Fprintln(d.echo, command)
	}
	log.WithCommand(command).Debug("running command")

	err := d.exec.Run(ctx, execx.Spec{Command: command, Dir: dir})
	if err != nil {
		log.WithCommand(command).Error("command failed", "error", err.Error())
	}
	return err
}
