// Package task defines the task model for devrun: the Task type and the
// immutable Registry mapping task names to tasks.
//
// A Registry is constructed once at startup, validated (unique names, known
// prerequisites, acyclic dependency graph), and never mutated afterwards.
// Lookups return copies so callers cannot alter registry state.
package task

import (
	"fmt"
	"slices"
	"sort"

	"github.com/devrun-cli/devrun/internal/errors"
)

// Registry is the immutable name-to-Task mapping available at dispatch time.
// It preserves the declaration order of tasks for listings.
type Registry struct {
	tasks map[string]Task
	order []string
}

// NewRegistry builds a Registry from the given tasks, preserving their order.
// It fails if any name is duplicated, a prerequisite references a task that
// does not exist, or the prerequisite relation contains a cycle.
func NewRegistry(tasks []Task) (*Registry, error) {
	r := &Registry{
		tasks: make(map[string]Task, len(tasks)),
		order: make([]string, 0, len(tasks)),
	}

	for _, t := range tasks {
		if t.Name == "" {
			return nil, errors.Wrap(errors.ErrInvalidTaskfile, "task with empty name")
		}
		if _, exists := r.tasks[t.Name]; exists {
			return nil, errors.Wrapf(errors.ErrDuplicateTask, "task %q", t.Name)
		}
		r.tasks[t.Name] = t
		r.order = append(r.order, t.Name)
	}

	for _, t := range tasks {
		for _, dep := range t.Deps {
			if _, ok := r.tasks[dep]; !ok {
				return nil, errors.Wrapf(errors.ErrUnknownPrerequisite, "task %q depends on %q", t.Name, dep)
			}
		}
	}

	if cycle := findCycle(r.tasks); len(cycle) > 0 {
		return nil, errors.Wrapf(errors.ErrDependencyCycle, "involving tasks %v", cycle)
	}

	return r, nil
}

// Get returns the task with the given name and whether it exists. The task
// is an independent copy; mutating it does not affect the registry.
func (r *Registry) Get(name string) (Task, bool) {
	t, ok := r.tasks[name]
	if !ok {
		return Task{}, false
	}
	return t.clone(), true
}

// Has returns true if a task with the given name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.tasks[name]
	return ok
}

// Names returns all task names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Tasks returns all tasks in declaration order, as independent copies.
func (r *Registry) Tasks() []Task {
	tasks := make([]Task, 0, len(r.order))
	for _, name := range r.order {
		tasks = append(tasks, r.tasks[name].clone())
	}
	return tasks
}

// clone returns a copy whose slices share no backing arrays with the
// registry's stored task.
func (t Task) clone() Task {
	t.Commands = slices.Clone(t.Commands)
	t.Deps = slices.Clone(t.Deps)
	return t
}

// Len returns the number of tasks in the registry.
func (r *Registry) Len() int {
	return len(r.order)
}

// findCycle detects a circular prerequisite chain using an in-degree BFS
// (Kahn's algorithm). If every task can be topologically ordered there is no
// cycle and nil is returned; otherwise the names left unprocessed are the
// cycle participants, returned sorted for stable error messages.
func findCycle(tasks map[string]Task) []string {
	inDegree := make(map[string]int, len(tasks))
	dependents := make(map[string][]string, len(tasks))
	for name := range tasks {
		inDegree[name] = 0
	}
	for name, t := range tasks {
		for _, dep := range t.Deps {
			if _, ok := tasks[dep]; ok {
				inDegree[name]++
				dependents[dep] = append(dependents[dep], name)
			}
		}
	}

	var queue []string
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}

	processed := 0
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		processed++
		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if processed == len(tasks) {
		return nil
	}

	var cycle []string
	for name, deg := range inDegree {
		if deg > 0 {
			cycle = append(cycle, name)
		}
	}
	sort.Strings(cycle)
	return cycle
}

// MustRegistry builds a Registry and panics on validation failure. It is
// intended for statically known task sets such as the built-in defaults.
func MustRegistry(tasks []Task) *Registry {
	r, err := NewRegistry(tasks)
	if err != nil {
		panic(fmt.Sprintf("task: invalid static registry: %v", err))
	}
	return r
}
