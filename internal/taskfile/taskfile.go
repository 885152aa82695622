// Package taskfile builds the task registry from static configuration: a
// YAML taskfile when one exists, the built-in default task set otherwise.
// The registry is constructed once at startup and never mutated.
//
// Taskfile format:
//
//	tasks:
//	  format:
//	    desc: Reformat sources
//	    cmds:
//	      - uv run black .
//	  all:
//	    desc: Format, lint, type-check, and test
//	    deps: [format, lint, type-check, test]
package taskfile

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/devrun-cli/devrun/internal/errors"
	"github.com/devrun-cli/devrun/internal/task"
)

// taskSpec is the YAML shape of a single task entry.
type taskSpec struct {
	Desc string   `yaml:"desc"`
	Cmds []string `yaml:"cmds"`
	Deps []string `yaml:"deps"`
	Dir  string   `yaml:"dir"`
}

// document is the YAML shape of a taskfile. Tasks is kept as a raw node so
// the declaration order of the mapping is preserved; decoding into a Go map
// would lose it.
type document struct {
	Tasks yaml.Node `yaml:"tasks"`
}

// Load builds the registry from the taskfile at path. If the file does not
// exist the built-in defaults are returned instead.
func Load(path string) (*task.Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading taskfile %s", path)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "taskfile %s", path)
	}
	return reg, nil
}

// Parse builds a validated registry from taskfile contents.
func Parse(data []byte) (*task.Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidTaskfile, "parsing yaml: %v", err)
	}

	if doc.Tasks.Kind == 0 || doc.Tasks.Tag == "!!null" {
		return nil, errors.Wrap(errors.ErrInvalidTaskfile, "no tasks defined")
	}
	if doc.Tasks.Kind != yaml.MappingNode {
		return nil, errors.Wrap(errors.ErrInvalidTaskfile, "tasks must be a mapping of name to task")
	}

	// Mapping node content alternates key, value.
	tasks := make([]task.Task, 0, len(doc.Tasks.Content)/2)
	for i := 0; i+1 < len(doc.Tasks.Content); i += 2 {
		key := doc.Tasks.Content[i]
		value := doc.Tasks.Content[i+1]

		var spec taskSpec
		if err := value.Decode(&spec); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidTaskfile, "task %q: %v", key.Value, err)
		}
		if len(spec.Cmds) == 0 && len(spec.Deps) == 0 {
			return nil, errors.Wrapf(errors.ErrInvalidTaskfile, "task %q has neither cmds nor deps", key.Value)
		}

		tasks = append(tasks, task.Task{
			Name:     key.Value,
			Desc:     spec.Desc,
			Commands: spec.Cmds,
			Deps:     spec.Deps,
			Dir:      spec.Dir,
		})
	}

	return task.NewRegistry(tasks)
}
