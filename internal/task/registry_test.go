package task

import (
	"testing"

	"github.com/devrun-cli/devrun/internal/errors"
)

func sampleTasks() []Task {
	return []Task{
		{Name: "format", Desc: "Reformat sources", Commands: []string{"uv run black ."}},
		{Name: "lint", Desc: "Run the linter", Commands: []string{"uv run ruff check ."}},
		{Name: "test", Desc: "Run the test suite", Commands: []string{"uv run pytest"}},
		{Name: "all", Desc: "Run everything", Deps: []string{"format", "lint", "test"}},
	}
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(sampleTasks())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if reg.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", reg.Len())
	}

	// Declaration order is preserved.
	want := []string{"format", "lint", "test", "all"}
	got := reg.Names()
	for i, name := range want {
		if got[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], name)
		}
	}

	all, ok := reg.Get("all")
	if !ok {
		t.Fatal("Get(all) not found")
	}
	if !all.IsComposite() {
		t.Error("all should be a composite task")
	}
	if len(all.Deps) != 3 {
		t.Errorf("all has %d deps, want 3", len(all.Deps))
	}

	if reg.Has("install") {
		t.Error("Has(install) = true for absent task")
	}
}

func TestNewRegistryDuplicateName(t *testing.T) {
	tasks := append(sampleTasks(), Task{Name: "lint", Commands: []string{"echo dup"}})
	_, err := NewRegistry(tasks)
	if err == nil {
		t.Fatal("expected error for duplicate task name")
	}
	if !errors.Is(err, errors.ErrDuplicateTask) {
		t.Errorf("error = %v, want ErrDuplicateTask", err)
	}
}

func TestNewRegistryEmptyName(t *testing.T) {
	_, err := NewRegistry([]Task{{Name: "", Commands: []string{"true"}}})
	if err == nil {
		t.Fatal("expected error for empty task name")
	}
	if !errors.Is(err, errors.ErrInvalidTaskfile) {
		t.Errorf("error = %v, want ErrInvalidTaskfile", err)
	}
}

func TestNewRegistryUnknownPrerequisite(t *testing.T) {
	tasks := []Task{
		{Name: "all", Deps: []string{"format"}},
	}
	_, err := NewRegistry(tasks)
	if err == nil {
		t.Fatal("expected error for unknown prerequisite")
	}
	if !errors.Is(err, errors.ErrUnknownPrerequisite) {
		t.Errorf("error = %v, want ErrUnknownPrerequisite", err)
	}
}

func TestNewRegistryCycle(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
	}{
		{
			name: "self cycle",
			tasks: []Task{
				{Name: "a", Deps: []string{"a"}},
			},
		},
		{
			name: "two task cycle",
			tasks: []Task{
				{Name: "a", Deps: []string{"b"}},
				{Name: "b", Deps: []string{"a"}},
			},
		},
		{
			name: "cycle behind a valid task",
			tasks: []Task{
				{Name: "ok", Commands: []string{"true"}},
				{Name: "a", Deps: []string{"b"}},
				{Name: "b", Deps: []string{"c"}},
				{Name: "c", Deps: []string{"a"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.tasks)
			if err == nil {
				t.Fatal("expected cycle error")
			}
			if !errors.Is(err, errors.ErrDependencyCycle) {
				t.Errorf("error = %v, want ErrDependencyCycle", err)
			}
		})
	}
}

func TestNewRegistryDiamondIsNotACycle(t *testing.T) {
	tasks := []Task{
		{Name: "base", Commands: []string{"true"}},
		{Name: "left", Deps: []string{"base"}, Commands: []string{"true"}},
		{Name: "right", Deps: []string{"base"}, Commands: []string{"true"}},
		{Name: "top", Deps: []string{"left", "right"}},
	}
	if _, err := NewRegistry(tasks); err != nil {
		t.Fatalf("diamond dependencies should validate, got %v", err)
	}
}

func TestLookupsReturnIndependentCopies(t *testing.T) {
	reg, err := NewRegistry(sampleTasks())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	got, _ := reg.Get("format")
	got.Commands[0] = "mutated"
	again, _ := reg.Get("format")
	if again.Commands[0] != "uv run black ." {
		t.Errorf("Commands[0] = %q, registry state was mutated through Get", again.Commands[0])
	}

	tasks := reg.Tasks()
	for i := range tasks {
		if tasks[i].Name == "all" {
			tasks[i].Deps[0] = "mutated"
		}
	}
	all, _ := reg.Get("all")
	if all.Deps[0] != "format" {
		t.Errorf("Deps[0] = %q, registry state was mutated through Tasks", all.Deps[0])
	}
}

func TestStatus(t *testing.T) {
	if StatusNotStarted.IsTerminal() || StatusRunning.IsTerminal() {
		t.Error("not_started and running must not be terminal")
	}
	if !StatusSucceeded.IsTerminal() || !StatusFailed.IsTerminal() {
		t.Error("succeeded and failed must be terminal")
	}
	if StatusFailed.String() != "failed" {
		t.Errorf("String() = %q, want failed", StatusFailed.String())
	}
}

func TestMustRegistryPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRegistry should panic on invalid input")
		}
	}()
	MustRegistry([]Task{{Name: "a", Deps: []string{"a"}}})
}
