package taskfile

import "github.com/devrun-cli/devrun/internal/task"

// defaultTasks is the built-in developer-workflow task set, used when no
// taskfile is present. It wraps the project's external tools: uv for
// dependency sync, black for formatting, ruff for linting, mypy for type
// checking, pytest for tests, and pre-commit for hook installation.
var defaultTasks = []task.Task{
	{
		Name:     "install",
		Desc:     "Sync project dependencies",
		Commands: []string{"uv sync"},
	},
	{
		Name:     "format",
		Desc:     "Reformat sources",
		Commands: []string{"uv run black ."},
	},
	{
		Name:     "lint",
		Desc:     "Run the linter",
		Commands: []string{"uv run ruff check ."},
	},
	{
		Name:     "type-check",
		Desc:     "Run the static type checker",
		Commands: []string{"uv run mypy src tests"},
	},
	{
		Name:     "test",
		Desc:     "Run the full test suite",
		Commands: []string{"uv run pytest"},
	},
	{
		Name:     "test-unit",
		Desc:     "Run unit tests only",
		Commands: []string{`uv run pytest -m "not integration"`},
	},
	{
		Name:     "test-integration",
		Desc:     "Run integration tests only",
		Commands: []string{"uv run pytest -m integration"},
	},
	{
		Name:     "pre-commit",
		Desc:     "Install the pre-commit hooks",
		Commands: []string{"uv run pre-commit install"},
	},
	{
		Name: "all",
		Desc: "Format, lint, type-check, and test",
		Deps: []string{"format", "lint", "type-check", "test"},
	},
	{
		Name: "clean",
		Desc: "Remove tool caches",
		Commands: []string{
			"find . -type d -name __pycache__ -exec rm -rf {} +",
			"rm -rf .pytest_cache .mypy_cache .ruff_cache .coverage",
		},
	},
}

// Default returns the built-in registry. The task set is statically known
// good, so construction cannot fail.
func Default() *task.Registry {
	return task.MustRegistry(defaultTasks)
}
