package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/devrun-cli/devrun/internal/errors"
	"github.com/devrun-cli/devrun/internal/logging"
	"github.com/devrun-cli/devrun/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <task> [path...]",
	Short: "Re-run a task whenever watched paths change",
	Long: `Watch dispatches the task once, then re-dispatches it whenever a file
under the watched paths changes. Paths default to the current directory.
Task failures are reported and watching continues. Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// ignoredDirs are directory names that generate churn without ever being
// task inputs.
var ignoredDirs = map[string]bool{
	".git":          true,
	"__pycache__":   true,
	".pytest_cache": true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	".venv":         true,
	"node_modules":  true,
}

func runWatch(cmd *cobra.Command, args []string) error {
	name := args[0]
	paths := args[1:]
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, registry, log, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if !registry.Has(name) {
		return errors.NewUnknownTaskError(name, registry.Names())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := addRecursive(watcher, path); err != nil {
			return errors.Wrapf(err, "watching %s", path)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := newDispatcher(cmd, cfg, registry, log)
	errOut := cmd.ErrOrStderr()

	dispatch := func() {
		if err := d.Dispatch(ctx, name); err != nil {
			fmt.Fprintln(errOut, ui.Errorf(err.Error()))
		} else {
			fmt.Fprintln(errOut, ui.Dim(fmt.Sprintf("%s ok, watching %s", name, strings.Join(paths, " "))))
		}
	}

	dispatch()

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	return watchLoop(ctx, watcher, debounce, log, dispatch)
}

// watchLoop re-dispatches after filesystem events, coalescing bursts through
// the debounce timer. Newly created directories get watches of their own.
// It returns when the context is canceled or the watcher closes.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, log *logging.Logger, dispatch func()) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			// New directories need watches of their own.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err.Error())

		case <-timer.C:
			dispatch()
		}
	}
}

// addRecursive watches root and, when root is a directory, every directory
// below it, skipping the ignored cache and VCS directories. A file root is
// watched directly.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if path == root {
				return watcher.Add(path)
			}
			return nil
		}
		if ignoredDirs[d.Name()] {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
