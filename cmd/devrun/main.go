package main

import (
	"fmt"
	"os"

	"github.com/devrun-cli/devrun/internal/cmd"
	"github.com/devrun-cli/devrun/internal/errors"
	"github.com/devrun-cli/devrun/internal/ui"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Errorf(err.Error()))
		os.Exit(errors.ExitCode(err))
	}
}
