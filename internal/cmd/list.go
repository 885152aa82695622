package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devrun-cli/devrun/internal/ui"
	"github.com/devrun-cli/devrun/internal/util"
)

// descWidth caps task descriptions so long ones do not wrap the listing.
const descWidth = 60

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available tasks",
	Long: `List shows every task in the registry with its description and, for
composite tasks, the prerequisite chain it runs.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, registry, _, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()

	width := 0
	for _, name := range registry.Names() {
		if len(name) > width {
			width = len(name)
		}
	}

	fmt.Fprintln(out, ui.Heading("Tasks"))
	for _, t := range registry.Tasks() {
		padding := strings.Repeat(" ", width-len(t.Name))
		line := fmt.Sprintf("  %s%s  %s", ui.Task(t.Name), padding, util.TruncateANSI(t.Desc, descWidth))
		if len(t.Deps) > 0 {
			line += ui.Dim(fmt.Sprintf("  (runs: %s)", strings.Join(t.Deps, ", ")))
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
