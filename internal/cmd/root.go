// Package cmd wires the devrun command-line interface: the root command
// dispatches task names, `list` renders the registry, and `watch` re-runs a
// task on filesystem changes.
package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devrun-cli/devrun/internal/config"
	"github.com/devrun-cli/devrun/internal/errors"
	"github.com/devrun-cli/devrun/internal/execx"
	"github.com/devrun-cli/devrun/internal/logging"
	"github.com/devrun-cli/devrun/internal/runner"
	"github.com/devrun-cli/devrun/internal/task"
	"github.com/devrun-cli/devrun/internal/taskfile"
	"github.com/devrun-cli/devrun/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "devrun [task...]",
	Short: "Developer-workflow task runner",
	Long: `Devrun maps task names to fixed sequences of shell commands and runs
them in order, stopping at the first failure. Composite tasks sequence other
tasks as prerequisites (e.g. "all" runs format, lint, type-check, and test).

Tasks come from a devrun.yaml taskfile when present, otherwise from the
built-in developer-workflow defaults. Run "devrun list" to see them.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTasks,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./.devrun.yaml)")
	rootCmd.PersistentFlags().StringP("taskfile", "f", "", "taskfile path (default is ./devrun.yaml)")
	rootCmd.PersistentFlags().String("shell", "", "shell used to run commands")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable styled output")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("task.file", rootCmd.PersistentFlags().Lookup("taskfile"))
	_ = viper.BindPFlag("shell", rootCmd.PersistentFlags().Lookup("shell"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".devrun")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/devrun")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DEVRUN")
	// Replace dots with underscores for nested keys in env vars
	// e.g., DEVRUN_LOGGING_LEVEL for logging.level
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// setup loads the validated config, the registry, and a structured logger.
// The returned cleanup closes the logger.
func setup(cmd *cobra.Command) (*config.Config, *task.Registry, *logging.Logger, func(), error) {
	cfg := config.Get()
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, nil, nil, nil, errors.ValidationErrors(errs)
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || !cfg.Output.Color {
		ui.Enabled = false
	}

	registry, err := taskfile.Load(cfg.Task.File)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	log, err := logging.New(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "initializing logging")
	}

	return cfg, registry, log, func() { _ = log.Close() }, nil
}

// newDispatcher builds the dispatcher for the loaded config and registry.
func newDispatcher(cmd *cobra.Command, cfg *config.Config, registry *task.Registry, log *logging.Logger) *runner.Dispatcher {
	sh := execx.NewShellRunner(cfg.Shell)
	sh.Stdin = cmd.InOrStdin()
	sh.Stdout = cmd.OutOrStdout()
	sh.Stderr = cmd.ErrOrStderr()

	opts := []runner.Option{runner.WithLogger(log)}
	if cfg.Output.Echo {
		opts = append(opts, runner.WithEcho(cmd.OutOrStdout()))
	}
	if cwd, err := os.Getwd(); err == nil {
		opts = append(opts, runner.WithRoot(cwd))
	}

	return runner.New(registry, sh, opts...)
}

func runTasks(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	cfg, registry, log, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	d := newDispatcher(cmd, cfg, registry, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, name := range args {
		if err := d.Dispatch(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
