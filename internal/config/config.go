// Package config defines the devrun configuration, loaded through viper from
// a config file, environment variables with the DEVRUN_ prefix, and built-in
// defaults.
package config

import (
	"github.com/spf13/viper"
)

// Config represents the complete devrun configuration.
type Config struct {
	Shell   string        `mapstructure:"shell"`
	Task    TaskConfig    `mapstructure:"task"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// TaskConfig controls where task definitions come from.
type TaskConfig struct {
	// File is the taskfile path, relative to the working directory.
	// When the file does not exist the built-in default tasks are used.
	File string `mapstructure:"file"`
}

// LoggingConfig controls structured logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	Level string `mapstructure:"level"`
	// File is the log file path. Empty logs to stderr.
	File string `mapstructure:"file"`
}

// OutputConfig controls terminal output behavior.
type OutputConfig struct {
	// Echo prints each command before it runs, make-style.
	Echo bool `mapstructure:"echo"`
	// Color enables styled terminal output.
	Color bool `mapstructure:"color"`
}

// WatchConfig controls `devrun watch` behavior.
type WatchConfig struct {
	// DebounceMs is how long to coalesce filesystem events before
	// re-dispatching, in milliseconds.
	DebounceMs int `mapstructure:"debounce_ms"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Shell: "sh",
		Task: TaskConfig{
			File: "devrun.yaml",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Output: OutputConfig{
			Echo:  true,
			Color: true,
		},
		Watch: WatchConfig{
			DebounceMs: 250,
		},
	}
}

// SetDefaults registers the built-in defaults with viper so they apply even
// without a config file.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("shell", defaults.Shell)

	// Task defaults
	viper.SetDefault("task.file", defaults.Task.File)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)

	// Output defaults
	viper.SetDefault("output.echo", defaults.Output.Echo)
	viper.SetDefault("output.color", defaults.Output.Color)

	// Watch defaults
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
}

// Load unmarshals the current viper state into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration, falling back to the built-in
// defaults if unmarshaling fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}
