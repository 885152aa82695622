package config

import (
	"slices"
	"strings"

	"github.com/devrun-cli/devrun/internal/errors"
)

// ValidLogLevels returns the list of valid log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found.
func (c *Config) Validate() []errors.ValidationError {
	var errs []errors.ValidationError

	errs = append(errs, c.validateShell()...)
	errs = append(errs, c.validateTask()...)
	errs = append(errs, c.validateLogging()...)
	errs = append(errs, c.validateWatch()...)

	return errs
}

// validateShell validates the shell setting.
func (c *Config) validateShell() []errors.ValidationError {
	var errs []errors.ValidationError

	if strings.TrimSpace(c.Shell) == "" {
		errs = append(errs, errors.ValidationError{
			Field:   "shell",
			Value:   c.Shell,
			Message: "must not be empty",
		})
	}

	return errs
}

// validateTask validates the TaskConfig.
func (c *Config) validateTask() []errors.ValidationError {
	var errs []errors.ValidationError

	if strings.TrimSpace(c.Task.File) == "" {
		errs = append(errs, errors.ValidationError{
			Field:   "task.file",
			Value:   c.Task.File,
			Message: "must not be empty",
		})
	}

	return errs
}

// validateLogging validates the LoggingConfig.
func (c *Config) validateLogging() []errors.ValidationError {
	var errs []errors.ValidationError

	level := strings.ToLower(c.Logging.Level)
	if !slices.Contains(ValidLogLevels(), level) {
		errs = append(errs, errors.ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of: " + strings.Join(ValidLogLevels(), ", "),
		})
	}

	return errs
}

// validateWatch validates the WatchConfig.
func (c *Config) validateWatch() []errors.ValidationError {
	var errs []errors.ValidationError

	if c.Watch.DebounceMs < 0 {
		errs = append(errs, errors.ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: "must not be negative",
		})
	}

	return errs
}
