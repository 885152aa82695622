// Package ui holds the lipgloss styles used for devrun's terminal output.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor = lipgloss.Color("#A78BFA") // Purple
	SuccessColor = lipgloss.Color("#10B981") // Green
	ErrorColor   = lipgloss.Color("#F87171") // Red
	MutedColor   = lipgloss.Color("#9CA3AF") // Gray

	// Convenience styles
	Primary = lipgloss.NewStyle().Foreground(PrimaryColor)
	Success = lipgloss.NewStyle().Foreground(SuccessColor)
	Error   = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)

	// TaskName styles a task name in listings and banners.
	TaskName = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// Title styles section headings.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)
)

// Enabled controls whether styles render escape sequences. When disabled,
// every helper returns its input unchanged.
var Enabled = true

// Heading renders a section heading.
func Heading(s string) string {
	if !Enabled {
		return s
	}
	return Title.Render(s)
}

// Task renders a task name.
func Task(name string) string {
	if !Enabled {
		return name
	}
	return TaskName.Render(name)
}

// Dim renders secondary text.
func Dim(s string) string {
	if !Enabled {
		return s
	}
	return Muted.Render(s)
}

// Errorf renders error text.
func Errorf(s string) string {
	if !Enabled {
		return s
	}
	return Error.Render(s)
}
