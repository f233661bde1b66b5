// Package style holds the colors and icons shared by the CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)

// Styles used to render package listings.
var (
	Heading = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Muted   = lipgloss.NewStyle().Foreground(Slate)
	Success = lipgloss.NewStyle().Foreground(Green)
	Failure = lipgloss.NewStyle().Foreground(Red)
	Notice  = lipgloss.NewStyle().Foreground(Yellow)
)
