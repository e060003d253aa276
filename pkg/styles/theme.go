package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used for console output.
type Theme struct {
	Service lipgloss.Style
	Command lipgloss.Style
	Path    lipgloss.Style
}

func DefaultTheme() Theme {
	primary := lipgloss.Color("#7C3AED") // Purple
	warning := lipgloss.Color("#EAB308") // Yellow
	muted := lipgloss.Color("#6B7280")   // Gray

	return Theme{
		Service: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Command: lipgloss.NewStyle().
			Foreground(warning),

		Path: lipgloss.NewStyle().
			Foreground(muted),
	}
}

var DefaultStyles = DefaultTheme()
