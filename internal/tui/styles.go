package tui

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	subtle    = lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"}
	highlight = lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"}
	warning   = lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight)

	// cellStyle keeps every glyph in a fixed-width grid cell
	cellStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center)

	cellSelectedStyle = cellStyle.
				Reverse(true)

	popoverStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1)

	codeStyle = lipgloss.NewStyle().
			Foreground(highlight)

	hintStyle = lipgloss.NewStyle().
			Foreground(subtle)

	statusStyle = lipgloss.NewStyle().
			Foreground(warning)

	previewStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(subtle)
)
