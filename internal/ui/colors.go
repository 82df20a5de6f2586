package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

var (
	// StyleOnline renders an online host marker.
	StyleOnline = lipgloss.NewStyle().Foreground(ColorSuccess)

	// StyleOffline renders an offline host marker.
	StyleOffline = lipgloss.NewStyle().Foreground(ColorError)

	// StyleDegraded renders a partially-up rollup.
	StyleDegraded = lipgloss.NewStyle().Foreground(ColorWarning)

	// StyleMuted renders secondary detail like cascade overrides.
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)

	// StyleHeader renders section headers.
	StyleHeader = lipgloss.NewStyle().Bold(true)
)
