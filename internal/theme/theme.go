// Package theme provides the Lip Gloss color palette and reusable styles
// for the TUI. It is a leaf package with no internal imports to avoid
// import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Series colors: cyan input, yellow output.
var (
	ColorInput  = lipgloss.Color("#06b6d4")
	ColorOutput = lipgloss.Color("#f59e0b")
)

// Status colors.
var (
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// UI chrome colors.
var (
	ColorBorder = lipgloss.Color("#4b5563")
	ColorDimmed = lipgloss.Color("#6b7280")
	ColorBright = lipgloss.Color("#f9fafb")
	ColorAccent = lipgloss.Color("#a855f7")
)

// Reusable styles.
var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleError = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	StyleInput = lipgloss.NewStyle().
			Foreground(ColorInput)

	StyleOutput = lipgloss.NewStyle().
			Foreground(ColorOutput)

	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
