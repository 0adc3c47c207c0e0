package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for TUI components and diagnostic rendering.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				MarginLeft(4)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	LocationStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Symbols for visual feedback.
const (
	SymbolSelected   = "●"
	SymbolUnselected = "○"
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolBullet     = "•"
)

// RenderDiagnostic formats a single diagnostic for terminal display.
// Color is only meaningful when the caller has already decided the output is
// a terminal; lipgloss degrades to plain text otherwise.
func RenderDiagnostic(d viewgen.Diagnostic) string {
	var label string
	switch d.Severity {
	case viewgen.SeverityError:
		label = ErrorStyle.Render(SymbolCross + " error")
	default:
		label = WarningStyle.Render("! warning")
	}

	out := label + " " + d.Message
	if d.Location != "" {
		out += " " + LocationStyle.Render("("+d.Location+")")
	}
	return out
}
