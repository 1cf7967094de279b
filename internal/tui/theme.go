// Package tui provides the terminal styling and interactive input
// components of stackgen.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("208")
	ColorSecondary = lipgloss.Color("214")
	ColorSuccess   = lipgloss.Color("42")
	ColorError     = lipgloss.Color("196")
	ColorWarning   = lipgloss.Color("214")
	ColorMuted     = lipgloss.Color("240")
)

var (
	// TitleStyle is used for main titles and headings
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SelectedStyle is used for selected/active items
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Status prefixes
const (
	StatusSuccess = "[OK]"
	StatusError   = "[ERR]"
	StatusWarning = "[WARN]"
)

// RenderTitle renders text with the title style
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSuccess renders a success message with its status prefix
func RenderSuccess(text string) string {
	return SuccessStyle.Render(StatusSuccess + " " + text)
}

// RenderError renders an error message with its status prefix
func RenderError(text string) string {
	return ErrorStyle.Render(StatusError + " " + text)
}

// RenderWarning renders a warning message with its status prefix
func RenderWarning(text string) string {
	return WarningStyle.Render(StatusWarning + " " + text)
}

// RenderMuted renders text with the muted style
func RenderMuted(text string) string {
	return MutedStyle.Render(text)
}

// RenderListItem renders a list entry, highlighted when selected
func RenderListItem(text string, selected bool) string {
	if selected {
		return SelectedStyle.Render("> " + text)
	}
	return "  " + text
}
