package handlers

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/eksstack/internal/plan"
)

// Colors matching the wizard palette.
var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorYellow = lipgloss.Color("#eab308")
	colorRed    = lipgloss.Color("#ef4444")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// paint renders text with style when the output is a terminal.
func paint(style lipgloss.Style, text string) string {
	if !colorEnabled() {
		return text
	}
	return style.Render(text)
}

// actionStyle colors a planned change by its action.
func actionStyle(a plan.Action) lipgloss.Style {
	switch a {
	case plan.ActionCreate:
		return okStyle
	case plan.ActionUpdate:
		return warnStyle
	case plan.ActionDelete:
		return errorStyle
	default:
		return dimStyle
	}
}
