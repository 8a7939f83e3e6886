package tui

import (
	"github.com/charmbracelet/lipgloss"

	"presupuesto/internal/core"
)

// Flexoki dark palette.
var (
	colorText    = lipgloss.Color("#FFFCF0")
	colorMuted   = lipgloss.Color("#878580")
	colorDim     = lipgloss.Color("#575653")
	colorBorder  = lipgloss.Color("#403E3C")
	colorAccent  = lipgloss.Color("#3AA99F")
	colorGreen   = lipgloss.Color("#879A39")
	colorYellow  = lipgloss.Color("#D0A215")
	colorRed     = lipgloss.Color("#D14D41")
	colorSurface = lipgloss.Color("#282726")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle   = lipgloss.NewStyle().Foreground(colorText)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(colorAccent)

	selectedRowStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface)

	buttonStyle         = lipgloss.NewStyle().Foreground(colorText).Background(colorAccent).Padding(0, 2)
	disabledButtonStyle = lipgloss.NewStyle().Foreground(colorDim).Background(colorSurface).Padding(0, 2)

	exhaustedBadgeStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorRed).Bold(true).Padding(0, 1)
)

// statusStyle colors the remaining balance by its classification.
func statusStyle(s core.Status) lipgloss.Style {
	switch s {
	case core.StatusCritical:
		return lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	case core.StatusWarning:
		return lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	}
}
