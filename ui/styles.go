package ui

import (
	"github.com/charmbracelet/lipgloss"

	"textpanel/panel"
)

// Semantic color palette for command output and the interactive picker.
// Panels themselves are colored with the sixteen named colors instead.
var (
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#EF4444"}

	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
)

// Status icons, so status is readable without color
const (
	IconSuccess = "+"
	IconWarning = "!"
	IconError   = "×"
)

// StatusStyles contains pre-built styles for each status type
var StatusStyles = struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Success: lipgloss.NewStyle().Foreground(StatusSuccess),
	Warning: lipgloss.NewStyle().Foreground(StatusWarning),
	Error:   lipgloss.NewStyle().Foreground(StatusError).Bold(true),
}

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Muted    lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
}{
	Muted:    lipgloss.NewStyle().Foreground(TextMuted),
	Title:    lipgloss.NewStyle().Bold(true).Foreground(Primary),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(Primary),
}

// Status renders message with the icon and color of kind.
func Status(kind panel.Status, message string) string {
	switch kind {
	case panel.StatusSuccess:
		return StatusStyles.Success.Render(IconSuccess + " " + message)
	case panel.StatusWarning:
		return StatusStyles.Warning.Render(IconWarning + " " + message)
	default:
		return StatusStyles.Error.Render(IconError + " " + message)
	}
}

// Spacing constants for consistent layout
const (
	SpaceXS = 1
	SpaceSM = 2
)
