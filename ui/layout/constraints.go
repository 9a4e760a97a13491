package layout

import "textpanel/panel"

// Constraints holds the panel dimensions computed for one terminal size.
type Constraints struct {
	TerminalWidth  int
	TerminalHeight int

	Mode Mode

	// PanelWidth is always within panel.MinWidth..panel.MaxWidth.
	PanelWidth int

	// ScrollLines is how many blank lines push old output off screen.
	ScrollLines int
}

// ComputeConstraints calculates panel dimensions for the given terminal
// size. Non-positive values mean the dimension is unknown.
func ComputeConstraints(width, height int) Constraints {
	return Constraints{
		TerminalWidth:  width,
		TerminalHeight: height,
		Mode:           DetermineMode(width),
		PanelWidth:     PanelWidth(width),
		ScrollLines:    ScrollLines(height),
	}
}

// PanelWidth returns the panel width that suits a terminal termWidth
// columns wide.
func PanelWidth(termWidth int) int {
	var w int
	switch DetermineMode(termWidth) {
	case ModeNarrow:
		w = termWidth
	case ModeCompact:
		w = termWidth - 2*PanelMargin
	case ModeWide:
		w = PanelWideWidth
	default:
		w = PanelStandardWidth
	}
	return clamp(w, panel.MinWidth, panel.MaxWidth)
}

// Fit returns preferred unless it would overflow a known terminal width,
// in which case the width PanelWidth picks is used instead.
func Fit(preferred, termWidth int) int {
	if termWidth > 0 && preferred > termWidth {
		return PanelWidth(termWidth)
	}
	return clamp(preferred, panel.MinWidth, panel.MaxWidth)
}

// ScrollLines returns the terminal height, or DefaultScrollLines when the
// height is unknown.
func ScrollLines(termHeight int) int {
	if termHeight <= 0 {
		return DefaultScrollLines
	}
	return termHeight
}

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
