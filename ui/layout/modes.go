// Package layout picks panel dimensions from the terminal size.
package layout

// Mode is the sizing rule applied for a terminal width.
type Mode int

const (
	// ModeStandard is for terminals between CompactWidth and WideWidth, and
	// for terminals of unknown size.
	ModeStandard Mode = iota

	// ModeWide is for terminals at least WideWidth columns wide.
	ModeWide

	// ModeCompact is for terminals between NarrowWidth and CompactWidth.
	ModeCompact

	// ModeNarrow is for terminals narrower than NarrowWidth.
	ModeNarrow
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeWide:
		return "wide"
	case ModeStandard:
		return "standard"
	case ModeCompact:
		return "compact"
	case ModeNarrow:
		return "narrow"
	default:
		return "unknown"
	}
}

// DetermineMode returns the mode for a terminal width. A non-positive width
// means the size is unknown.
func DetermineMode(width int) Mode {
	switch {
	case width <= 0:
		return ModeStandard
	case width < NarrowWidth:
		return ModeNarrow
	case width < CompactWidth:
		return ModeCompact
	case width < WideWidth:
		return ModeStandard
	default:
		return ModeWide
	}
}
