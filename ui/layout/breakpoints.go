package layout

// Terminal width breakpoints
const (
	// NarrowWidth and below: the panel spans the whole terminal.
	NarrowWidth = 40

	// CompactWidth and below: the panel keeps a margin on each side.
	CompactWidth = 80

	// WideWidth and above: panels grow past the standard width.
	WideWidth = 120
)

// Panel widths chosen per mode
const (
	// PanelMargin is the gap kept on each side in compact mode.
	PanelMargin = 2

	// PanelStandardWidth is used when the terminal is comfortably wide or its
	// size is unknown.
	PanelStandardWidth = 70

	// PanelWideWidth is used on wide terminals.
	PanelWideWidth = 100
)

// Height constants
const (
	// DefaultScrollLines is used when the terminal height is unknown.
	DefaultScrollLines = 40
)
