package inspect

import (
	"fmt"
	"strings"
	"time"

	"textpanel/ui/layout"
)

// Version is the snapshot format version.
const Version = "1.0.0"

// Snapshot is the state of one rendering at a point in time.
type Snapshot struct {
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	Terminal  TerminalInfo `json:"terminal"`
	Layout    LayoutInfo   `json:"layout"`

	// Components is the root of the component tree.
	Components *Node `json:"components"`

	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo holds terminal dimensions. Zero means unknown.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LayoutInfo is the sizing chosen for the terminal.
type LayoutInfo struct {
	Mode        string `json:"mode"`
	PanelWidth  int    `json:"panel_width"`
	ScrollLines int    `json:"scroll_lines"`
}

// BreakpointInfo describes one responsive width threshold.
type BreakpointInfo struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Active    bool   `json:"active"`
}

// now is swapped out in tests.
var now = time.Now

// NewSnapshot creates a snapshot stamped with the current time.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: now(),
		Version:   Version,
	}
}

// WithTerminal sets the terminal size.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithLayout records the computed constraints and which breakpoints they
// crossed.
func (s *Snapshot) WithLayout(c layout.Constraints) *Snapshot {
	s.Layout = LayoutInfo{
		Mode:        c.Mode.String(),
		PanelWidth:  c.PanelWidth,
		ScrollLines: c.ScrollLines,
	}

	known := c.TerminalWidth > 0
	s.Breakpoints = []BreakpointInfo{
		{Name: "narrow", Threshold: layout.NarrowWidth, Active: known && c.TerminalWidth < layout.NarrowWidth},
		{Name: "compact", Threshold: layout.CompactWidth, Active: known && c.TerminalWidth < layout.CompactWidth},
		{Name: "wide", Threshold: layout.WideWidth, Active: c.TerminalWidth >= layout.WideWidth},
	}
	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable rendition of the snapshot.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== Panel Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d\n", s.Terminal.Width, s.Terminal.Height))

	b.WriteString("\n--- Layout ---\n")
	b.WriteString(fmt.Sprintf("Mode: %s\n", s.Layout.Mode))
	b.WriteString(fmt.Sprintf("Panel width: %d\n", s.Layout.PanelWidth))
	b.WriteString(fmt.Sprintf("Scroll lines: %d\n", s.Layout.ScrollLines))

	if len(s.Breakpoints) > 0 {
		b.WriteString("\n--- Breakpoints ---\n")
		for _, bp := range s.Breakpoints {
			status := "[ ]"
			if bp.Active {
				status = "[X]"
			}
			b.WriteString(fmt.Sprintf("  %s %s (threshold: %d)\n", status, bp.Name, bp.Threshold))
		}
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}
	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" (%dx%d)\n", node.Bounds.Width, node.Bounds.Height))

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
