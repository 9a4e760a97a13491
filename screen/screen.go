// Package screen replays rendered documents through a VT100 emulator and
// reports what a terminal would actually show.
package screen

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tonistiigi/vt100"

	"textpanel/log"
)

// oscSequenceRegex matches OSC 8 hyperlink sequences that vt100 doesn't handle.
var oscSequenceRegex = regexp.MustCompile(`\x1b\]8;[^;]*;[^\x1b\x07]*(?:\x1b\\|\x07)`)

// Screen is an emulated terminal of fixed size.
type Screen struct {
	vt     *vt100.VT100
	width  int
	height int
}

// New returns an empty screen.
func New(height, width int) *Screen {
	return &Screen{
		vt:     vt100.NewVT100(height, width),
		width:  width,
		height: height,
	}
}

// Write feeds output to the emulator. Bare line feeds are treated as
// carriage return plus line feed, as a cooked terminal would.
func (s *Screen) Write(p []byte) (int, error) {
	cleaned := oscSequenceRegex.ReplaceAll(p, nil)
	cleaned = []byte(strings.ReplaceAll(strings.ReplaceAll(string(cleaned), "\r\n", "\n"), "\n", "\r\n"))

	if _, err := s.vt.Write(cleaned); err != nil {
		return 0, fmt.Errorf("terminal emulation failed: %w", err)
	}
	return len(p), nil
}

// Row returns the characters shown on row y with trailing blanks removed.
func (s *Screen) Row(y int) string {
	last := s.lastCell(y)
	var sb strings.Builder
	for x := 0; x <= last; x++ {
		r := s.vt.Content[y][x]
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// RowWidth is the number of cells up to the last non-blank one.
func (s *Screen) RowWidth(y int) int {
	return s.lastCell(y) + 1
}

func (s *Screen) lastCell(y int) int {
	for x := s.width - 1; x >= 0; x-- {
		if c := s.vt.Content[y][x]; c != ' ' && c != 0 {
			return x
		}
	}
	return -1
}

// Colored reports whether any cell on row y has a non-default color.
func (s *Screen) Colored(y int) bool {
	for x := 0; x < s.width; x++ {
		f := s.vt.Format[y][x]
		if !isDefault(f.Fg) || !isDefault(f.Bg) {
			return true
		}
	}
	return false
}

// Render returns the screen content re-encoded with ANSI escape codes.
func (s *Screen) Render() string {
	var sb strings.Builder
	sb.Grow(s.width * s.height * 2)

	var prevFormat vt100.Format
	firstCell := true

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteString("\n")
		}

		last := s.lastCell(y)
		for x := 0; x <= last; x++ {
			char := s.vt.Content[y][x]
			format := s.vt.Format[y][x]

			if firstCell || !formatsEqual(format, prevFormat) {
				sb.WriteString(formatToANSI(format))
				prevFormat = format
				firstCell = false
			}

			if char == 0 {
				char = ' '
			}
			sb.WriteRune(char)
		}
	}

	sb.WriteString("\x1b[0m")
	return sb.String()
}

func formatsEqual(a, b vt100.Format) bool {
	return a.Fg == b.Fg &&
		a.Bg == b.Bg &&
		a.Intensity == b.Intensity &&
		a.Underscore == b.Underscore &&
		a.Conceal == b.Conceal &&
		a.Negative == b.Negative &&
		a.Blink == b.Blink &&
		a.Inverse == b.Inverse
}

func formatToANSI(f vt100.Format) string {
	codes := []string{"0"}

	switch f.Intensity {
	case vt100.Bright:
		codes = append(codes, "1")
	case vt100.Dim:
		codes = append(codes, "2")
	}
	if f.Underscore {
		codes = append(codes, "4")
	}
	if f.Blink {
		codes = append(codes, "5")
	}
	if f.Inverse {
		codes = append(codes, "7")
	}
	if f.Conceal {
		codes = append(codes, "8")
	}
	if fg := colorToANSI(f.Fg, true); fg != "" {
		codes = append(codes, fg)
	}
	if bg := colorToANSI(f.Bg, false); bg != "" {
		codes = append(codes, bg)
	}

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

func isDefault(c color.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0 && c.A == 0
}

func colorToANSI(c color.RGBA, foreground bool) string {
	if isDefault(c) {
		return ""
	}
	if foreground {
		return fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B)
	}
	return fmt.Sprintf("48;2;%d;%d;%d", c.R, c.G, c.B)
}

// Row describes one emulated line of a checked document.
type Row struct {
	Index   int
	Width   int
	Text    string
	Colored bool
}

// Report is the result of Check.
type Report struct {
	Width      int
	Rows       []Row
	Mismatches []Row
	// Screen holds the emulated terminal the text was played on.
	Screen *Screen
}

// OK reports whether every row had the expected width.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// String summarises the report, one line per mismatched row.
func (r *Report) String() string {
	if r.OK() {
		return fmt.Sprintf("%d rows, all %d columns wide", len(r.Rows), r.Width)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d of %d rows are not %d columns wide:\n", len(r.Mismatches), len(r.Rows), r.Width)
	for _, row := range r.Mismatches {
		fmt.Fprintf(&sb, "  row %d: %d columns: %s\n", row.Index+1, row.Width, row.Text)
	}
	return sb.String()
}

// Check plays text on an emulated terminal wide enough for every line and
// reports every row whose visible width is not width. Color codes are
// interpreted, so escape sequences never count toward the width.
func Check(text string, width int) (*Report, error) {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if text == "" {
		lines = nil
	}

	cols := width
	for _, line := range lines {
		// rune count bounds the cell count, so no row wraps
		if n := utf8.RuneCountInString(line); n > cols {
			cols = n
		}
	}

	s := New(len(lines)+1, cols+1)
	if _, err := s.Write([]byte(text)); err != nil {
		return nil, err
	}

	report := &Report{Width: width, Screen: s}
	for y := range lines {
		row := Row{Index: y, Width: s.RowWidth(y), Text: s.Row(y), Colored: s.Colored(y)}
		report.Rows = append(report.Rows, row)
		if row.Width != width {
			report.Mismatches = append(report.Mismatches, row)
		}
	}
	log.InfoLog.Printf("checked %d rows at width %d: %d mismatched", len(report.Rows), width, len(report.Mismatches))
	return report, nil
}
