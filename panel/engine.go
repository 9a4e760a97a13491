// Package panel renders fixed-width bordered text panels.
//
// Every single-line primitive returns a string whose printable width is
// exactly the engine width, borders included. Multi-line primitives return
// newline-joined blocks where each line satisfies the same rule. Inputs that
// would break the rule fail with ErrFit; nothing is ever truncated.
//
//	e, _ := panel.New(20)
//	top := e.TopWall()          // ╔══════════════════╗
//	head, _ := e.Header("Menu") // ║       Menu       ║
package panel

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/muesli/ansi"
)

// Width bounds
const (
	MinWidth     = 2
	MaxWidth     = 200
	DefaultWidth = 70
)

// minOptionPadding is the smallest half-gap that leaves room for a bracketed index.
const minOptionPadding = 6

// Engine holds the panel width and glyph set used by every primitive.
type Engine struct {
	width  int
	glyphs Glyphs
}

// New returns an engine drawing with the default glyphs.
func New(width int) (*Engine, error) {
	return NewWithGlyphs(width, DefaultGlyphs())
}

// NewWithGlyphs returns an engine drawing with g.
func NewWithGlyphs(width int, g Glyphs) (*Engine, error) {
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Engine{width: width, glyphs: g}, nil
}

// ValidateWidth checks MinWidth <= width <= MaxWidth.
func ValidateWidth(width int) error {
	if width < MinWidth || width > MaxWidth {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrWidth, width, MinWidth, MaxWidth)
	}
	return nil
}

// Width returns the configured panel width.
func (e *Engine) Width() int {
	return e.width
}

// SetWidth changes the panel width for later primitives.
func (e *Engine) SetWidth(width int) error {
	if err := ValidateWidth(width); err != nil {
		return err
	}
	e.width = width
	return nil
}

// Glyphs returns a copy of the glyph set.
func (e *Engine) Glyphs() Glyphs {
	return e.glyphs
}

// SetGlyphs replaces the glyph set for later primitives.
func (e *Engine) SetGlyphs(g Glyphs) error {
	if err := g.Validate(); err != nil {
		return err
	}
	e.glyphs = g
	return nil
}

// TextWidth is the number of columns s occupies, ignoring escape sequences.
func TextWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}

// ValidateText rejects control characters other than an ESC that opens a
// CSI sequence. Tabs, line breaks and the like measure as zero columns but
// move the cursor, so a line holding them could not keep the panel width.
func ValidateText(s string) error {
	for i, r := range s {
		if !unicode.IsControl(r) {
			continue
		}
		if r == '\x1b' && strings.HasPrefix(s[i+1:], "[") {
			continue
		}
		return fmt.Errorf("%w: control character %q in %q", ErrInvalid, r, s)
	}
	return nil
}

func (e *Engine) fill(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(e.glyphs.Fill, n)
}

func (e *Engine) interior() int {
	return e.width - 2
}

// Separator returns n repetitions of material.
func (e *Engine) Separator(material string, n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: separator length %d is negative", ErrInvalid, n)
	}
	if err := ValidateText(material); err != nil {
		return "", err
	}
	if TextWidth(material) != 1 {
		return "", fmt.Errorf("%w: separator material %q must be one column", ErrInvalid, material)
	}
	return strings.Repeat(material, n), nil
}

// Rule is a full-width separator made of the default separator glyph.
func (e *Engine) Rule() string {
	return strings.Repeat(e.glyphs.Separator, e.width)
}

// TopWall returns the ceiling of a panel.
func (e *Engine) TopWall() string {
	return e.glyphs.TopLeft + strings.Repeat(e.glyphs.Horizontal, e.interior()) + e.glyphs.TopRight
}

// BottomWall returns the floor of a panel.
func (e *Engine) BottomWall() string {
	return e.glyphs.BottomLeft + strings.Repeat(e.glyphs.Horizontal, e.interior()) + e.glyphs.BottomRight
}

// EmptyWall returns an interior line with nothing but fill.
func (e *Engine) EmptyWall() string {
	return e.glyphs.Vertical + e.fill(e.interior()) + e.glyphs.Vertical
}

// Header centers title between the walls. When the remaining space is odd
// the right side gets the extra column.
func (e *Engine) Header(title string) (string, error) {
	if err := ValidateText(title); err != nil {
		return "", err
	}
	n := TextWidth(title)
	if n > e.interior() {
		return "", fmt.Errorf("%w: title is %d columns, panel has %d", ErrFit, n, e.interior())
	}

	padding := (e.interior() - n) / 2
	right := padding
	if (e.width-n)%2 == 1 {
		right++
	}

	return e.glyphs.Vertical + e.fill(padding) + title + e.fill(right) + e.glyphs.Vertical, nil
}

// Options renders one line per item with a 1-based bracketed index placed
// left of the centered text. Lines are joined with "\n" in input order.
func (e *Engine) Options(items []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("%w: options list is empty", ErrInvalid)
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		line, err := e.optionLine(strconv.Itoa(i+1), item)
		if err != nil {
			return "", fmt.Errorf("option %d: %w", i+1, err)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (e *Engine) optionLine(index, text string) (string, error) {
	if err := ValidateText(text); err != nil {
		return "", err
	}
	n := TextWidth(text)
	if n > e.interior() {
		return "", fmt.Errorf("%w: option text is %d columns, panel has %d", ErrFit, n, e.interior())
	}

	padding := (e.interior() - n) / 2
	if padding < minOptionPadding {
		return "", fmt.Errorf("%w: no room for an index next to a %d column option", ErrFit, n)
	}

	label := "[" + index + "]"
	pad := padding / 2

	// the index takes three columns of the left half-pad; longer labels
	// borrow from the gap before the text
	gap := pad + padding%2 - (len(label) - 3)
	if gap < 1 {
		return "", fmt.Errorf("%w: index %s leaves no gap before the option text", ErrFit, label)
	}

	right := padding
	if (e.width-n)%2 == 1 {
		right++
	}

	var b strings.Builder
	b.WriteString(e.glyphs.Vertical)
	b.WriteString(e.fill(pad - 3))
	b.WriteString(label)
	b.WriteString(e.fill(gap))
	b.WriteString(text)
	b.WriteString(e.fill(right))
	b.WriteString(e.glyphs.Vertical)
	return b.String(), nil
}

// Option renders a single line with a bracketed button label followed by
// the option text.
func (e *Engine) Option(button, text string) (string, error) {
	for _, s := range []string{button, text} {
		if err := ValidateText(s); err != nil {
			return "", err
		}
	}
	n := TextWidth(text)
	if n > e.width-5 {
		return "", fmt.Errorf("%w: option text is %d columns, at most %d allowed", ErrFit, n, e.width-5)
	}

	padding := (e.interior() - n) / 2
	if padding < minOptionPadding {
		return "", fmt.Errorf("%w: no room for a button next to a %d column option", ErrFit, n)
	}

	bw := TextWidth(button)
	pad := padding / 2
	if pad-2 <= bw {
		return "", fmt.Errorf("%w: button %q needs fewer than %d columns", ErrFit, button, pad-2)
	}

	right := padding
	if (e.width-n)%2 == 1 {
		right++
	}

	var b strings.Builder
	b.WriteString(e.glyphs.Vertical)
	b.WriteString(e.fill(pad))
	b.WriteString("[" + button + "]")
	b.WriteString(e.fill(pad + padding%2 - bw - 2))
	b.WriteString(text)
	b.WriteString(e.fill(right))
	b.WriteString(e.glyphs.Vertical)
	return b.String(), nil
}

// Description word-wraps text into bordered lines inset by padding fill
// columns on each side. Words are taken greedily while the line, counting
// one trailing space per word, stays within the usable width.
func (e *Engine) Description(text string, padding int) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: description text is empty, use EmptyWall for blank lines", ErrInvalid)
	}
	if err := ValidateText(text); err != nil {
		return "", err
	}
	if padding < 0 {
		return "", fmt.Errorf("%w: padding %d is negative", ErrInvalid, padding)
	}

	usable := e.interior() - 2*padding
	if usable <= 0 {
		return "", fmt.Errorf("%w: padding %d leaves no room for text", ErrFit, padding)
	}

	words := strings.Split(text, " ")
	for _, w := range words {
		if TextWidth(w)+1 > usable {
			return "", fmt.Errorf("%w: word %q is longer than the %d usable columns", ErrFit, w, usable)
		}
	}

	var lines []string
	for i := 0; i < len(words); {
		var line strings.Builder
		used := 0
		for i < len(words) && used+TextWidth(words[i])+1 <= usable {
			line.WriteString(words[i])
			line.WriteString(" ")
			used += TextWidth(words[i]) + 1
			i++
		}

		lines = append(lines, e.glyphs.Vertical+e.fill(padding)+line.String()+
			e.fill(padding+usable-used)+e.glyphs.Vertical)
	}
	return strings.Join(lines, "\n"), nil
}

// LeftString places text padding columns from the left wall.
func (e *Engine) LeftString(text string, padding int) (string, error) {
	rest, err := e.alignedFit(text, padding)
	if err != nil {
		return "", err
	}
	return e.glyphs.Vertical + e.fill(padding) + text + e.fill(rest) + e.glyphs.Vertical, nil
}

// RightString places text padding columns from the right wall.
func (e *Engine) RightString(text string, padding int) (string, error) {
	rest, err := e.alignedFit(text, padding)
	if err != nil {
		return "", err
	}
	return e.glyphs.Vertical + e.fill(rest) + text + e.fill(padding) + e.glyphs.Vertical, nil
}

// alignedFit returns the fill left over on the side opposite the padding.
func (e *Engine) alignedFit(text string, padding int) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: text is empty", ErrInvalid)
	}
	if err := ValidateText(text); err != nil {
		return 0, err
	}
	if padding < 0 {
		return 0, fmt.Errorf("%w: padding %d is negative", ErrInvalid, padding)
	}
	if padding > e.interior() {
		return 0, fmt.Errorf("%w: padding %d is wider than the %d interior columns", ErrFit, padding, e.interior())
	}

	n := TextWidth(text)
	if n > e.interior() {
		return 0, fmt.Errorf("%w: text is %d columns, panel has %d", ErrFit, n, e.interior())
	}

	rest := e.interior() - n - padding
	if rest < 0 {
		return 0, fmt.Errorf("%w: text plus padding needs %d columns, panel has %d", ErrFit, n+padding, e.interior())
	}
	return rest, nil
}
