package panel

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"

	"textpanel/color"
)

// Glyphs is the character set a panel is drawn with. Every field must occupy
// exactly one terminal column once escape sequences are ignored.
type Glyphs struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string

	Fill           string
	LoadComplete   string
	LoadIncomplete string
	Separator      string
}

// DefaultGlyphs returns the double-line box set.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		TopLeft:        "╔",
		TopRight:       "╗",
		BottomLeft:     "╚",
		BottomRight:    "╝",
		Horizontal:     "═",
		Vertical:       "║",
		Fill:           " ",
		LoadComplete:   "█",
		LoadIncomplete: "░",
		Separator:      "═",
	}
}

func (g Glyphs) fields() []struct{ name, value string } {
	return []struct{ name, value string }{
		{"top-left", g.TopLeft},
		{"top-right", g.TopRight},
		{"bottom-left", g.BottomLeft},
		{"bottom-right", g.BottomRight},
		{"horizontal", g.Horizontal},
		{"vertical", g.Vertical},
		{"fill", g.Fill},
		{"loading complete", g.LoadComplete},
		{"loading incomplete", g.LoadIncomplete},
		{"separator", g.Separator},
	}
}

// Validate checks that every glyph is printed as a single column.
func (g Glyphs) Validate() error {
	for _, f := range g.fields() {
		if w := ansi.PrintableRuneWidth(f.value); w != 1 {
			return fmt.Errorf("%w: %s glyph %q is %d columns wide", ErrInvalid, f.name, f.value, w)
		}
	}
	return nil
}

// Colorized reports whether any border glyph carries escape sequences.
func (g Glyphs) Colorized() bool {
	for _, s := range []string{g.TopLeft, g.TopRight, g.BottomLeft, g.BottomRight, g.Horizontal, g.Vertical} {
		if len(s) > 0 && ansi.PrintableRuneWidth(s) != runewidth.StringWidth(s) {
			return true
		}
	}
	return false
}

// Colorize returns a copy whose six border glyphs are wrapped in the
// foreground color fg. Fill, loading and separator glyphs are unchanged.
// The receiver must hold plain (uncolored) border glyphs.
func (g Glyphs) Colorize(fg string) (Glyphs, error) {
	out := g
	targets := []*string{&out.TopLeft, &out.TopRight, &out.BottomLeft, &out.BottomRight, &out.Horizontal, &out.Vertical}
	for _, p := range targets {
		if runewidth.StringWidth(*p) != 1 {
			return g, fmt.Errorf("%w: border glyph %q is not a single plain character", ErrInvalid, *p)
		}
		wrapped, err := color.WrapForeground(*p, fg)
		if err != nil {
			return g, err
		}
		*p = wrapped
	}
	return out, nil
}
