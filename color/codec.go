// Package color maps the sixteen named terminal colors to ANSI escape
// sequences.
//
// Names are case-insensitive:
//
//	BLACK RED GREEN YELLOW BLUE MAGENTA CYAN WHITE
//
// and their BRIGHT_ variants. Lookups of any other name fail with
// ErrUnknownColor, except ResolveOrDefault which falls back to Reset.
package color

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/termenv"
)

// Layer selects whether a color applies to the text or to the cell behind it.
type Layer int

const (
	Foreground Layer = iota
	Background
)

func (l Layer) String() string {
	if l == Background {
		return "background"
	}
	return "foreground"
}

// ErrUnknownColor is returned for names outside the sixteen-color enumeration.
var ErrUnknownColor = errors.New("unknown color")

var palette = map[string]termenv.ANSIColor{
	"BLACK":          termenv.ANSIBlack,
	"RED":            termenv.ANSIRed,
	"GREEN":          termenv.ANSIGreen,
	"YELLOW":         termenv.ANSIYellow,
	"BLUE":           termenv.ANSIBlue,
	"MAGENTA":        termenv.ANSIMagenta,
	"CYAN":           termenv.ANSICyan,
	"WHITE":          termenv.ANSIWhite,
	"BRIGHT_BLACK":   termenv.ANSIBrightBlack,
	"BRIGHT_RED":     termenv.ANSIBrightRed,
	"BRIGHT_GREEN":   termenv.ANSIBrightGreen,
	"BRIGHT_YELLOW":  termenv.ANSIBrightYellow,
	"BRIGHT_BLUE":    termenv.ANSIBrightBlue,
	"BRIGHT_MAGENTA": termenv.ANSIBrightMagenta,
	"BRIGHT_CYAN":    termenv.ANSIBrightCyan,
	"BRIGHT_WHITE":   termenv.ANSIBrightWhite,
}

// Reset returns the sequence that clears every color attribute.
func Reset() string {
	return termenv.CSI + termenv.ResetSeq + "m"
}

// Valid reports whether name is one of the sixteen colors.
func Valid(name string) bool {
	_, ok := palette[normalize(name)]
	return ok
}

// Names returns the color names in sorted order.
func Names() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the escape sequence for name on the given layer.
func Resolve(name string, layer Layer) (string, error) {
	c, ok := palette[normalize(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return termenv.CSI + c.Sequence(layer == Background) + "m", nil
}

// Highlight returns the bold background sequence for name, as used by status
// banners: "\x1b[41;1m" for RED.
func Highlight(name string) (string, error) {
	c, ok := palette[normalize(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return termenv.CSI + c.Sequence(true) + ";" + termenv.BoldSeq + "m", nil
}

// ResolveOrDefault is the lenient foreground lookup: an unknown name yields
// Reset instead of an error.
func ResolveOrDefault(name string) string {
	seq, err := Resolve(name, Foreground)
	if err != nil {
		return Reset()
	}
	return seq
}

// Wrap returns fg [+ bg] + text + reset. An empty bg means no background.
func Wrap(text, fg, bg string) (string, error) {
	fgSeq, err := Resolve(fg, Foreground)
	if err != nil {
		return "", err
	}

	var bgSeq string
	if bg != "" {
		bgSeq, err = Resolve(bg, Background)
		if err != nil {
			return "", err
		}
	}

	return fgSeq + bgSeq + text + Reset(), nil
}

// WrapForeground is Wrap without a background.
func WrapForeground(text, fg string) (string, error) {
	return Wrap(text, fg, "")
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
