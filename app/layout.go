// Package app turns panel definitions written in TOML into documents.
//
// A definition lists blocks in drawing order:
//
//	name = "main_menu"
//	width = 40
//	border_color = "CYAN"
//
//	[[block]]
//	kind = "top"
//
//	[[block]]
//	kind = "header"
//	text = "Main Menu"
//	color = "YELLOW"
//
//	[[block]]
//	kind = "options"
//	items = ["Start", "Quit"]
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"textpanel/log"
)

// ErrLayout is returned for definitions that cannot be composed.
var ErrLayout = errors.New("invalid layout")

// Block kinds.
const (
	KindSeparator   = "separator"
	KindTop         = "top"
	KindBottom      = "bottom"
	KindEmpty       = "empty"
	KindHeader      = "header"
	KindOptions     = "options"
	KindOption      = "option"
	KindDescription = "description"
	KindLeft        = "left"
	KindRight       = "right"
	KindError       = "error"
	KindSuccess     = "success"
	KindWarning     = "warning"
)

var kinds = map[string]bool{
	KindSeparator: true, KindTop: true, KindBottom: true, KindEmpty: true,
	KindHeader: true, KindOptions: true, KindOption: true, KindDescription: true,
	KindLeft: true, KindRight: true, KindError: true, KindSuccess: true, KindWarning: true,
}

// Kinds returns the block kinds in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Block is one primitive of a panel definition. Which fields matter
// depends on Kind.
type Block struct {
	Kind string `toml:"kind"`

	Text   string   `toml:"text"`
	Items  []string `toml:"items"`
	Button string   `toml:"button"`

	// Material and Count describe a custom separator.
	Material string `toml:"material"`
	Count    int    `toml:"count"`

	Padding int `toml:"padding"`

	Color           string `toml:"color"`
	Background      string `toml:"background"`
	IncludingBorder bool   `toml:"including_border"`
}

// Layout is a whole panel definition.
type Layout struct {
	Name         string  `toml:"name"`
	Width        int     `toml:"width"`
	DefaultColor string  `toml:"default_color"`
	BorderColor  string  `toml:"border_color"`
	Blocks       []Block `toml:"block"`
}

// ParseLayout decodes a definition. Unknown keys are rejected so typos do
// not silently drop content.
func ParseLayout(data string) (*Layout, error) {
	var l Layout
	md, err := toml.Decode(data, &l)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrLayout, strings.Join(keys, ", "))
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayout reads a definition file. A definition without a name is named
// after the file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	l, err := ParseLayout(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	log.InfoLog.Printf("loaded layout %s with %d blocks", l.Name, len(l.Blocks))
	return l, nil
}

// Validate checks the structure of the definition. Width and color names
// are checked when the panel is composed.
func (l *Layout) Validate() error {
	if len(l.Blocks) == 0 {
		return fmt.Errorf("%w: no blocks", ErrLayout)
	}
	for i, b := range l.Blocks {
		if !kinds[b.Kind] {
			return fmt.Errorf("%w: block %d: unknown kind %q", ErrLayout, i+1, b.Kind)
		}
		if b.Background != "" && b.Color == "" {
			return fmt.Errorf("%w: block %d: background needs a color", ErrLayout, i+1)
		}
		if b.IncludingBorder && b.Color == "" {
			return fmt.Errorf("%w: block %d: including_border needs a color", ErrLayout, i+1)
		}
	}
	return nil
}
