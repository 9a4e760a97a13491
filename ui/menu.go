package ui

import (
	"fmt"
	"io"

	"textpanel/document"
	"textpanel/panel"
	"textpanel/prompt"
)

// Menu is a bordered, numbered list of choices read back through a
// Prompter.
type Menu struct {
	title string
	items []string
	width int
	color string
}

// NewMenu returns a menu of items drawn width columns wide.
func NewMenu(title string, width int, items ...string) (*Menu, error) {
	if err := panel.ValidateWidth(width); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: menu has no items", panel.ErrInvalid)
	}
	return &Menu{title: title, items: items, width: width}, nil
}

// WithColor draws the option text in fg.
func (m *Menu) WithColor(fg string) *Menu {
	m.color = fg
	return m
}

// Items returns the menu entries in display order.
func (m *Menu) Items() []string {
	return m.items
}

// Render draws the menu panel.
func (m *Menu) Render() (string, error) {
	b, err := document.New(m.width)
	if err != nil {
		return "", err
	}

	b.TopWall()
	if m.title != "" {
		b.Header(m.title).EmptyWall()
	}
	b.Options(m.items...)
	if m.color != "" {
		b.WithColor(m.color)
	}
	b.EmptyWall().BottomWall()

	if err := b.Err(); err != nil {
		return "", err
	}
	return b.Render(), nil
}

// Choose prints the menu to out and asks for an option until one in range
// is typed. It returns the 1-based option number.
func (m *Menu) Choose(p *prompt.Prompter, out io.Writer) (int, error) {
	s, err := m.Render()
	if err != nil {
		return 0, err
	}
	if _, err := io.WriteString(out, s); err != nil {
		return 0, err
	}

	for {
		n, err := p.Int("Option", 0, 0)
		if err != nil {
			return 0, err
		}
		if n >= 1 && n <= len(m.items) {
			return n, nil
		}
		fmt.Fprintf(out, "Please pick a proper option. (1-%d)\n", len(m.items))
	}
}
