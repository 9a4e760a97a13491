package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"textpanel/inspect"
	"textpanel/panel"
	"textpanel/ui/layout"
)

// ErrCancelled is returned by RunPicker when the user leaves without
// choosing.
var ErrCancelled = errors.New("selection cancelled")

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var pickerKeys = pickerKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// Picker is the interactive counterpart of Menu: the same numbered panel,
// navigated with arrow keys or picked by typing the option number.
type Picker struct {
	title  string
	items  []string
	cursor int
	chosen int
	// typed holds the digits entered so far while they still prefix a
	// longer option number.
	typed int

	cancelled bool
	width     int
	fixed     bool
}

// NewPicker returns a picker over items. A zero width follows the
// terminal size.
func NewPicker(title string, items []string, width int) *Picker {
	p := &Picker{title: title, items: items, width: width, fixed: width > 0}
	if !p.fixed {
		p.width = layout.PanelWidth(0)
	}
	return p
}

func (p *Picker) Init() tea.Cmd {
	return nil
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !p.fixed {
			p.width = layout.PanelWidth(msg.Width)
		}
		return p, nil
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *Picker) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d, isDigit := digit(msg)
	if !isDigit {
		p.typed = 0
	}

	switch {
	case key.Matches(msg, pickerKeys.Up):
		p.move(-1)
	case key.Matches(msg, pickerKeys.Down):
		p.move(1)
	case key.Matches(msg, pickerKeys.Select):
		p.chosen = p.cursor + 1
		return p, tea.Quit
	case key.Matches(msg, pickerKeys.Cancel):
		p.cancelled = true
		return p, tea.Quit
	case isDigit:
		return p.typeDigit(d)
	}
	return p, nil
}

// typeDigit extends the option number being typed. The number is chosen as
// soon as no longer option starts with it; until then the cursor follows
// it and enter picks it.
func (p *Picker) typeDigit(d int) (tea.Model, tea.Cmd) {
	n := p.typed*10 + d
	if n < 1 || n > len(p.items) {
		n = d
	}
	if n < 1 || n > len(p.items) {
		p.typed = 0
		return p, nil
	}

	p.cursor = n - 1
	if n*10 > len(p.items) {
		p.typed = 0
		p.chosen = n
		return p, tea.Quit
	}
	p.typed = n
	return p, nil
}

func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// move shifts the cursor, wrapping around at both ends.
func (p *Picker) move(delta int) {
	if len(p.items) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.items)) % len(p.items)
}

func (p *Picker) View() string {
	e, err := panel.New(p.width)
	if err != nil {
		return StatusStyles.Error.Render(err.Error())
	}

	// room for the walls and one column of padding on each side
	room := p.width - 4

	var lines []string
	lines = append(lines, e.TopWall())
	if p.title != "" {
		if head, err := e.Header(truncate.StringWithTail(p.title, uint(max(room, 0)), "…")); err == nil {
			lines = append(lines, TextStyles.Title.Render(head), e.EmptyWall())
		}
	}

	for i, item := range p.items {
		marker := " "
		if i == p.cursor {
			marker = ">"
		}
		label := truncate.StringWithTail(fmt.Sprintf("%s [%d] %s", marker, i+1, item), uint(max(room, 1)), "…")
		line, err := e.LeftString(label, 1)
		if err != nil {
			line = e.EmptyWall()
		}
		if i == p.cursor {
			line = TextStyles.Selected.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, e.EmptyWall(), e.BottomWall())
	lines = append(lines, TextStyles.Muted.Render(p.help()))
	return strings.Join(lines, "\n")
}

func (p *Picker) help() string {
	var parts []string
	for _, b := range []key.Binding{pickerKeys.Up, pickerKeys.Down, pickerKeys.Select, pickerKeys.Cancel} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// Chosen returns the 1-based option picked, if any.
func (p *Picker) Chosen() (int, bool) {
	return p.chosen, p.chosen > 0
}

// Cancelled reports whether the user left without choosing.
func (p *Picker) Cancelled() bool {
	return p.cancelled
}

// Width returns the panel width currently drawn.
func (p *Picker) Width() int {
	return p.width
}

var _ inspect.Introspectable = (*Picker)(nil)

// InspectNode describes the picker state.
func (p *Picker) InspectNode() *inspect.Node {
	node := inspect.NewNode("Picker").
		WithID(p.title).
		WithBounds(0, 0, p.width, len(p.items)+4).
		WithState("cursor", p.cursor).
		WithState("chosen", p.chosen).
		WithState("cancelled", p.cancelled)
	for i, item := range p.items {
		node.AddChild(inspect.NewNode("Option").
			WithID(fmt.Sprintf("option-%d", i+1)).
			WithContent(item).
			WithState("selected", i == p.cursor))
	}
	return node
}

// RunPicker shows an interactive picker and returns the 1-based option
// chosen.
func RunPicker(title string, items []string, width int) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: picker has no items", panel.ErrInvalid)
	}

	final, err := tea.NewProgram(NewPicker(title, items, width)).Run()
	if err != nil {
		return 0, fmt.Errorf("picker failed: %w", err)
	}

	p := final.(*Picker)
	if n, ok := p.Chosen(); ok {
		return n, nil
	}
	return 0, ErrCancelled
}
