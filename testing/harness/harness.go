// Package harness drives Bubble Tea models in tests without a terminal.
package harness

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness wraps a tea.Model and feeds it messages synchronously.
type Harness struct {
	t      *testing.T
	model  tea.Model
	width  int
	height int
}

// New wraps model and sends it an initial window size.
func New(t *testing.T, model tea.Model, width, height int) *Harness {
	t.Helper()
	h := &Harness{
		t:      t,
		model:  model,
		width:  width,
		height: height,
	}
	h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
	return h
}

// SendMsg updates the model with msg and returns the resulting command.
func (h *Harness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// SendKey sends typed runes.
func (h *Harness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey sends a non-rune key such as Enter or Esc.
func (h *Harness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// Resize simulates a terminal resize.
func (h *Harness) Resize(width, height int) tea.Cmd {
	h.width = width
	h.height = height
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

// View returns the current rendering.
func (h *Harness) View() string {
	return h.model.View()
}

// Model returns the wrapped model.
func (h *Harness) Model() tea.Model {
	return h.model
}

// Width returns the current terminal width.
func (h *Harness) Width() int {
	return h.width
}

// Height returns the current terminal height.
func (h *Harness) Height() int {
	return h.height
}

// TerminalSize is a named terminal size.
type TerminalSize struct {
	Name   string
	Width  int
	Height int
}

// CommonSizes covers every layout mode at least once.
var CommonSizes = []TerminalSize{
	{Name: "tiny", Width: 24, Height: 10},
	{Name: "narrow", Width: 36, Height: 20},
	{Name: "compact", Width: 60, Height: 24},
	{Name: "minimum", Width: 80, Height: 24},
	{Name: "standard", Width: 100, Height: 30},
	{Name: "wide", Width: 160, Height: 50},
}

// RunWithSizes runs fn as a subtest for each size.
func RunWithSizes(t *testing.T, sizes []TerminalSize, fn func(t *testing.T, size TerminalSize)) {
	for _, size := range sizes {
		t.Run(size.Name, func(t *testing.T) {
			fn(t, size)
		})
	}
}

// RunWithCommonSizes runs fn for every entry in CommonSizes.
func RunWithCommonSizes(t *testing.T, fn func(t *testing.T, size TerminalSize)) {
	RunWithSizes(t, CommonSizes, fn)
}

// KeySequence is a list of messages replayed in order.
type KeySequence []tea.Msg

// NewKeySequence builds a sequence of typed keys.
func NewKeySequence(keys ...string) KeySequence {
	var seq KeySequence
	for _, key := range keys {
		seq = append(seq, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
	return seq
}

// Play sends every message in the sequence and returns the last non-nil
// command.
func (seq KeySequence) Play(h *Harness) tea.Cmd {
	var last tea.Cmd
	for _, msg := range seq {
		if cmd := h.SendMsg(msg); cmd != nil {
			last = cmd
		}
	}
	return last
}
