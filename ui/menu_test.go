package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textpanel/panel"
	"textpanel/prompt"
	"textpanel/testing/snapshot"
)

func TestNewMenuValidation(t *testing.T) {
	_, err := NewMenu("x", 1, "a")
	assert.ErrorIs(t, err, panel.ErrWidth)

	_, err = NewMenu("x", 30)
	assert.ErrorIs(t, err, panel.ErrInvalid)
}

func TestMenuRender(t *testing.T) {
	m, err := NewMenu("Menu", 20, "Start", "Quit")
	require.NoError(t, err)

	out, err := m.Render()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "║       Menu       ║", lines[1])
	assert.Equal(t, "║[1]   Start       ║", lines[3])
	assert.Equal(t, "║[2]    Quit       ║", lines[4])
	snapshot.New(t).AssertWidth(strings.TrimSuffix(out, "\n"), 20)
}

func TestMenuRenderColored(t *testing.T) {
	m, err := NewMenu("", 20, "Start")
	require.NoError(t, err)

	out, err := m.WithColor("GREEN").Render()
	require.NoError(t, err)
	assert.Contains(t, out, "║\x1b[32m[1]   Start       \x1b[0m║")
}

func TestMenuRenderTooNarrow(t *testing.T) {
	m, err := NewMenu("Menu", 10, "a long option")
	require.NoError(t, err)

	_, err = m.Render()
	assert.ErrorIs(t, err, panel.ErrFit)
}

func TestMenuChoose(t *testing.T) {
	m, err := NewMenu("Menu", 20, "Start", "Quit")
	require.NoError(t, err)

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("0\nx\n5\n2\n"), &out)

	choice, err := m.Choose(p, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, choice)

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Please pick a proper option. (1-2)"))
	assert.Contains(t, text, "Please input an integer.")
	assert.True(t, strings.HasPrefix(text, "╔"))
}

func TestMenuChooseEndOfInput(t *testing.T) {
	m, err := NewMenu("Menu", 20, "Start")
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = m.Choose(prompt.New(strings.NewReader(""), &out), &out)
	assert.ErrorIs(t, err, prompt.ErrNoInput)
}
