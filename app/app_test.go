package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textpanel/color"
	"textpanel/document"
	"textpanel/panel"
)

const menuLayout = `
name = "main_menu"
width = 30

[[block]]
kind = "top"

[[block]]
kind = "header"
text = "Main Menu"
color = "yellow"

[[block]]
kind = "separator"

[[block]]
kind = "options"
items = ["Start", "Settings", "Quit"]

[[block]]
kind = "empty"

[[block]]
kind = "description"
text = "Pick a number and press enter to continue"
padding = 1

[[block]]
kind = "bottom"
color = "BLUE"
including_border = true
`

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout(menuLayout)
	require.NoError(t, err)

	assert.Equal(t, "main_menu", l.Name)
	assert.Equal(t, 30, l.Width)
	require.Len(t, l.Blocks, 7)
	assert.Equal(t, KindHeader, l.Blocks[1].Kind)
	assert.Equal(t, []string{"Start", "Settings", "Quit"}, l.Blocks[3].Items)
	assert.True(t, l.Blocks[6].IncludingBorder)
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not toml", data: "width = ="},
		{name: "no blocks", data: "width = 20"},
		{name: "unknown kind", data: "[[block]]\nkind = \"footer\""},
		{name: "unknown key", data: "[[block]]\nkind = \"top\"\ncolour = \"RED\""},
		{name: "background without color", data: "[[block]]\nkind = \"top\"\nbackground = \"RED\""},
		{name: "border without color", data: "[[block]]\nkind = \"top\"\nincluding_border = true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(tt.data)
			assert.ErrorIs(t, err, ErrLayout)
		})
	}
}

func TestComposeMatchesBuilder(t *testing.T) {
	l, err := ParseLayout(menuLayout)
	require.NoError(t, err)

	got, err := Render(l, Defaults{Width: 70})
	require.NoError(t, err)

	b, err := document.New(30)
	require.NoError(t, err)
	want := b.TopWall().
		Header("Main Menu").WithColor("YELLOW").
		Separator().
		Options("Start", "Settings", "Quit").
		EmptyWall().
		Description("Pick a number and press enter to continue", 1).
		BottomWall().WithColorIncludingBorder("BLUE").
		Render()
	require.NoError(t, b.Err())

	assert.Equal(t, want, got)
}

func TestComposeUsesDefaults(t *testing.T) {
	l, err := ParseLayout("[[block]]\nkind = \"top\"\n\n[[block]]\nkind = \"bottom\"")
	require.NoError(t, err)

	b, err := Compose(l, Defaults{Width: 8, BorderColor: "RED", DefaultColor: "GREEN"})
	require.NoError(t, err)
	assert.Equal(t, 8, b.Width())

	red, err := color.WrapForeground("╔", "RED")
	require.NoError(t, err)
	assert.Contains(t, b.Render(), red)

	green, err := color.Resolve("GREEN", color.Foreground)
	require.NoError(t, err)
	for _, line := range b.Lines() {
		assert.Contains(t, line, green)
	}
}

func TestComposeLayoutOverridesDefaults(t *testing.T) {
	l, err := ParseLayout("width = 12\nborder_color = \"\"\n[[block]]\nkind = \"top\"")
	require.NoError(t, err)

	got, err := Render(l, Defaults{Width: 70})
	require.NoError(t, err)
	assert.Equal(t, "╔══════════╗\n", got)
}

func TestComposeSeparators(t *testing.T) {
	l, err := ParseLayout(`
width = 6

[[block]]
kind = "separator"

[[block]]
kind = "separator"
material = "-"
count = 3

[[block]]
kind = "separator"
material = "*"
`)
	require.NoError(t, err)

	got, err := Render(l, Defaults{})
	require.NoError(t, err)
	assert.Equal(t, "══════\n---\n******\n", got)
}

func TestComposeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		target error
	}{
		{name: "bad width", data: "width = 1\n[[block]]\nkind = \"top\"", target: panel.ErrWidth},
		{name: "header too wide", data: "width = 6\n[[block]]\nkind = \"header\"\ntext = \"far too long\"", target: panel.ErrFit},
		{name: "empty options", data: "width = 20\n[[block]]\nkind = \"options\"", target: panel.ErrInvalid},
		{name: "unknown color", data: "width = 20\n[[block]]\nkind = \"top\"\ncolor = \"MAUVE\"", target: color.ErrUnknownColor},
		{name: "line break in header", data: "width = 20\n[[block]]\nkind = \"header\"\ntext = \"\"\"\nfirst\nsecond\"\"\"", target: panel.ErrInvalid},
		{name: "tab in option", data: "width = 30\n[[block]]\nkind = \"options\"\nitems = [\"a\\tb\"]", target: panel.ErrInvalid},
		{name: "unknown border color", data: "width = 20\nborder_color = \"MAUVE\"\n[[block]]\nkind = \"top\"", target: color.ErrUnknownColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLayout(tt.data)
			require.NoError(t, err)

			_, err = Compose(l, Defaults{Width: 70})
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadLayoutNamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[block]]\nkind = \"success\"\ntext = \"hello\""), 0644))

	l, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, "greeting", l.Name)

	b, err := Compose(l, Defaults{Width: 20})
	require.NoError(t, err)
	assert.Equal(t, "greeting", b.View().Name())

	want, err := panel.StatusBanner(panel.StatusSuccess, "hello")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", b.Render())
}

func TestLoadLayoutMissing(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestOutline(t *testing.T) {
	l, err := ParseLayout(menuLayout)
	require.NoError(t, err)

	out := Outline(l)
	assert.Contains(t, out, ` 2 header      "Main Menu" [yellow]`)
	assert.Contains(t, out, ` 4 options     ["Start" "Settings" "Quit"]`)
}

func TestKinds(t *testing.T) {
	assert.Len(t, Kinds(), 13)
	assert.Equal(t, KindBottom, Kinds()[0])
}
