package document

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textpanel/color"
	"textpanel/panel"
	"textpanel/testing/snapshot"
)

func newBuilder(t *testing.T, width int) *Builder {
	t.Helper()
	b, err := New(width)
	require.NoError(t, err)
	return b
}

func TestNewRejectsBadWidth(t *testing.T) {
	_, err := New(1)
	assert.ErrorIs(t, err, panel.ErrWidth)

	_, err = New(201)
	assert.ErrorIs(t, err, panel.ErrWidth)
}

func TestPrimitivesAppendOneEntryEach(t *testing.T) {
	b := newBuilder(t, 30)

	b.TopWall().
		Header("Menu").
		Options("Start", "Quit").
		Option("Y", "Yes").
		Description("a few words here", 1).
		LeftString("left", 1).
		RightString("right", 1).
		EmptyWall().
		Separator().
		SeparatorOf("-", 5).
		BottomWall()
	require.NoError(t, b.Err())

	assert.Equal(t, 11, b.Len())
	for _, entry := range b.Lines() {
		assert.True(t, strings.HasSuffix(entry, "\n"), "entry %q must end in a line break", entry)
	}

	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, "╚"+strings.Repeat("═", 28)+"╝\n", last)
}

func TestRoundTrip(t *testing.T) {
	b := newBuilder(t, 12)
	b.TopWall().BottomWall()
	require.NoError(t, b.Err())

	before := b.Render()
	b.Save()
	assert.Zero(t, b.Len(), "save clears the entries")

	reader := newBuilder(t, 12)
	after := reader.Use(b.View()).Load().Render()
	require.NoError(t, reader.Err())

	assert.Equal(t, before, after)
	assert.Equal(t, "╔══════════╗\n╚══════════╝\n", after)
}

func TestRoundTripFromPlainText(t *testing.T) {
	text := "╔══╗\n║  ║\n╚══╝\n"
	v := NewView("plain")
	v.Set(text)

	b := newBuilder(t, 4)
	b.Use(v).Load()
	require.NoError(t, b.Err())

	assert.Equal(t, 3, b.Len(), "text without saved blocks loads one entry per line")
	assert.Equal(t, text, b.Render())

	v.Set("no trailing break")
	assert.Equal(t, "no trailing break", b.Load().Render())
}

func TestWithColorLeavesWallsPlain(t *testing.T) {
	b := newBuilder(t, 10)
	b.EmptyWall().WithColor("RED")
	require.NoError(t, b.Err())

	last, _ := b.Last()
	assert.Equal(t, "║\x1b[31m        \x1b[0m║\n", last)
}

func TestWithColorsUsesBackground(t *testing.T) {
	b := newBuilder(t, 10)
	b.Header("Hi").WithColors("yellow", "blue")
	require.NoError(t, b.Err())

	last, _ := b.Last()
	assert.Equal(t, "║\x1b[33m\x1b[44m   Hi   \x1b[0m║\n", last)
}

func TestWithColorOnMultiLineEntry(t *testing.T) {
	b := newBuilder(t, 12)
	b.Description("one two three four", 1).WithColor("GREEN")
	require.NoError(t, b.Err())

	last, _ := b.Last()
	lines := strings.Split(strings.TrimSuffix(last, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "║\x1b[32m"), line)
		assert.Equal(t, 12, panel.TextWidth(line))
	}
	assert.Equal(t, "║ three    ║", snapshot.StripANSI(lines[1]))
}

func TestWithColorIncludingBorder(t *testing.T) {
	b := newBuilder(t, 4)
	b.TopWall().WithColorIncludingBorder("GREEN")
	b.EmptyWall().WithColorsIncludingBorder("BLACK", "WHITE")
	require.NoError(t, b.Err())

	lines := b.Lines()
	assert.Equal(t, "\x1b[32m╔══╗\x1b[0m\n", lines[0])
	assert.Equal(t, "\x1b[30m\x1b[47m║  ║\x1b[0m\n", lines[1])
}

func TestInvalidColorLeavesDocumentUnchanged(t *testing.T) {
	ops := map[string]func(b *Builder) *Builder{
		"WithColor":                 func(b *Builder) *Builder { return b.WithColor("PURPLE") },
		"WithColors fg":             func(b *Builder) *Builder { return b.WithColors("PURPLE", "RED") },
		"WithColors bg":             func(b *Builder) *Builder { return b.WithColors("RED", "PURPLE") },
		"WithColorIncludingBorder":  func(b *Builder) *Builder { return b.WithColorIncludingBorder("PURPLE") },
		"WithColorsIncludingBorder": func(b *Builder) *Builder { return b.WithColorsIncludingBorder("RED", "PURPLE") },
		"SetBorderColor":            func(b *Builder) *Builder { return b.SetBorderColor("PURPLE") },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			b := newBuilder(t, 10)
			b.TopWall().EmptyWall()
			before := b.Lines()

			op(b)

			assert.ErrorIs(t, b.Err(), color.ErrUnknownColor)
			assert.Equal(t, len(before), b.Len())
			assert.Equal(t, before, b.Lines())
		})
	}
}

func TestWithColorOnEmptyDocument(t *testing.T) {
	b := newBuilder(t, 10)
	b.WithColor("RED")
	assert.ErrorIs(t, b.Err(), ErrEmptyDocument)
}

func TestStickyError(t *testing.T) {
	b := newBuilder(t, 10)

	b.TopWall().Header("this title is too long").EmptyWall().BottomWall()

	err := b.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, panel.ErrFit)
	assert.Contains(t, err.Error(), "header")
	assert.Equal(t, 1, b.Len(), "calls after a failure are no-ops")

	b.ClearErr().BottomWall()
	assert.NoError(t, b.Err())
	assert.Equal(t, 2, b.Len())
}

func TestSetDefaultColor(t *testing.T) {
	b := newBuilder(t, 10)
	b.TopWall().EmptyWall().WithColor("RED").SetDefaultColor("CYAN")
	require.NoError(t, b.Err())

	lines := b.Lines()
	assert.Equal(t, "\x1b[36m╔════════╗\x1b[0m\n", lines[0])
	assert.Equal(t, "\x1b[36m║\x1b[31m        \x1b[0m\x1b[36m║\x1b[0m\n", lines[1])
}

func TestSetDefaultColorUnknownIsLenient(t *testing.T) {
	b := newBuilder(t, 4)
	b.TopWall().SetDefaultColor("PURPLE")
	require.NoError(t, b.Err())

	last, _ := b.Last()
	assert.Equal(t, "\x1b[0m╔══╗\x1b[0m\n", last)
}

func TestSetBorderColor(t *testing.T) {
	b := newBuilder(t, 10)
	b.EmptyWall().SetBorderColor("BLUE").EmptyWall()
	require.NoError(t, b.Err())

	lines := b.Lines()
	assert.Equal(t, "║        ║\n", lines[0], "earlier entries keep plain walls")
	assert.Equal(t, "\x1b[34m║\x1b[0m        \x1b[34m║\x1b[0m\n", lines[1])
	assert.Equal(t, 10, panel.TextWidth(lines[1]))

	b.SetBorderColor("").EmptyWall()
	last, _ := b.Last()
	assert.Equal(t, "║        ║\n", last)
}

func TestWithColorAfterSetBorderColor(t *testing.T) {
	b := newBuilder(t, 10)
	b.SetBorderColor("BLUE").EmptyWall().WithColor("RED")
	require.NoError(t, b.Err())

	last, _ := b.Last()
	assert.Equal(t, "\x1b[34m║\x1b[0m\x1b[31m        \x1b[0m\x1b[34m║\x1b[0m\n", last)
	assert.Equal(t, 10, panel.TextWidth(last))
}

func TestWithColorOnLineDrawnBeforeBorderColor(t *testing.T) {
	b := newBuilder(t, 10)
	b.EmptyWall().SetBorderColor("BLUE").WithColor("RED")
	require.NoError(t, b.Err())

	last, _ := b.Last()
	assert.Equal(t, "║\x1b[31m        \x1b[0m║\n", last)
}

func TestSetWidth(t *testing.T) {
	b := newBuilder(t, 10)

	b.SetWidth(20).TopWall()
	require.NoError(t, b.Err())
	last, _ := b.Last()
	assert.Equal(t, 20, panel.TextWidth(strings.TrimSuffix(last, "\n")))

	b.SetWidth(300)
	assert.ErrorIs(t, b.Err(), panel.ErrWidth)
	assert.Equal(t, 20, b.Width())
}

func TestSaveAndReset(t *testing.T) {
	b := newBuilder(t, 4)
	first := b.View()
	first.SetName("first")

	saved, err := b.TopWall().SaveAndReset()
	require.NoError(t, err)

	assert.Same(t, first, saved)
	assert.Equal(t, "╔══╗\n", saved.Get())
	assert.NotSame(t, first, b.View())
	assert.Empty(t, b.View().Get())
	assert.Zero(t, b.Len())
}

func TestSaveAndReturnKeepsEntries(t *testing.T) {
	b := newBuilder(t, 4)

	v, err := b.TopWall().BottomWall().SaveAndReturn()
	require.NoError(t, err)

	assert.Equal(t, "╔══╗\n╚══╝\n", v.Get())
	assert.Equal(t, 2, b.Len())
}

func TestSaveReportsStickyError(t *testing.T) {
	b := newBuilder(t, 4)
	b.Header("too long")

	_, err := b.SaveAndReturn()
	assert.ErrorIs(t, err, panel.ErrFit)
	_, err = b.SaveAndReset()
	assert.ErrorIs(t, err, panel.ErrFit)
}

func TestLoadPreservesSavedBlocks(t *testing.T) {
	b := newBuilder(t, 12)
	b.TopWall().Description("one two three four", 1).Save()
	require.NoError(t, b.Err())

	b.Load()
	assert.Equal(t, 2, b.Len(), "the description block stays one entry")

	b.WithColor("RED")
	last, _ := b.Last()
	assert.Equal(t, 3, strings.Count(last, "\x1b[31m"), "every line of the block is recolored")
}

func TestLoadFlattensEditedText(t *testing.T) {
	b := newBuilder(t, 12)
	b.TopWall().Description("one two three four", 1).Save()

	v := b.View()
	v.Set(v.Get())

	b.Load()
	assert.Equal(t, 4, b.Len())
}

func TestUseNil(t *testing.T) {
	b := newBuilder(t, 4)
	b.Use(nil)
	assert.ErrorIs(t, b.Err(), panel.ErrInvalid)
}

func TestUseKeepsEntries(t *testing.T) {
	b := newBuilder(t, 4)
	b.TopWall().Use(NewView("other"))

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, "other", b.View().Name())
}

func TestReset(t *testing.T) {
	b := newBuilder(t, 4)
	old := b.View()
	b.TopWall().Header("too long").Reset()

	assert.NoError(t, b.Err())
	assert.Zero(t, b.Len())
	assert.NotSame(t, old, b.View())
	assert.Equal(t, 4, b.Width())
}

func TestRenderDoesNotMutate(t *testing.T) {
	b := newBuilder(t, 4)
	b.TopWall()

	assert.Equal(t, b.Render(), b.Render())
	assert.Equal(t, 1, b.Len())
	assert.Empty(t, b.View().Get())
}

func TestStatusBanners(t *testing.T) {
	b := newBuilder(t, 4)
	b.Error("x").Success("y").Warning("z")
	require.NoError(t, b.Err())

	lines := b.Lines()
	assert.Equal(t, "\x1b[41;1m \x1b[30mERROR \x1b[0m x\n", lines[0])
	assert.Contains(t, lines[1], "SUCCESS \x1b[0m y")
	assert.Contains(t, lines[2], "WARNING \x1b[0m z")
}

func TestLoader(t *testing.T) {
	b := newBuilder(t, 10)

	var buf bytes.Buffer
	require.NoError(t, b.Loader(&buf, "Wait", 2, 0))
	assert.Equal(t, "\rWait\t█░\rWait\t██\n", buf.String())

	buf.Reset()
	require.NoError(t, b.ColoredLoader(&buf, "", 1, 0, ""))
	assert.Equal(t, "\r|\x1b[32m█\x1b[0m| 100.00%\n", buf.String())

	assert.ErrorIs(t, b.Loader(&buf, "x", 0, 0), panel.ErrInvalid)
}

func TestInspectNode(t *testing.T) {
	b := newBuilder(t, 12)
	b.View().SetName("menu")
	b.TopWall().Description("one two three four", 1).BottomWall()

	node := b.InspectNode()
	assert.Equal(t, "Document", node.Type)
	assert.Equal(t, "menu", node.ID)
	assert.Equal(t, 12, node.Bounds.Width)
	assert.Equal(t, 5, node.Bounds.Height)
	assert.Equal(t, 3, node.State["entries"])
	require.Len(t, node.Children, 3)
	assert.Equal(t, 1, node.Children[1].Bounds.Y)
	assert.Equal(t, 3, node.Children[1].Bounds.Height)
	assert.Equal(t, 4, node.Children[2].Bounds.Y)
}

func TestMainMenuSnapshot(t *testing.T) {
	b := newBuilder(t, 30)
	b.TopWall().
		Header("Main Menu").
		EmptyWall().
		Description("Pick an option below to continue.", 2).
		Options("Start", "Settings", "Quit").
		EmptyWall().
		RightString("v1.0", 1).
		BottomWall().
		WithColor("CYAN")
	require.NoError(t, b.Err())

	out := b.Render()
	snap := snapshot.New(t)
	snap.Assert("main_menu", out)
	snap.AssertWidth(strings.TrimSuffix(out, "\n"), 30)
}
