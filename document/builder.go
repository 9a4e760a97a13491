// Package document accumulates panel lines into a document that can be
// recolored, saved into a View, reloaded and rendered.
//
// A Builder is fluent: every mutating method returns the builder so calls
// chain. The first failing call records its error, appends nothing, and
// turns every later mutating call into a no-op until ClearErr. Check Err
// once at the end of a chain:
//
//	b, _ := document.New(30)
//	b.TopWall().Header("Menu").Options("Start", "Quit").BottomWall()
//	if err := b.Err(); err != nil {
//		return err
//	}
//	fmt.Print(b.Render())
package document

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"textpanel/color"
	"textpanel/inspect"
	"textpanel/log"
	"textpanel/panel"
)

// ErrEmptyDocument is returned by operations that need at least one entry.
var ErrEmptyDocument = errors.New("document is empty")

// Builder owns one ordered list of entries. Each entry is the output of one
// primitive followed by a line break; multi-line primitives produce a
// single entry holding several physical lines.
type Builder struct {
	engine *panel.Engine
	plain  panel.Glyphs
	lines  []string
	view   *View
	err    error
}

// New returns a builder drawing panels of the given width, bound to an
// empty unnamed view.
func New(width int) (*Builder, error) {
	engine, err := panel.New(width)
	if err != nil {
		return nil, err
	}
	return &Builder{
		engine: engine,
		plain:  engine.Glyphs(),
		view:   NewView(""),
	}, nil
}

// Err returns the first error recorded since construction or the last
// ClearErr.
func (b *Builder) Err() error {
	return b.err
}

// ClearErr forgets the recorded error so the builder accepts calls again.
func (b *Builder) ClearErr() *Builder {
	b.err = nil
	return b
}

func (b *Builder) fail(op string, err error) *Builder {
	b.err = fmt.Errorf("%s: %w", op, err)
	log.RenderTrace("builder", "%v", b.err)
	return b
}

// Width returns the current panel width.
func (b *Builder) Width() int {
	return b.engine.Width()
}

// Engine exposes the layout engine for callers that need a primitive
// without appending it.
func (b *Builder) Engine() *panel.Engine {
	return b.engine
}

// Len returns the number of entries.
func (b *Builder) Len() int {
	return len(b.lines)
}

// Lines returns a copy of the entries, each ending in a line break.
func (b *Builder) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Last returns the most recently appended entry.
func (b *Builder) Last() (string, bool) {
	if len(b.lines) == 0 {
		return "", false
	}
	return b.lines[len(b.lines)-1], true
}

// View returns the bound view.
func (b *Builder) View() *View {
	return b.view
}

func (b *Builder) add(op string, render func() (string, error)) *Builder {
	if b.err != nil {
		return b
	}

	done := log.GetProfiler().StartRender(op)
	s, err := render()
	done(err)
	if err != nil {
		return b.fail(op, err)
	}

	b.lines = append(b.lines, s+"\n")
	log.RenderTrace("builder", "%s appended %d line(s)", op, strings.Count(s, "\n")+1)
	return b
}

func fixed(s string) func() (string, error) {
	return func() (string, error) { return s, nil }
}

// Separator appends a full-width rule of the separator glyph.
func (b *Builder) Separator() *Builder {
	return b.add("separator", fixed(b.engine.Rule()))
}

// SeparatorOf appends n repetitions of material.
func (b *Builder) SeparatorOf(material string, n int) *Builder {
	return b.add("separator", func() (string, error) { return b.engine.Separator(material, n) })
}

// TopWall appends the panel ceiling.
func (b *Builder) TopWall() *Builder {
	return b.add("topWall", fixed(b.engine.TopWall()))
}

// BottomWall appends the panel floor.
func (b *Builder) BottomWall() *Builder {
	return b.add("bottomWall", fixed(b.engine.BottomWall()))
}

// EmptyWall appends a blank interior line.
func (b *Builder) EmptyWall() *Builder {
	return b.add("emptyWall", fixed(b.engine.EmptyWall()))
}

// Header appends a centered title.
func (b *Builder) Header(title string) *Builder {
	return b.add("header", func() (string, error) { return b.engine.Header(title) })
}

// Options appends a numbered option block as one entry.
func (b *Builder) Options(items ...string) *Builder {
	return b.add("options", func() (string, error) { return b.engine.Options(items) })
}

// Option appends a line with a bracketed button label.
func (b *Builder) Option(button, text string) *Builder {
	return b.add("option", func() (string, error) { return b.engine.Option(button, text) })
}

// Description appends a word-wrapped block as one entry.
func (b *Builder) Description(text string, padding int) *Builder {
	return b.add("description", func() (string, error) { return b.engine.Description(text, padding) })
}

// LeftString appends text inset padding columns from the left wall.
func (b *Builder) LeftString(text string, padding int) *Builder {
	return b.add("leftString", func() (string, error) { return b.engine.LeftString(text, padding) })
}

// RightString appends text inset padding columns from the right wall.
func (b *Builder) RightString(text string, padding int) *Builder {
	return b.add("rightString", func() (string, error) { return b.engine.RightString(text, padding) })
}

// StatusBanner appends an unbordered status line.
func (b *Builder) StatusBanner(kind panel.Status, message string) *Builder {
	return b.add("statusBanner", func() (string, error) { return panel.StatusBanner(kind, message) })
}

// Error appends an ERROR banner.
func (b *Builder) Error(message string) *Builder {
	return b.StatusBanner(panel.StatusError, message)
}

// Success appends a SUCCESS banner.
func (b *Builder) Success(message string) *Builder {
	return b.StatusBanner(panel.StatusSuccess, message)
}

// Warning appends a WARNING banner.
func (b *Builder) Warning(message string) *Builder {
	return b.StatusBanner(panel.StatusWarning, message)
}

// WithColor colors the interior of the last entry, leaving vertical walls
// untouched.
func (b *Builder) WithColor(fg string) *Builder {
	return b.recolorLast("withColor", fg, "", false)
}

// WithColors is WithColor with a background color as well.
func (b *Builder) WithColors(fg, bg string) *Builder {
	return b.recolorLast("withColor", fg, bg, false)
}

// WithColorIncludingBorder colors every line of the last entry whole.
func (b *Builder) WithColorIncludingBorder(fg string) *Builder {
	return b.recolorLast("withColorIncludingBorder", fg, "", true)
}

// WithColorsIncludingBorder is WithColorIncludingBorder with a background.
func (b *Builder) WithColorsIncludingBorder(fg, bg string) *Builder {
	return b.recolorLast("withColorIncludingBorder", fg, bg, true)
}

func (b *Builder) recolorLast(op, fg, bg string, border bool) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.lines) == 0 {
		return b.fail(op, ErrEmptyDocument)
	}
	if _, err := color.Wrap("", fg, bg); err != nil {
		return b.fail(op, err)
	}

	last := len(b.lines) - 1
	physical := strings.Split(strings.TrimSuffix(b.lines[last], "\n"), "\n")
	for i, line := range physical {
		var err error
		if border {
			physical[i], err = color.Wrap(line, fg, bg)
		} else {
			physical[i], err = b.colorSegments(line, fg, bg)
		}
		if err != nil {
			return b.fail(op, err)
		}
	}

	b.lines[last] = strings.Join(physical, "\n") + "\n"
	return b
}

// colorSegments wraps the text between vertical walls. Segments one column
// wide or less are left as they are so the line keeps its width.
func (b *Builder) colorSegments(line, fg, bg string) (string, error) {
	vertical := b.engine.Glyphs().Vertical
	if !strings.Contains(line, vertical) && vertical != b.plain.Vertical {
		// line drawn before SetBorderColor
		vertical = b.plain.Vertical
	}

	segments := strings.Split(line, vertical)
	for i, seg := range segments {
		if panel.TextWidth(seg) <= 1 {
			continue
		}
		wrapped, err := color.Wrap(seg, fg, bg)
		if err != nil {
			return "", err
		}
		segments[i] = wrapped
	}
	return strings.Join(segments, vertical), nil
}

// SetDefaultColor tints every entry with fg. Resets already embedded in an
// entry switch back to fg instead of the terminal default. Unknown names
// resolve to a plain reset, so this never fails.
func (b *Builder) SetDefaultColor(fg string) *Builder {
	if b.err != nil {
		return b
	}

	seq := color.ResolveOrDefault(fg)
	reset := color.Reset()
	for i, entry := range b.lines {
		physical := strings.Split(strings.TrimSuffix(entry, "\n"), "\n")
		for j, line := range physical {
			physical[j] = seq + strings.ReplaceAll(line, reset, reset+seq) + reset
		}
		b.lines[i] = strings.Join(physical, "\n") + "\n"
	}
	log.RenderTrace("builder", "default color %s applied to %d entries", fg, len(b.lines))
	return b
}

// SetBorderColor draws the walls of later primitives in fg. Entries already
// appended keep their walls. An empty name restores plain walls.
func (b *Builder) SetBorderColor(fg string) *Builder {
	if b.err != nil {
		return b
	}
	if fg == "" {
		if err := b.engine.SetGlyphs(b.plain); err != nil {
			return b.fail("setBorderColor", err)
		}
		return b
	}

	g, err := b.plain.Colorize(fg)
	if err != nil {
		return b.fail("setBorderColor", err)
	}
	if err := b.engine.SetGlyphs(g); err != nil {
		return b.fail("setBorderColor", err)
	}
	return b
}

// SetWidth changes the width used by later primitives.
func (b *Builder) SetWidth(width int) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.engine.SetWidth(width); err != nil {
		return b.fail("setWidth", err)
	}
	return b
}

// Render returns the entries joined in order. It does not change state.
func (b *Builder) Render() string {
	text := strings.Join(b.lines, "")
	log.GetProfiler().RecordDocument(strings.Count(text, "\n"))
	return text
}

// Save stores the rendered entries in the bound view and clears them.
func (b *Builder) Save() *Builder {
	if b.err != nil {
		return b
	}
	b.view.store(b.lines)
	log.RenderTrace("builder", "saved %d entries into view %q", len(b.lines), b.view.Name())
	b.lines = nil
	return b
}

// SaveAndReset saves, then binds a fresh unnamed view. The returned view
// holds what was saved.
func (b *Builder) SaveAndReset() (*View, error) {
	if b.err != nil {
		return nil, b.err
	}
	saved := b.Save().view
	b.view = NewView("")
	return saved, nil
}

// SaveAndReturn stores the entries in the bound view and returns it. The
// entries stay in the builder.
func (b *Builder) SaveAndReturn() (*View, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.view.store(b.lines)
	return b.view, nil
}

// Load replaces the entries with the content of the bound view. A view
// saved by a Builder keeps its block structure; text set directly or read
// from disk comes back as one entry per physical line.
func (b *Builder) Load() *Builder {
	if b.err != nil {
		return b
	}
	b.lines = b.view.entries()
	log.RenderTrace("builder", "loaded %d entries from view %q", len(b.lines), b.view.Name())
	return b
}

// Use binds the builder to v. Entries are not touched.
func (b *Builder) Use(v *View) *Builder {
	if b.err != nil {
		return b
	}
	if v == nil {
		return b.fail("use", fmt.Errorf("%w: nil view", panel.ErrInvalid))
	}
	b.view = v
	return b
}

// Reset drops every entry and the recorded error and binds a fresh view.
// Width and border color are kept.
func (b *Builder) Reset() *Builder {
	b.lines = nil
	b.view = NewView("")
	b.err = nil
	return b
}

// Loader plays a loading bar of ticks frames to w, waiting interval between
// frames. It blocks until the bar is complete.
func (b *Builder) Loader(w io.Writer, message string, ticks int, interval time.Duration) error {
	frames, err := b.engine.LoadingFrames(message, ticks)
	if err != nil {
		return err
	}
	return panel.PlayFrames(w, frames, interval)
}

// ColoredLoader is Loader with the bar drawn in fg and a percentage after
// it. An empty fg uses panel.DefaultLoadingColor.
func (b *Builder) ColoredLoader(w io.Writer, message string, ticks int, interval time.Duration, fg string) error {
	frames, err := b.engine.ColoredLoadingFrames(message, ticks, fg)
	if err != nil {
		return err
	}
	return panel.PlayFrames(w, frames, interval)
}

var _ inspect.Introspectable = (*Builder)(nil)

// InspectNode describes the builder and its entries.
func (b *Builder) InspectNode() *inspect.Node {
	lines := 0
	for _, entry := range b.lines {
		lines += strings.Count(entry, "\n")
	}

	node := inspect.NewNode("Document").
		WithID(b.view.Name()).
		WithBounds(0, 0, b.engine.Width(), lines).
		WithState("entries", len(b.lines)).
		WithState("colored_border", b.engine.Glyphs().Colorized())
	if b.err != nil {
		node.WithState("error", b.err.Error())
	}

	y := 0
	for i, entry := range b.lines {
		height := strings.Count(entry, "\n")
		child := inspect.NewNode("Entry").
			WithID(fmt.Sprintf("entry-%d", i)).
			WithBounds(0, y, b.engine.Width(), height).
			WithContent(strings.TrimSuffix(entry, "\n"))
		node.AddChild(child)
		y += height
	}
	return node
}
