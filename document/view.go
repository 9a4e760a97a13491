package document

import (
	"io"
	"strings"
)

// DefaultScrollLines is how many blank lines Deploy prints when the caller
// does not know the terminal height.
const DefaultScrollLines = 40

// View is a named snapshot of a rendered document. Every Set or Save fully
// replaces the previous text.
type View struct {
	name string
	text string

	// entries saved by a Builder; kept only while they still join to text
	blocks []string
}

// NewView returns an empty view.
func NewView(name string) *View {
	return &View{name: name}
}

// Name returns the view name. It may be empty for scratch views.
func (v *View) Name() string {
	return v.name
}

// SetName renames the view.
func (v *View) SetName(name string) {
	v.name = name
}

// Get returns the stored text verbatim.
func (v *View) Get() string {
	return v.text
}

// Set replaces the stored text.
func (v *View) Set(text string) {
	v.text = text
	v.blocks = nil
}

// Lines returns the stored text split into physical lines, without the
// trailing empty element a final newline would produce.
func (v *View) Lines() []string {
	if v.text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(v.text, "\n"), "\n")
}

func (v *View) store(entries []string) {
	v.text = strings.Join(entries, "")
	v.blocks = append([]string(nil), entries...)
}

// entries returns the saved block structure when it still matches the text,
// otherwise the text split after each line break.
func (v *View) entries() []string {
	if len(v.blocks) > 0 && strings.Join(v.blocks, "") == v.text {
		return append([]string(nil), v.blocks...)
	}
	if v.text == "" {
		return nil
	}

	parts := strings.SplitAfter(v.text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// Deploy scrolls previous terminal content away with scroll blank lines and
// prints the stored text once. A non-positive scroll uses DefaultScrollLines.
func (v *View) Deploy(w io.Writer, scroll int) error {
	if scroll <= 0 {
		scroll = DefaultScrollLines
	}
	if _, err := io.WriteString(w, strings.Repeat("\n", scroll)); err != nil {
		return err
	}
	_, err := io.WriteString(w, v.text)
	return err
}
