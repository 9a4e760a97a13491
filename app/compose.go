package app

import (
	"fmt"
	"strings"

	"textpanel/document"
	"textpanel/log"
	"textpanel/panel"
)

// Defaults fill in what a definition leaves out, usually from the config
// file or command-line flags.
type Defaults struct {
	Width        int
	DefaultColor string
	BorderColor  string
}

// Compose draws l into a new builder. The document text is b.Render().
// The view bound to the builder carries the definition name.
func Compose(l *Layout, d Defaults) (*document.Builder, error) {
	width := l.Width
	if width == 0 {
		width = d.Width
	}

	b, err := document.New(width)
	if err != nil {
		return nil, err
	}
	b.View().SetName(l.Name)

	if border := pick(l.BorderColor, d.BorderColor); border != "" {
		if err := b.SetBorderColor(border).Err(); err != nil {
			return nil, fmt.Errorf("border_color: %w", err)
		}
	}

	for i, block := range l.Blocks {
		addBlock(b, block)
		if block.Color != "" {
			if block.IncludingBorder {
				b.WithColorsIncludingBorder(block.Color, block.Background)
			} else {
				b.WithColors(block.Color, block.Background)
			}
		}
		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i+1, block.Kind, err)
		}
	}

	if fg := pick(l.DefaultColor, d.DefaultColor); fg != "" {
		b.SetDefaultColor(fg)
	}

	log.InfoLog.Printf("composed %s: %d entries at width %d", l.Name, b.Len(), width)
	return b, nil
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func addBlock(b *document.Builder, block Block) {
	switch block.Kind {
	case KindSeparator:
		if block.Material != "" || block.Count != 0 {
			material, count := block.Material, block.Count
			if material == "" {
				material = b.Engine().Glyphs().Separator
			}
			if count == 0 {
				count = b.Width()
			}
			b.SeparatorOf(material, count)
		} else {
			b.Separator()
		}
	case KindTop:
		b.TopWall()
	case KindBottom:
		b.BottomWall()
	case KindEmpty:
		b.EmptyWall()
	case KindHeader:
		b.Header(block.Text)
	case KindOptions:
		b.Options(block.Items...)
	case KindOption:
		b.Option(block.Button, block.Text)
	case KindDescription:
		b.Description(block.Text, block.Padding)
	case KindLeft:
		b.LeftString(block.Text, block.Padding)
	case KindRight:
		b.RightString(block.Text, block.Padding)
	case KindError:
		b.StatusBanner(panel.StatusError, block.Text)
	case KindSuccess:
		b.StatusBanner(panel.StatusSuccess, block.Text)
	case KindWarning:
		b.StatusBanner(panel.StatusWarning, block.Text)
	}
}

// Render composes l and returns the document text.
func Render(l *Layout, d Defaults) (string, error) {
	b, err := Compose(l, d)
	if err != nil {
		return "", err
	}
	return b.Render(), nil
}

// Outline lists the blocks of l one per line, for dry runs.
func Outline(l *Layout) string {
	var sb strings.Builder
	for i, block := range l.Blocks {
		fmt.Fprintf(&sb, "%2d %-11s", i+1, block.Kind)
		switch {
		case block.Text != "":
			fmt.Fprintf(&sb, " %q", block.Text)
		case len(block.Items) > 0:
			fmt.Fprintf(&sb, " %q", block.Items)
		}
		if block.Color != "" {
			fmt.Fprintf(&sb, " [%s]", block.Color)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
