package panel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"textpanel/color"
)

// DefaultLoadingColor is used by colored loading bars when no color is given.
const DefaultLoadingColor = "GREEN"

// sleep is swapped out in tests.
var sleep = time.Sleep

func loadingPrefix(message string) string {
	if message == "" {
		return ""
	}
	return message + "\t"
}

func (e *Engine) bar(done, ticks int) string {
	return strings.Repeat(e.glyphs.LoadComplete, done) + strings.Repeat(e.glyphs.LoadIncomplete, ticks-done)
}

// LoadingFrames returns the frames of a loading bar with ticks steps. Frame i
// shows i+1 completed glyphs followed by the remaining incomplete ones.
func (e *Engine) LoadingFrames(message string, ticks int) ([]string, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("%w: loading bar needs at least one tick, got %d", ErrInvalid, ticks)
	}

	prefix := loadingPrefix(message)
	frames := make([]string, ticks)
	for i := range frames {
		frames[i] = prefix + e.bar(i+1, ticks)
	}
	return frames, nil
}

// ColoredLoadingFrames is LoadingFrames with the bar drawn in fg and a
// completion percentage after it.
func (e *Engine) ColoredLoadingFrames(message string, ticks int, fg string) ([]string, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("%w: loading bar needs at least one tick, got %d", ErrInvalid, ticks)
	}
	if fg == "" {
		fg = DefaultLoadingColor
	}
	seq, err := color.Resolve(fg, color.Foreground)
	if err != nil {
		return nil, err
	}

	prefix := loadingPrefix(message)
	frames := make([]string, ticks)
	for i := range frames {
		pct := 100 * float64(i+1) / float64(ticks)
		frames[i] = fmt.Sprintf("%s|%s%s%s| %.2f%%", prefix, seq, e.bar(i+1, ticks), color.Reset(), pct)
	}
	return frames, nil
}

// PlayFrames writes each frame over the previous one, waiting interval
// between frames, and ends with a newline. It blocks until every frame has
// been written.
func PlayFrames(w io.Writer, frames []string, interval time.Duration) error {
	for i, frame := range frames {
		if i > 0 {
			sleep(interval)
		}
		if _, err := io.WriteString(w, "\r"+frame); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
