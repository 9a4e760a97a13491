// Package snapshot compares rendered panels against golden files under
// testdata/golden. Set UPDATE_GOLDEN=1 to rewrite the files from the
// current output.
package snapshot

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

// GoldenDir is the default directory for golden files
const GoldenDir = "testdata/golden"

var csiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// Snap compares output for one test.
type Snap struct {
	t         *testing.T
	goldenDir string
	update    bool
}

// New creates a Snap for t.
func New(t *testing.T) *Snap {
	return &Snap{
		t:         t,
		goldenDir: GoldenDir,
		update:    os.Getenv("UPDATE_GOLDEN") == "1",
	}
}

// WithDir sets a custom golden file directory
func (s *Snap) WithDir(dir string) *Snap {
	s.goldenDir = dir
	return s
}

// Assert compares actual, stripped of color, against <name>.golden.
func (s *Snap) Assert(name, actual string) {
	s.t.Helper()

	goldenPath := filepath.Join(s.goldenDir, name+".golden")
	normalized := normalizeOutput(actual)

	if s.update {
		if err := os.MkdirAll(s.goldenDir, 0755); err != nil {
			s.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(normalized), 0644); err != nil {
			s.t.Fatalf("failed to write golden file: %v", err)
		}
		s.t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.t.Fatalf("Golden file not found: %s\nRun with UPDATE_GOLDEN=1 to create it.\nActual output:\n%s", goldenPath, normalized)
		}
		s.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != normalized {
		s.t.Errorf("Snapshot mismatch for %s\n\nExpected:\n%s\n\nActual:\n%s\n\nRun with UPDATE_GOLDEN=1 to update.",
			name, string(expected), normalized)
	}
}

// AssertWidth fails the test for every line of actual that does not occupy
// exactly width columns.
func (s *Snap) AssertWidth(actual string, width int) {
	s.t.Helper()
	for i, line := range strings.Split(StripANSI(actual), "\n") {
		if w := runewidth.StringWidth(line); w != width {
			s.t.Errorf("line %d is %d columns, want %d: %q", i, w, width, line)
		}
	}
}

// normalizeOutput strips color and normalizes line endings. Trailing fill
// is kept since panel lines end on a wall.
func normalizeOutput(s string) string {
	s = StripANSI(s)
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// StripANSI removes CSI escape sequences.
func StripANSI(s string) string {
	return csiPattern.ReplaceAllString(s, "")
}

// Lines returns the line count of the rendered output
func Lines(s string) int {
	return len(strings.Split(StripANSI(s), "\n"))
}

// Width returns the widest line in terminal columns.
func Width(s string) int {
	maxWidth := 0
	for _, line := range strings.Split(StripANSI(s), "\n") {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// Uniform reports whether every line has the same width, and that width.
func Uniform(s string) (int, bool) {
	lines := strings.Split(StripANSI(s), "\n")
	want := runewidth.StringWidth(lines[0])
	for _, line := range lines[1:] {
		if runewidth.StringWidth(line) != want {
			return 0, false
		}
	}
	return want, true
}
