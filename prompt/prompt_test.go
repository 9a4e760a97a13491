package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestString(t *testing.T) {
	p, out := newPrompter("\nhello world\n  name_1  \n")

	got, err := p.String("Name")
	require.NoError(t, err)
	assert.Equal(t, "name_1", got)

	assert.Equal(t,
		"> Name: Input can't be empty, try again.\n"+
			"> Name: Input can only contain letters, numbers and '_', try again.\n"+
			"> Name: ",
		out.String())
}

func TestText(t *testing.T) {
	p, _ := newPrompter("hello, world!\n")

	got, err := p.Text("Greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello, world!", got)
}

func TestMatch(t *testing.T) {
	p, out := newPrompter("abc\n12-34\n")

	got, err := p.Match("Code", `\d{2}-\d{2}`)
	require.NoError(t, err)
	assert.Equal(t, "12-34", got)
	assert.Contains(t, out.String(), "Input wrong format.")
}

func TestMatchBadPattern(t *testing.T) {
	p, _ := newPrompter("x\n")

	_, err := p.Match("Code", "(")
	assert.Error(t, err)
}

func TestInt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		floor     int
		ceiling   int
		want      int
		complaint string
	}{
		{name: "unbounded", input: "-42\n", want: -42},
		{name: "not a number", input: "abc\n7\n", floor: 1, ceiling: 10, want: 7, complaint: "Please input an integer."},
		{name: "out of range", input: "11\n10\n", floor: 1, ceiling: 10, want: 10, complaint: "Number is in invalid range. The range is 1 - 10"},
		{name: "whitespace trimmed", input: "  3 \n", floor: 0, ceiling: 5, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newPrompter(tt.input)
			got, err := p.Int("Number", tt.floor, tt.ceiling)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.complaint != "" {
				assert.Contains(t, out.String(), tt.complaint)
			}
		})
	}
}

func TestIntBounds(t *testing.T) {
	p, _ := newPrompter("1\n")

	_, err := p.Int("Number", 5, 1)
	assert.ErrorIs(t, err, ErrBounds)

	_, err = p.Int("Number", 3, 3)
	assert.ErrorIs(t, err, ErrBounds)
}

func TestFloat(t *testing.T) {
	p, out := newPrompter("x\n9.5\n2.25\n")

	got, err := p.Float("Price", 0.5, 5)
	require.NoError(t, err)
	assert.InDelta(t, 2.25, got, 1e-9)

	assert.Contains(t, out.String(), "Please input a number.")
	assert.Contains(t, out.String(), "The range is 0.50 - 5.00")

	_, err = p.Float("Price", 2, 1)
	assert.ErrorIs(t, err, ErrBounds)
}

func TestChar(t *testing.T) {
	p, out := newPrompter("\n   yes\n")

	got, err := p.Char("Continue")
	require.NoError(t, err)
	assert.Equal(t, 'y', got)
	assert.Contains(t, out.String(), "Can't be empty, please input a character.")
}

func TestEndOfInput(t *testing.T) {
	p, _ := newPrompter("not a number\n")

	_, err := p.Int("Number", 0, 0)
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = p.String("Name")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestWrappedComplaints(t *testing.T) {
	p, out := newPrompter("bad input!\nok\n")
	p.WithWrap(20)

	_, err := p.String("Name")
	require.NoError(t, err)

	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, ">") {
			continue
		}
		assert.LessOrEqual(t, len(line), 20, line)
	}
}
