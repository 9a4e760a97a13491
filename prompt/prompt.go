// Package prompt reads validated values from a line-oriented input stream.
//
// Every read prints "> message: " and keeps asking until the typed line is
// valid. Validation failures are written to the output and never returned;
// the only errors are bad arguments and the end of input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/muesli/reflow/wordwrap"

	"textpanel/log"
)

var (
	// ErrBounds is returned when floor and ceiling describe no valid range.
	ErrBounds = errors.New("invalid bounds")
	// ErrNoInput is returned when the input ends before a valid value was read.
	ErrNoInput = errors.New("no more input")
)

var wordPattern = regexp.MustCompile(`^\w+$`)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in    *bufio.Scanner
	out   io.Writer
	width int
}

// New returns a Prompter reading lines from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// WithWrap wraps validation messages at width columns. Zero disables
// wrapping.
func (p *Prompter) WithWrap(width int) *Prompter {
	p.width = width
	return p
}

func (p *Prompter) ask(message string) (string, error) {
	fmt.Fprintf(p.out, "> %s: ", message)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoInput, err)
		}
		return "", ErrNoInput
	}
	return p.in.Text(), nil
}

func (p *Prompter) complain(msg string) {
	log.Debug("prompt rejected input: %s", msg)
	if p.width > 0 {
		msg = wordwrap.String(msg, p.width)
	}
	fmt.Fprintln(p.out, msg)
}

// String reads a non-empty word made of letters, digits and '_'.
func (p *Prompter) String(message string) (string, error) {
	return p.readString(message, false, nil)
}

// Text reads any non-empty line.
func (p *Prompter) Text(message string) (string, error) {
	return p.readString(message, true, nil)
}

// Match reads a non-empty line that fully matches pattern.
func (p *Prompter) Match(message, pattern string) (string, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return p.readString(message, true, re)
}

func (p *Prompter) readString(message string, allowSpecial bool, re *regexp.Regexp) (string, error) {
	for {
		line, err := p.ask(message)
		if err != nil {
			return "", err
		}

		s := strings.TrimSpace(line)
		switch {
		case s == "":
			p.complain("Input can't be empty, try again.")
		case !allowSpecial && !wordPattern.MatchString(s):
			p.complain("Input can only contain letters, numbers and '_', try again.")
		case re != nil && !re.MatchString(s):
			p.complain("Input wrong format.")
		default:
			return s, nil
		}
	}
}

// checkBounds rejects floor > ceiling and equal non-zero bounds. Zero for
// both means unbounded.
func checkBounds[T int | float64](floor, ceiling T) error {
	if floor > ceiling {
		return fmt.Errorf("%w: floor %v is above ceiling %v", ErrBounds, floor, ceiling)
	}
	if floor == ceiling && floor != 0 {
		return fmt.Errorf("%w: floor and ceiling are both %v", ErrBounds, floor)
	}
	return nil
}

// Int reads an integer in [floor, ceiling]. Passing 0, 0 accepts any
// integer.
func (p *Prompter) Int(message string, floor, ceiling int) (int, error) {
	if err := checkBounds(floor, ceiling); err != nil {
		return 0, err
	}
	bounded := floor != 0 || ceiling != 0

	for {
		line, err := p.ask(message)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil:
			p.complain("Please input an integer.")
		case bounded && (n < floor || n > ceiling):
			p.complain(fmt.Sprintf("Number is in invalid range. The range is %d - %d", floor, ceiling))
		default:
			return n, nil
		}
	}
}

// Float reads a number in [floor, ceiling]. Passing 0, 0 accepts any
// number.
func (p *Prompter) Float(message string, floor, ceiling float64) (float64, error) {
	if err := checkBounds(floor, ceiling); err != nil {
		return 0, err
	}
	bounded := floor != 0 || ceiling != 0

	for {
		line, err := p.ask(message)
		if err != nil {
			return 0, err
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		switch {
		case err != nil:
			p.complain("Please input a number.")
		case bounded && (f < floor || f > ceiling):
			p.complain(fmt.Sprintf("Number is in invalid range. The range is %.2f - %.2f", floor, ceiling))
		default:
			return f, nil
		}
	}
}

// Char reads the first non-space character of a line.
func (p *Prompter) Char(message string) (rune, error) {
	for {
		line, err := p.ask(message)
		if err != nil {
			return 0, err
		}

		s := strings.TrimLeftFunc(line, unicode.IsSpace)
		if s == "" {
			p.complain("Can't be empty, please input a character.")
			continue
		}
		return []rune(s)[0], nil
	}
}
