// Package prompt reads answers from the user, one line per question.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter asks the user for input
type Prompter interface {
	// Line prints prompt and returns the next input line, trimmed. io.EOF ends input.
	Line(prompt string) (string, error)
	// Input asks for free text; an empty answer yields defaultValue.
	Input(prompt, defaultValue string) (string, error)
	// Confirm asks a y/n/yes/no question (case-sensitive); an empty answer yields defaultValue.
	Confirm(prompt string, defaultValue bool) (bool, error)
	// Select asks for one of options; an empty answer yields defaultValue.
	Select(prompt string, options []string, defaultValue string) (string, error)
}

// New returns a survey-backed prompter when in/out are the terminal, a line prompter otherwise.
// GITHELPER_NON_INTERACTIVE forces the line prompter.
func New(in io.Reader, out io.Writer) Prompter {
	line := NewLinePrompter(in, out)
	if os.Getenv("GITHELPER_NON_INTERACTIVE") != "" {
		return line
	}
	stdin, inOK := in.(*os.File)
	stdout, outOK := out.(*os.File)
	if inOK && outOK && isTerminal(stdin) && isTerminal(stdout) {
		return &SurveyPrompter{line: line, in: stdin, out: stdout}
	}
	return line
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LinePrompter reads plain lines from any reader
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Line implements Prompter
func (p *LinePrompter) Line(prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprint(p.out, prompt)
	}
	text, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && text != "" {
			return strings.TrimSpace(text), nil
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Input implements Prompter
func (p *LinePrompter) Input(prompt, defaultValue string) (string, error) {
	label := prompt + ": "
	if defaultValue != "" {
		label = fmt.Sprintf("%s [%s]: ", prompt, defaultValue)
	}
	answer, err := p.Line(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm implements Prompter
func (p *LinePrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	hint := "[y/N]"
	if defaultValue {
		hint = "[Y/n]"
	}
	for {
		answer, err := p.Line(fmt.Sprintf("%s %s: ", prompt, hint))
		if err != nil {
			return false, err
		}
		if answer == "" {
			return defaultValue, nil
		}
		if value, ok := ParseYesNo(answer); ok {
			return value, nil
		}
		_, _ = fmt.Fprintln(p.out, "Please answer y, n, yes or no.")
	}
}

// Select implements Prompter. The answer may be the option's number or its text.
func (p *LinePrompter) Select(prompt string, options []string, defaultValue string) (string, error) {
	for i, opt := range options {
		_, _ = fmt.Fprintf(p.out, "%2d) %s\n", i+1, opt)
	}
	for {
		answer, err := p.Input(prompt, defaultValue)
		if err != nil {
			return "", err
		}
		for i, opt := range options {
			if answer == opt || answer == strconv.Itoa(i+1) {
				return opt, nil
			}
		}
		_, _ = fmt.Fprintf(p.out, "Please pick one of 1-%d.\n", len(options))
	}
}

// ParseYesNo accepts exactly "y", "yes", "n" and "no"
func ParseYesNo(answer string) (bool, bool) {
	switch answer {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
