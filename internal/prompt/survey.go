package prompt

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	gherrors "githelper.dev/githelper/internal/errors"
)

// SurveyPrompter uses survey for questions on a terminal.
// Menu choices still go through plain line reads.
type SurveyPrompter struct {
	line *LinePrompter
	in   *os.File
	out  *os.File
}

func (p *SurveyPrompter) opts() survey.AskOpt {
	return survey.WithStdio(p.in, p.out, os.Stderr)
}

// Line implements Prompter
func (p *SurveyPrompter) Line(prompt string) (string, error) {
	return p.line.Line(prompt)
}

// Input implements Prompter
func (p *SurveyPrompter) Input(prompt, defaultValue string) (string, error) {
	var answer string
	q := &survey.Input{Message: prompt, Default: defaultValue}
	if err := survey.AskOne(q, &answer, p.opts()); err != nil {
		return "", translate(err)
	}
	return answer, nil
}

// Confirm implements Prompter
func (p *SurveyPrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	def := "n"
	if defaultValue {
		def = "y"
	}
	var answer string
	q := &survey.Input{Message: prompt + " (y/n)", Default: def}
	validate := survey.WithValidator(func(ans interface{}) error {
		if _, ok := ParseYesNo(fmt.Sprint(ans)); !ok {
			return errors.New("please answer y, n, yes or no")
		}
		return nil
	})
	if err := survey.AskOne(q, &answer, p.opts(), validate); err != nil {
		return false, translate(err)
	}
	value, _ := ParseYesNo(answer)
	return value, nil
}

// Select implements Prompter
func (p *SurveyPrompter) Select(prompt string, options []string, defaultValue string) (string, error) {
	var answer string
	q := &survey.Select{Message: prompt, Options: options}
	if defaultValue != "" {
		q.Default = defaultValue
	}
	if err := survey.AskOne(q, &answer, p.opts()); err != nil {
		return "", translate(err)
	}
	return answer, nil
}

// translate maps Ctrl+C to a plain cancellation
func translate(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return gherrors.ErrCanceled
	}
	return err
}
