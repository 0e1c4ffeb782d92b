package console

import (
	survey "github.com/AlecAivazis/survey/v2"
	"github.com/gopak/mgrep/internal/config"
)

// Prompter asks the user questions while building a config file.
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
	Select(message string, options []string, def string) (string, error)
}

type surveyPrompter struct{}

// NewSurveyPrompter returns a Prompter backed by the terminal.
func NewSurveyPrompter() Prompter { return surveyPrompter{} }

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	ok := def
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (surveyPrompter) Select(message string, options []string, def string) (string, error) {
	var out string
	if err := survey.AskOne(&survey.Select{Message: message, Options: options, Default: def}, &out); err != nil {
		return "", err
	}
	return out, nil
}

// AskConfig builds a Config from the user's answers, starting from base.
func AskConfig(p Prompter, base config.Config) (config.Config, error) {
	cfg := base
	d := &cfg.Defaults
	questions := []struct {
		msg string
		dst *bool
	}{
		{"Ignore case by default (-i)?", &d.IgnoreCase},
		{"Show line numbers by default (-n)?", &d.LineNumbers},
		{"Invert matches by default (-v)?", &d.InvertMatch},
		{"Recurse into directories by default (-r)?", &d.Recursive},
		{"Show file names by default (-f)?", &d.FileNames},
		{"Highlight matches by default (-c)?", &d.Highlight},
	}
	for _, q := range questions {
		v, err := p.Confirm(q.msg, *q.dst)
		if err != nil {
			return config.Config{}, err
		}
		*q.dst = v
	}
	def := cfg.HighlightColor
	if def == "" {
		def = "red"
	}
	c, err := p.Select("Highlight color", HighlightColors, def)
	if err != nil {
		return config.Config{}, err
	}
	cfg.HighlightColor = c
	return cfg, nil
}
