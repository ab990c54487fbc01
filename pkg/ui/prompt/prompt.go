// Package prompt implements types.Prompter.
package prompt

import (
	"github.com/pterm/pterm"
)

// Terminal asks questions with pterm's interactive printers.
type Terminal struct{}

// NewTerminal creates an interactive prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(question string, defaultValue bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultValue).
		Show(question)
}

// Input asks for a line of text.
func (t *Terminal) Input(question, defaultValue string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultValue).
		Show(question)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Select asks to pick one of options.
func (t *Terminal) Select(question string, options []string, defaultOption string) (string, error) {
	printer := pterm.DefaultInteractiveSelect.WithOptions(options)
	if defaultOption != "" {
		printer = printer.WithDefaultOption(defaultOption)
	}
	return printer.Show(question)
}

// Defaults answers every question with its default. It is used when stdin is
// not a terminal.
type Defaults struct{}

// Confirm returns defaultValue.
func (Defaults) Confirm(_ string, defaultValue bool) (bool, error) { return defaultValue, nil }

// Input returns defaultValue.
func (Defaults) Input(_ string, defaultValue string) (string, error) { return defaultValue, nil }

// Select returns defaultOption, or the first option when there is no default.
func (Defaults) Select(_ string, options []string, defaultOption string) (string, error) {
	if defaultOption == "" && len(options) > 0 {
		return options[0], nil
	}
	return defaultOption, nil
}
