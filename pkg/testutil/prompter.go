// pkg/testutil/prompter.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Scripted types.Prompter for commands that ask questions

package testutil

// Prompter answers questions from a script. Unscripted questions get their default
// answer, so a zero Prompter behaves like a user pressing enter everywhere.
type Prompter struct {
	// Confirms are consumed in order by Confirm.
	Confirms []bool
	// Answers maps a question to the text returned by Input or Select.
	Answers map[string]string
	// Asked records every question in order.
	Asked []string
}

// Confirm implements types.Prompter.
func (p *Prompter) Confirm(question string, defaultValue bool) (bool, error) {
	p.Asked = append(p.Asked, question)
	if len(p.Confirms) == 0 {
		return defaultValue, nil
	}
	answer := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return answer, nil
}

// Input implements types.Prompter.
func (p *Prompter) Input(question, defaultValue string) (string, error) {
	p.Asked = append(p.Asked, question)
	if answer, ok := p.Answers[question]; ok {
		return answer, nil
	}
	return defaultValue, nil
}

// Select implements types.Prompter.
func (p *Prompter) Select(question string, options []string, defaultOption string) (string, error) {
	p.Asked = append(p.Asked, question)
	if answer, ok := p.Answers[question]; ok {
		return answer, nil
	}
	if defaultOption == "" && len(options) > 0 {
		return options[0], nil
	}
	return defaultOption, nil
}
