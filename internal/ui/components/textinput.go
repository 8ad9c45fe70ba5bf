package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput is a focused bubbles textinput that only accepts digits.
type NumberInput struct {
	Model textinput.Model
}

// NewNumberInput creates a focused input that accepts up to maxDigits digits.
func NewNumberInput(prompt, placeholder string, maxDigits int) NumberInput {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = maxDigits
	ti.Focus()
	return NumberInput{Model: ti}
}

// Update drops any printable key that is not a digit.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if key := kmsg.String(); len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

func (n NumberInput) View() string {
	return n.Model.View()
}

// Value parses the entered digits.
func (n NumberInput) Value() (int, error) {
	return strconv.Atoi(n.Model.Value())
}
