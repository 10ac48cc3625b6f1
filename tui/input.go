package tui

import (
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// pathInput wraps a text input used to collect the destination path for a
// save operation.
type pathInput struct {
	input textinput.Model
}

func newPathInput() *pathInput {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "response.txt"
	ti.CharLimit = 256
	ti.Focus()
	return &pathInput{input: ti}
}

func (p *pathInput) value() string {
	return p.input.Value()
}

func (p *pathInput) handleKey(msg tea.KeyPressMsg) bool {
	p.input, _ = p.input.Update(msg)
	return true
}

func (p *pathInput) view(width int) string {
	return p.input.View() + "\n\n" +
		HelpStyle.Render("Enter: Save | Esc: Cancel")
}
