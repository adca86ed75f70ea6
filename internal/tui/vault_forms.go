package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// masterPasswordFormModel backs the vault setup and unlock screens. Setup
// shows a confirmation input; unlock is a single password prompt.
type masterPasswordFormModel struct {
	setup      bool
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	status     string
}

func newSetupForm() masterPasswordFormModel {
	return newMasterPasswordForm(true)
}

func newUnlockForm() masterPasswordFormModel {
	return newMasterPasswordForm(false)
}

func newMasterPasswordForm(setup bool) masterPasswordFormModel {
	count := 1
	if setup {
		count = 2
	}

	inputs := make([]textinput.Model, count)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].EchoMode = textinput.EchoPassword
		inputs[i].EchoCharacter = '*'
	}
	inputs[0].Focus()

	return masterPasswordFormModel{setup: setup, inputs: inputs}
}

func (f *masterPasswordFormModel) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *masterPasswordFormModel) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.inputs[f.focus].Blur()
	f.focus = 0
	f.inputs[0].Focus()
	f.submitting = false
}

func (f masterPasswordFormModel) view() string {
	title := "UNLOCK VAULT"
	intro := "Enter the master password to unlock the vault."
	submit := "[Unlock]"
	if f.setup {
		title = "SET UP VAULT"
		intro = "No vault exists yet. Choose a master password (8+ characters).\n" +
			"It protects every credential and cannot be recovered if lost."
		submit = "[Create vault]"
	}
	if f.submitting {
		submit = submit[:len(submit)-1] + "...]"
	}

	var b strings.Builder
	b.WriteString(intro)
	b.WriteString("\n\n")
	b.WriteString(padLabel("Password"))
	b.WriteString("[")
	b.WriteString(f.inputs[0].View())
	b.WriteString("]\n")
	if f.setup {
		b.WriteString(padLabel("Confirm"))
		b.WriteString("[")
		b.WriteString(f.inputs[1].View())
		b.WriteString("]\n")
	}
	b.WriteString("\n")
	b.WriteString(submit)

	if f.status != "" {
		b.WriteString("\n\n")
		b.WriteString(f.status)
	}
	if f.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
	}

	hotKeys := "tab: next field │ enter: submit"
	if !f.setup {
		hotKeys = "enter: submit"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}
