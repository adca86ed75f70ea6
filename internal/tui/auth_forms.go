package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/opsboard/credvault/models"
)

// authFormModel backs both the sign-in and the account-creation screens;
// the register flag adds the display-name input.
type authFormModel struct {
	register   bool
	inputs     []textinput.Model
	labels     []string
	focus      int
	submitting bool
	errMsg     string
}

func newLoginForm() authFormModel {
	return newAuthForm(false)
}

func newRegisterForm() authFormModel {
	return newAuthForm(true)
}

func newAuthForm(register bool) authFormModel {
	labels := []string{"Login", "Password"}
	if register {
		labels = []string{"Login", "Name", "Password"}
	}

	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	passwordIdx := len(inputs) - 1
	inputs[passwordIdx].EchoMode = textinput.EchoPassword
	inputs[passwordIdx].EchoCharacter = '*'
	inputs[0].Focus()

	return authFormModel{register: register, inputs: inputs, labels: labels}
}

func (f authFormModel) toUser() models.User {
	user := models.User{
		Login:    strings.TrimSpace(f.inputs[0].Value()),
		Password: f.inputs[len(f.inputs)-1].Value(),
	}
	if f.register {
		user.Name = strings.TrimSpace(f.inputs[1].Value())
	}
	return user
}

func (f authFormModel) complete() bool {
	return f.inputs[0].Value() != "" && f.inputs[len(f.inputs)-1].Value() != ""
}

func (f *authFormModel) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *authFormModel) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f authFormModel) view() string {
	title := "SIGN IN"
	submit := "[Sign in]"
	if f.register {
		title = "CREATE ACCOUNT"
		submit = "[Create]"
	}
	if f.submitting {
		submit = submit[:len(submit)-1] + "...]"
	}

	var b strings.Builder
	for i, label := range f.labels {
		b.WriteString(padLabel(label))
		b.WriteString("[")
		b.WriteString(f.inputs[i].View())
		b.WriteString("]\n")
	}
	b.WriteString("\n")
	b.WriteString(submit)
	if f.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func padLabel(label string) string {
	const width = 10
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}
