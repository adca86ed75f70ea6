package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/opsboard/credvault/models"
)

type formStage int

const (
	formStageMain formStage = iota
	formStageField
)

// Text input positions on the main stage. The category selector sits
// between name and service URL and is not a text input.
const (
	formInputName = iota
	formInputServiceURL
	formInputUsername
	formInputPassword
	formInputNotes
	formInputPurpose
	formInputTOTP
	formInputCount
)

const formCategoryPos = 1

// credentialFormModel backs both the create and the edit screen. Custom
// fields are appended through a nested mini-form (formStageField).
type credentialFormModel struct {
	editing bool
	id      string

	inputs      []textinput.Model
	categoryIdx int
	focus       int

	fields []models.CustomField

	stage        formStage
	fieldTypeIdx int
	fieldInputs  []textinput.Model
	fieldFocus   int

	submitting bool
	errMsg     string
}

func newCredentialForm(cred *models.CredentialDecrypted) credentialFormModel {
	inputs := make([]textinput.Model, formInputCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[formInputPassword].EchoMode = textinput.EchoPassword
	inputs[formInputPassword].EchoCharacter = '*'
	inputs[formInputName].Focus()

	fieldInputs := make([]textinput.Model, 3)
	for i := range fieldInputs {
		fieldInputs[i] = textinput.New()
		fieldInputs[i].Width = 40
	}
	fieldInputs[2].Placeholder = "comma-separated"

	m := credentialFormModel{inputs: inputs, fieldInputs: fieldInputs}
	if cred == nil {
		return m
	}

	m.editing = true
	m.id = cred.ID
	m.inputs[formInputName].SetValue(cred.Name)
	m.inputs[formInputServiceURL].SetValue(cred.ServiceURL)
	m.inputs[formInputUsername].SetValue(cred.Username)
	m.inputs[formInputPassword].SetValue(cred.Password)
	m.inputs[formInputNotes].SetValue(cred.Notes)
	m.inputs[formInputPurpose].SetValue(cred.Purpose)
	m.inputs[formInputTOTP].SetValue(cred.TOTPSecret)
	m.fields = append(m.fields, cred.CustomFields...)

	for i, c := range models.Categories() {
		if c == cred.Category {
			m.categoryIdx = i
			break
		}
	}
	return m
}

func (f credentialFormModel) category() models.Category {
	return models.Categories()[f.categoryIdx]
}

func (f credentialFormModel) toRequest() models.CredentialWriteRequest {
	return models.CredentialWriteRequest{
		Name:         strings.TrimSpace(f.inputs[formInputName].Value()),
		Category:     f.category(),
		ServiceURL:   strings.TrimSpace(f.inputs[formInputServiceURL].Value()),
		Username:     f.inputs[formInputUsername].Value(),
		Password:     f.inputs[formInputPassword].Value(),
		Notes:        f.inputs[formInputNotes].Value(),
		Purpose:      f.inputs[formInputPurpose].Value(),
		TOTPSecret:   f.inputs[formInputTOTP].Value(),
		CustomFields: f.fields,
	}
}

// positionCount is the number of focusable rows: the inputs plus the
// category selector.
func (f credentialFormModel) positionCount() int {
	return formInputCount + 1
}

// inputIndex maps a focus position to its text input, skipping the category
// selector row. The second result is false on the selector itself.
func (f credentialFormModel) inputIndex(pos int) (int, bool) {
	switch {
	case pos < formCategoryPos:
		return pos, true
	case pos == formCategoryPos:
		return 0, false
	default:
		return pos - 1, true
	}
}

func (f *credentialFormModel) focusPosition(pos int) {
	if idx, ok := f.inputIndex(f.focus); ok {
		f.inputs[idx].Blur()
	}
	f.focus = pos
	if idx, ok := f.inputIndex(f.focus); ok {
		f.inputs[idx].Focus()
	}
}

func (f *credentialFormModel) focusNext() {
	f.focusPosition((f.focus + 1) % f.positionCount())
}

func (f *credentialFormModel) focusPrev() {
	f.focusPosition((f.focus - 1 + f.positionCount()) % f.positionCount())
}

func (f *credentialFormModel) cycleCategory(delta int) {
	categories := models.Categories()
	f.categoryIdx = (f.categoryIdx + delta + len(categories)) % len(categories)
}

// enterFieldStage opens the custom-field mini-form.
func (f *credentialFormModel) enterFieldStage() {
	if idx, ok := f.inputIndex(f.focus); ok {
		f.inputs[idx].Blur()
	}
	f.stage = formStageField
	f.fieldTypeIdx = 0
	f.fieldFocus = 0
	for i := range f.fieldInputs {
		f.fieldInputs[i].SetValue("")
		f.fieldInputs[i].Blur()
	}
}

func (f *credentialFormModel) leaveFieldStage() {
	f.fieldInputs[f.fieldFocusInput()].Blur()
	f.stage = formStageMain
	f.focusPosition(f.focus)
}

func (f credentialFormModel) fieldType() models.FieldType {
	return models.FieldTypes()[f.fieldTypeIdx]
}

// The field stage has four positions: type selector, name, value, options.
// Options is only reachable for dropdown fields.
func (f credentialFormModel) fieldPositionCount() int {
	if f.fieldType() == models.FieldDropdown {
		return 4
	}
	return 3
}

// fieldFocusInput maps the field-stage focus to its text input; position 0
// is the type selector, which reuses input 0 as a placeholder target for
// Blur bookkeeping.
func (f credentialFormModel) fieldFocusInput() int {
	if f.fieldFocus == 0 {
		return 0
	}
	return f.fieldFocus - 1
}

func (f *credentialFormModel) fieldFocusNext() {
	if f.fieldFocus > 0 {
		f.fieldInputs[f.fieldFocus-1].Blur()
	}
	f.fieldFocus = (f.fieldFocus + 1) % f.fieldPositionCount()
	if f.fieldFocus > 0 {
		f.fieldInputs[f.fieldFocus-1].Focus()
	}
}

func (f *credentialFormModel) cycleFieldType(delta int) {
	types := models.FieldTypes()
	f.fieldTypeIdx = (f.fieldTypeIdx + delta + len(types)) % len(types)
}

// appendField validates and stores the mini-form's field, then returns to
// the main stage.
func (f *credentialFormModel) appendField() error {
	field := models.CustomField{
		Type:  f.fieldType(),
		Name:  strings.TrimSpace(f.fieldInputs[0].Value()),
		Value: f.fieldInputs[1].Value(),
	}
	if f.fieldType() == models.FieldDropdown {
		for _, opt := range strings.Split(f.fieldInputs[2].Value(), ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				field.Options = append(field.Options, opt)
			}
		}
	}
	if err := field.Validate(); err != nil {
		return err
	}

	f.fields = append(f.fields, field)
	f.leaveFieldStage()
	return nil
}

func (f credentialFormModel) view() string {
	if f.stage == formStageField {
		return f.viewFieldStage()
	}

	title := "NEW CREDENTIAL"
	submit := "[Save]"
	if f.editing {
		title = "EDIT: " + fitText(f.inputs[formInputName].Value(), 32)
	}
	if f.submitting {
		submit = "[Saving...]"
	}

	labels := []string{"Name", "Category", "Service URL", "Username", "Password", "Notes", "Purpose", "TOTP secret"}

	var b strings.Builder
	for pos, label := range labels {
		b.WriteString(padLabel(label))
		if pos == formCategoryPos {
			row := "< " + string(f.category()) + " >"
			if f.focus == formCategoryPos {
				row = selectedStyle.Render(row)
			}
			b.WriteString(row)
		} else {
			idx, _ := f.inputIndex(pos)
			b.WriteString("[")
			b.WriteString(f.inputs[idx].View())
			b.WriteString("]")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(f.fields) == 0 {
		b.WriteString("Custom fields: none\n")
	} else {
		b.WriteString("Custom fields:\n")
		for _, field := range f.fields {
			value := field.Value
			if field.Secret() {
				value = secretMask
			}
			b.WriteString("  · " + field.Name + " (" + string(field.Type) + "): " + fitText(value, 30) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(submit)
	if f.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
	}

	hotKeys := "tab: next │ ←/→: category │ ctrl+f: add field │ ctrl+d: drop field │ enter: save │ esc: cancel"
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (f credentialFormModel) viewFieldStage() string {
	var b strings.Builder

	typeRow := "< " + string(f.fieldType()) + " >"
	if f.fieldFocus == 0 {
		typeRow = selectedStyle.Render(typeRow)
	}
	b.WriteString(padLabel("Type"))
	b.WriteString(typeRow)
	b.WriteString("\n")

	b.WriteString(padLabel("Name"))
	b.WriteString("[")
	b.WriteString(f.fieldInputs[0].View())
	b.WriteString("]\n")

	b.WriteString(padLabel("Value"))
	b.WriteString("[")
	b.WriteString(f.fieldInputs[1].View())
	b.WriteString("]\n")

	if f.fieldType() == models.FieldDropdown {
		b.WriteString(padLabel("Options"))
		b.WriteString("[")
		b.WriteString(f.fieldInputs[2].View())
		b.WriteString("]\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
	}

	hotKeys := "tab: next │ ←/→: type │ enter: add field │ esc: back"
	return renderPage("ADD CUSTOM FIELD", strings.TrimRight(b.String(), "\n"), hotKeys)
}
