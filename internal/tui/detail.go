package tui

import (
	"fmt"
	"strings"

	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/models"
)

type detailRow struct {
	label string
	value string

	// revealKey is set for secret rows participating in the reveal
	// protocol; copyField for rows copyable to the clipboard.
	revealKey string
	copyField models.CredentialField
}

type detailModel struct {
	cred models.CredentialDecrypted
	rows []detailRow
	idx  int

	status string
	errMsg string
}

func newDetailModel(cred models.CredentialDecrypted) detailModel {
	return detailModel{cred: cred, rows: detailRows(cred)}
}

func detailRows(cred models.CredentialDecrypted) []detailRow {
	rows := []detailRow{
		{label: "Name", value: cred.Name},
		{label: "Category", value: string(cred.Category)},
		{label: "Service URL", value: cred.ServiceURL},
		{label: "Username", value: cred.Username, copyField: models.CredentialUsername},
		{label: "Password", value: cred.Password, revealKey: service.RevealPassword, copyField: models.CredentialPassword},
	}
	if cred.TOTPSecret != "" {
		rows = append(rows, detailRow{label: "TOTP secret", value: cred.TOTPSecret, revealKey: service.RevealTOTP})
	}
	if cred.Purpose != "" {
		rows = append(rows, detailRow{label: "Purpose", value: cred.Purpose})
	}
	if cred.Notes != "" {
		rows = append(rows, detailRow{label: "Notes", value: cred.Notes})
	}
	for _, f := range cred.CustomFields {
		row := detailRow{label: f.Name, value: f.Value}
		if f.Secret() {
			row.revealKey = service.CustomFieldKey(f.Name)
		}
		rows = append(rows, row)
	}
	rows = append(rows, detailRow{label: "Updated", value: cred.UpdatedAt.Format("2006-01-02 15:04")})
	return rows
}

func (d *detailModel) moveCursor(delta int) {
	d.idx += delta
	if d.idx < 0 {
		d.idx = 0
	}
	if d.idx >= len(d.rows) {
		d.idx = len(d.rows) - 1
	}
}

func (d detailModel) selectedRow() detailRow {
	if d.idx < 0 || d.idx >= len(d.rows) {
		return detailRow{}
	}
	return d.rows[d.idx]
}

// view renders the record; secret rows stay masked until the controller
// reports them revealed, and a transient badge marks the last copied field.
func (d detailModel) view(controller service.VaultController) string {
	feedbackKey, feedbackActive := controller.CopyFeedback()

	var b strings.Builder
	for i, row := range d.rows {
		value := valueOrDash(row.value)
		if row.revealKey != "" && row.value != "" && !controller.Revealed(d.cred.ID, row.revealKey) {
			value = maskedStyle.Render(secretMask)
		}

		line := fmt.Sprintf("%-14s %s", row.label+":", fitText(value, 48))
		if feedbackActive && row.copyField != "" &&
			feedbackKey == fmt.Sprintf("%s/%s", d.cred.ID, row.copyField) {
			line += " " + badgeStyle.Render("✔ copied")
		}

		if i == d.idx {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if d.status != "" {
		b.WriteString("\n")
		b.WriteString(d.status)
	}
	if d.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + d.errMsg))
	}

	hotKeys := "r: reveal/hide │ c: copy password │ u: copy username │ e: edit │ d: delete │ esc: back"
	return renderPage("CREDENTIAL: "+fitText(d.cred.Name, 32), strings.TrimRight(b.String(), "\n"), hotKeys)
}
