package tui

import "strings"

// confirmModel is the destructive-action overlay. It holds the prompt and
// the id the pending action applies to.
type confirmModel struct {
	prompt string
	id     string
}

func (c confirmModel) view() string {
	var b strings.Builder
	b.WriteString(c.prompt)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("y: confirm │ n/esc: cancel"))
	return overlayBoxStyle.Render(b.String())
}
