package tui

import "strings"

func errorOverlay(message string) string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Error"))
	b.WriteString("\n\n")
	b.WriteString(fitText(message, 60))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("press any key to dismiss"))
	return overlayBoxStyle.Render(b.String())
}
