package tui

import "strings"

const (
	welcomeSignIn = iota
	welcomeRegister
	welcomeQuit
)

var welcomeOptions = []string{"Sign in", "Create account", "Quit"}

type welcomeModel struct {
	idx int
}

func (w welcomeModel) view(version string) string {
	var b strings.Builder
	for i, opt := range welcomeOptions {
		if i == w.idx {
			b.WriteString(selectedStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("version " + version))

	return renderPage("CREDENTIAL VAULT", strings.TrimRight(b.String(), "\n"), "↑/↓: move │ enter: select")
}
