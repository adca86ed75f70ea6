package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/models"
)

type listModel struct {
	items   []models.CredentialMasked
	idx     int
	loading bool
	spin    spinner.Model

	searching bool
	search    textinput.Model
	category  models.Category

	status string
	errMsg string
}

func newListModel() listModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	search := textinput.New()
	search.Placeholder = "name or url"
	search.Width = 30

	return listModel{
		loading:  true,
		spin:     sp,
		search:   search,
		category: service.CategoryAll,
	}
}

// visible applies the search query and category filter. Filtering is pure:
// the stored listing is never modified.
func (l listModel) visible() []models.CredentialMasked {
	return service.FilterCredentials(l.items, l.search.Value(), l.category)
}

func (l listModel) selected() (models.CredentialMasked, bool) {
	visible := l.visible()
	if l.idx < 0 || l.idx >= len(visible) {
		return models.CredentialMasked{}, false
	}
	return visible[l.idx], true
}

func (l *listModel) clampCursor() {
	visible := l.visible()
	if l.idx >= len(visible) {
		l.idx = len(visible) - 1
	}
	if l.idx < 0 {
		l.idx = 0
	}
}

// cycleCategory steps through "all" plus every category, wrapping around.
func (l *listModel) cycleCategory() {
	order := append([]models.Category{service.CategoryAll}, models.Categories()...)
	for i, c := range order {
		if c == l.category {
			l.category = order[(i+1)%len(order)]
			l.clampCursor()
			return
		}
	}
	l.category = service.CategoryAll
}

func (l listModel) categoryLabel() string {
	if l.category == service.CategoryAll {
		return "all"
	}
	return string(l.category)
}

func (l listModel) view() string {
	var b strings.Builder

	if l.searching {
		b.WriteString("Search: [")
		b.WriteString(l.search.View())
		b.WriteString("]")
	} else if l.search.Value() != "" {
		b.WriteString("Search: " + l.search.Value())
	} else {
		b.WriteString("Search: -")
	}
	b.WriteString("   Category: " + l.categoryLabel())
	b.WriteString("\n\n")

	switch {
	case l.loading:
		b.WriteString(l.spin.View() + " loading...")
	case len(l.items) == 0:
		b.WriteString("The vault is empty. Press n to add the first credential.")
	default:
		visible := l.visible()
		if len(visible) == 0 {
			b.WriteString("No credentials match the current filter.")
		}
		for i, item := range visible {
			row := fmt.Sprintf("%-24s %-12s %-24s %s",
				fitText(item.Name, 24),
				fitText(string(item.Category), 12),
				fitText(valueOrDash(item.ServiceURL), 24),
				item.UpdatedAt.Format("2006-01-02"),
			)
			if i == l.idx && !l.searching {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString("  " + row)
			}
			b.WriteString("\n")
		}
	}

	if l.status != "" {
		b.WriteString("\n")
		b.WriteString(l.status)
	}
	if l.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + l.errMsg))
	}

	hotKeys := "enter: open │ n: new │ d: delete │ /: search │ f: category │ R: refresh │ l: lock │ q: quit"
	if l.searching {
		hotKeys = "enter: apply │ esc: clear search"
	}
	return renderPage("CREDENTIALS", strings.TrimRight(b.String(), "\n"), hotKeys)
}
