package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "help.navigation",
			items: []helpItem{
				{"j/k", "help.move"},
				{"g/G", "help.top_bottom"},
				{"enter", "help.open"},
				{"esc", "help.back"},
				{"r", "help.refresh"},
			},
		},
		{
			title: "help.tables",
			items: []helpItem{
				{"/", "help.search"},
				{"f", "help.filter"},
				{"←/→", "help.column"},
				{"s, 1-9", "help.sort"},
				{"x", "help.reset"},
			},
		},
		{
			title: "help.actions",
			items: []helpItem{
				{"n", "help.new"},
				{"e", "help.edit"},
				{"d/D", "help.delete"},
				{"c", "help.comment"},
			},
		},
		{
			title: "help.general",
			items: []helpItem{
				{"T", "help.theme"},
				{"L", "help.language"},
				{"?", "help.toggle"},
				{"q", "help.quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(m.tr.T("help.title")))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(10)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(m.tr.T(section.title)))
		b.WriteString("\n")

		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(m.tr.T(item.desc)))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return m.placeModal(b.String(), 46, m.theme.Accent)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string // i18n key
}
