package ui

import (
	"strings"
	"time"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/state"
)

// renderHeader renders the logo, breadcrumbs and connection state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	crumbs := m.breadcrumbs()
	rendered := make([]string, len(crumbs))
	for i, c := range crumbs {
		style := styles.MutedText
		if i == len(crumbs)-1 {
			style = styles.Text.Bold(true)
		}
		rendered[i] = bg.Render(truncate(c, 32), style)
	}

	parts := []string{
		bg.Render("shelf", styles.Logo),
		strings.Join(rendered, bg.Render(" › ", styles.FaintText)),
	}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts,
			bg.Render(m.tr.T("header.offline"), styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(m.tr.T("header.retrying"), styles.WarningText))
	case m.snapshot.LastError != nil:
		parts = append(parts,
			bg.Render(m.tr.T("header.error"), styles.DangerText)+bg.Space()+
				bg.Render(truncate(m.snapshot.LastError.Error(), 60), styles.MutedText))
	case !m.snapshot.Loaded && m.route.View != state.ViewNotFound:
		parts = append(parts, bg.Render(m.tr.T("header.loading"), styles.WarningText))
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	parts = append(parts, bg.Render(strings.ToUpper(m.tr.CurrentLanguage()), styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last update time with a relative hint.
func (m Model) formatTimestamp() string {
	if m.snapshot.LastUpdated.IsZero() {
		return ""
	}
	since := time.Since(m.snapshot.LastUpdated)
	ts := m.snapshot.LastUpdated.Format("15:04:05")
	if since >= time.Minute {
		ts += " " + m.tr.Tf("header.ago", int(since.Minutes()))
	}
	return ts
}

// renderCommandBar renders the key hints of the focused view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.route.View {
	case state.ViewStores:
		commands = []cmd{
			{"enter", m.tr.T("cmd.open")},
			{"/", m.tr.T("cmd.search")},
			{"←/→ s", m.tr.T("cmd.sort")},
			{"n", m.tr.T("cmd.new_store")},
			{"d", m.tr.T("cmd.delete")},
		}
	case state.ViewStore:
		commands = []cmd{
			{"enter", m.tr.T("cmd.open")},
			{"/", m.tr.T("cmd.search")},
			{"f", m.statusLabel(m.products.Filter().Status)},
			{"←/→ s", m.tr.T("cmd.sort")},
			{"n", m.tr.T("cmd.new_product")},
			{"e", m.tr.T("cmd.edit")},
			{"d", m.tr.T("cmd.delete")},
			{"D", m.tr.T("cmd.delete_store")},
			{"esc", m.tr.T("cmd.back")},
		}
	case state.ViewProduct:
		commands = []cmd{
			{"c", m.tr.T("cmd.comment")},
			{"e", m.tr.T("cmd.edit")},
			{"d", m.tr.T("cmd.delete")},
			{"/", m.tr.T("cmd.search")},
			{"esc", m.tr.T("cmd.back")},
		}
	default:
		commands = []cmd{
			{"esc", m.tr.T("notfound.back")},
		}
	}
	commands = append(commands,
		cmd{"L", m.tr.T("cmd.language")},
		cmd{"?", m.tr.T("cmd.help")},
		cmd{"q", m.tr.T("cmd.quit")},
	)

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.searching || m.search.Value() != "" {
		segments = append(segments, bg.Render("/"+truncate(m.search.Value(), 18), styles.AccentText))
	}

	return styles.Footer.Width(m.width).Render(bg.Join(segments, "  "))
}

// statusLabel returns the tab label of a status filter.
func (m Model) statusLabel(status catalog.Status) string {
	switch status {
	case catalog.StatusOK:
		return m.tr.T("status.ok")
	case catalog.StatusStorage:
		return m.tr.T("status.storage")
	case catalog.StatusOutOfStock:
		return m.tr.T("status.out_of_stock")
	}
	return m.tr.T("status.all")
}
