package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/viewstate"
)

// renderStores renders the stores overview.
func (m Model) renderStores() string {
	height := m.contentHeight()
	visible := m.stores.Visible()

	view := tableView{
		headers: sortHeaders(m, m.stores),
		empty:   m.emptyText("stores.empty"),
	}
	columns := m.stores.Schema().Columns
	for _, s := range visible {
		view.rows = append(view.rows, entityCells(s, columns))
	}

	var b strings.Builder
	lines := height - 2
	if bar := m.renderSearchBar(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
		lines--
	}
	b.WriteString(m.renderTable(view, m.width-2, lines, true))

	title := fmt.Sprintf("%s (%d/%d)", m.tr.T("stores.title"), len(visible), len(m.stores.All()))
	return m.renderTitledBox(title, b.String(), m.width, height, true)
}

// renderStoreDetails renders one store with its products table.
func (m Model) renderStoreDetails() string {
	height := m.contentHeight()
	infoWidth := m.width * 30 / 100
	if m.width < LayoutCompactWidth {
		infoWidth = 0
	}
	tableWidth := m.width - infoWidth

	var info string
	if infoWidth > 0 {
		var content string
		if m.snapshot.HasStore {
			s := m.snapshot.Store
			content = m.renderFields(infoWidth-4, m.theme.SurfaceAlt, []fieldRow{
				{m.tr.T("field.name"), s.Name, nil},
				{m.tr.T("field.email"), s.Email, nil},
				{m.tr.T("field.phone_number"), s.PhoneNumber, nil},
				{m.tr.T("field.address"), s.Address, nil},
				{m.tr.T("field.established"), fieldText(s, catalog.FieldEstablished), nil},
				{m.tr.T("field.floor_area"), fieldText(s, catalog.FieldFloorArea), nil},
			})
		}
		info = m.renderTitledBox(m.tr.T("store.details"), content, infoWidth, height, false)
	}

	visible := m.products.Visible()
	columns := m.products.Schema().Columns
	view := tableView{
		headers: append(sortHeaders(m, m.products), tableHeader{label: m.tr.T("field.status")}),
		empty:   m.emptyText("products.empty"),
	}
	statusCol := len(columns)
	for _, p := range visible {
		view.rows = append(view.rows, append(entityCells(p, columns), m.statusLabel(p.Status)))
	}
	styles := m.theme.Styles()
	view.styleCell = func(row, col int) (lipgloss.Style, bool) {
		if col != statusCol {
			return lipgloss.Style{}, false
		}
		return styles.StatusText(visible[row].Status), true
	}

	var b strings.Builder
	lines := height - 3
	b.WriteString(m.renderStatusTabs(tableWidth - 2))
	b.WriteString("\n")
	if bar := m.renderSearchBar(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
		lines--
	}
	b.WriteString(m.renderTable(view, tableWidth-2, lines, true))

	title := fmt.Sprintf("%s (%d)", m.tr.T("store.products"), len(visible))
	products := m.renderTitledBox(title, b.String(), tableWidth, height, true)
	if info == "" {
		return products
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, info, products)
}

// renderStatusTabs renders the status filter tabs with their counts.
func (m Model) renderStatusTabs(width int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	counts := *m.tabCounts
	current := m.products.Filter().Status

	tabs := append([]catalog.Status{viewstate.StatusAll}, catalog.Statuses...)
	parts := make([]string, len(tabs))
	for i, status := range tabs {
		label := fmt.Sprintf("%s %d", m.statusLabel(status), counts.Of(status))
		style := styles.MutedText
		if status != viewstate.StatusAll {
			style = styles.StatusText(status).Background(bg.Color())
		}
		if status == current {
			label = "[" + label + "]"
			style = style.Bold(true).Underline(true)
		}
		parts[i] = bg.Render(label, style)
	}
	return truncateStyled(bg.Join(parts, "  "), width)
}

// renderProductDetails renders one product with its comment feed.
func (m Model) renderProductDetails() string {
	height := m.contentHeight()
	infoWidth := m.width * 40 / 100
	if m.width < LayoutCompactWidth {
		infoWidth = m.width / 2
	}
	feedWidth := m.width - infoWidth

	var content string
	if m.snapshot.HasProduct {
		p := m.snapshot.Product
		chip := m.theme.Styles().StatusStyle(p.Status).Render(m.statusLabel(p.Status))
		content = m.renderFields(infoWidth-4, m.theme.SurfaceAlt, []fieldRow{
			{m.tr.T("field.name"), p.Name, nil},
			{m.tr.T("field.status"), "", &chip},
			{m.tr.T("field.price"), fieldText(p, catalog.FieldPrice), nil},
			{m.tr.T("field.rating"), fieldText(p, catalog.FieldRating), nil},
			{m.tr.T("field.specs"), p.Specs, nil},
			{m.tr.T("field.supplier_info"), p.SupplierInfo, nil},
			{m.tr.T("field.made_in"), p.MadeIn, nil},
			{m.tr.T("field.production_company_name"), p.ProductionCompanyName, nil},
		})
	}
	info := m.renderTitledBox(m.tr.T("product.details"), content, infoWidth, height, false)

	comments := m.comments.Visible()
	var b strings.Builder
	lines := height - 2
	if bar := m.renderSearchBar(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
		lines--
	}
	b.WriteString(m.renderFeed(comments, feedWidth-4, lines))

	title := fmt.Sprintf("%s (%d)", m.tr.T("product.comments"), len(comments))
	feed := m.renderTitledBox(title, b.String(), feedWidth, height, true)
	return lipgloss.JoinHorizontal(lipgloss.Top, info, feed)
}

// renderFeed renders comments as short cards, newest sort order as chosen.
func (m Model) renderFeed(comments []catalog.Comment, width, height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	sortLine := make([]string, 0, 3)
	for i, col := range m.comments.Schema().Columns {
		label := m.tr.T("field."+col) + sortArrow(m.comments.SortDirection(col))
		style := styles.FaintText
		if i == m.column {
			style = styles.AccentText.Underline(true)
		}
		sortLine = append(sortLine, bg.Render(label, style))
	}
	lines := []string{bg.Join(sortLine, "  ")}

	if len(comments) == 0 {
		lines = append(lines, "", bg.Render(m.emptyText("comments.empty"), styles.FaintText))
		return strings.Join(lines, "\n")
	}

	for i, c := range comments {
		if i < m.selected {
			continue
		}
		if len(lines)+3 > height {
			break
		}
		author := styles.AccentText.Bold(true)
		if i == m.selected {
			author = author.Underline(true)
		}
		meta := bg.Render(c.Author, author) + bg.Render(" · ", styles.FaintText) +
			bg.Render(fmt.Sprintf("★ %s", fieldText(c, catalog.FieldRating)), styles.WarningText) +
			bg.Render(" · ", styles.FaintText) +
			bg.Render(c.Posted.Format("2006-01-02 15:04"), styles.MutedText)
		lines = append(lines, meta, bg.Render(truncate(c.Message, width), styles.Text), "")
	}
	return strings.Join(lines, "\n")
}

// renderNotFound renders the fallback view.
func (m Model) renderNotFound() string {
	styles := m.theme.Styles()
	content := styles.DangerText.Render(m.tr.T("notfound.title")) + "\n\n" +
		styles.Text.Render(m.tr.T("notfound.message")) + "\n\n" +
		styles.AccentText.Render("esc") + styles.MutedText.Render(": "+m.tr.T("notfound.back"))
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, content)
}

// renderSearchBar shows the search box while it is focused or non-empty.
func (m Model) renderSearchBar() string {
	if !m.searching && m.search.Value() == "" {
		return ""
	}
	styles := m.theme.Styles()
	return styles.MutedText.Render(m.tr.T("search.label")+" ") + m.search.View()
}

// emptyText distinguishes an empty collection from one still loading.
func (m Model) emptyText(key string) string {
	if !m.snapshot.Loaded {
		return m.tr.T("header.loading")
	}
	return m.tr.T(key)
}

type fieldRow struct {
	label    string
	value    string
	rendered *string // pre-styled value, used instead of value
}

// renderFields renders label/value pairs, wrapping long values.
func (m Model) renderFields(width int, bgColor string, rows []fieldRow) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.label))
	}
	labelWidth += 2
	valueWidth := max(width-labelWidth, 8)

	var lines []string
	for _, r := range rows {
		label := bg.Render(padRight(r.label, labelWidth), styles.MutedText)
		if r.rendered != nil {
			lines = append(lines, label+*r.rendered)
			continue
		}
		wrapped := strings.Split(lipgloss.NewStyle().Width(valueWidth).Render(r.value), "\n")
		for i, w := range wrapped {
			if i > 0 {
				label = bg.Spaces(labelWidth)
			}
			lines = append(lines, label+bg.Render(strings.TrimRight(w, " "), styles.Text))
		}
	}
	return strings.Join(lines, "\n")
}

// fieldText renders one field of e as display text.
func fieldText(e catalog.Entity, name string) string {
	v, _ := e.Field(name)
	return v.String()
}

// truncateStyled cuts a rendered line to width cells.
func truncateStyled(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
