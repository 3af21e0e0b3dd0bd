package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/viewstate"
)

type tableHeader struct {
	label    string
	sortable bool
	dir      viewstate.Direction
}

// tableView is one table ready to draw: headers, cell text and an optional
// per-cell style override for unselected rows.
type tableView struct {
	headers   []tableHeader
	rows      [][]string
	styleCell func(row, col int) (lipgloss.Style, bool)
	empty     string
}

// sortHeaders builds the headers of a controller's sortable columns.
func sortHeaders[E catalog.Entity](m Model, ctl *viewstate.Controller[E]) []tableHeader {
	columns := ctl.Schema().Columns
	headers := make([]tableHeader, len(columns))
	for i, col := range columns {
		headers[i] = tableHeader{
			label:    m.tr.T("field." + col),
			sortable: true,
			dir:      ctl.SortDirection(col),
		}
	}
	return headers
}

// entityCells renders the named fields of e as cell text.
func entityCells[E catalog.Entity](e E, fields []string) []string {
	cells := make([]string, len(fields))
	for i, name := range fields {
		if v, ok := e.Field(name); ok {
			cells[i] = v.String()
		}
	}
	return cells
}

func sortArrow(dir viewstate.Direction) string {
	switch dir {
	case viewstate.Asc:
		return " ▲"
	case viewstate.Desc:
		return " ▼"
	}
	return ""
}

// renderTable draws t in width columns and at most height lines, scrolling
// so the selected row stays visible.
func (m Model) renderTable(t tableView, width, height int, focused bool) string {
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	n := max(len(t.headers), 1)
	colWidth := max((width-(n-1))/n, 6)
	cell := func(text string) string {
		return padRight(truncate(text, colWidth), colWidth)
	}

	header := make([]string, len(t.headers))
	for i, h := range t.headers {
		style := styles.MutedText.Bold(true)
		if h.sortable && i == m.column {
			style = styles.AccentText.Bold(true).Underline(true)
		}
		header[i] = bg.Render(cell(h.label+sortArrow(h.dir)), style)
	}
	lines := []string{bg.Join(header, " ")}

	if len(t.rows) == 0 {
		lines = append(lines, "", bg.Render(t.empty, styles.FaintText))
		return strings.Join(lines, "\n")
	}

	visible := max(height-1, 1)
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}

	selBg := NewBgStyle(m.theme.SelectionBg)
	selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
	for i := start; i < len(t.rows) && i < start+visible; i++ {
		row := t.rows[i]
		parts := make([]string, len(row))
		if i == m.selected {
			for j, text := range row {
				parts[j] = selBg.Render(cell(text), selText)
			}
			lines = append(lines, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Width(width).
				Render(selBg.Join(parts, " ")))
			continue
		}
		for j, text := range row {
			style := styles.Text
			if t.styleCell != nil {
				if s, ok := t.styleCell(i, j); ok {
					style = s.Background(bg.Color())
				}
			}
			parts[j] = bg.Render(cell(text), style)
		}
		lines = append(lines, bg.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

// renderTitledBox renders content in a box with the title embedded in the top
// border: ┌─── Title ───┐. Focused boxes use the focus border and background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 4)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 1)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
