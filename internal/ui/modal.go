package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmState is a pending yes/no question. onYes runs only on confirmation.
type confirmState struct {
	message string
	onYes   tea.Cmd
}

// promptConfirmation asks a yes/no question before running onYes.
func (m *Model) promptConfirmation(message string, onYes tea.Cmd) tea.Cmd {
	m.confirm = &confirmState{message: message, onYes: onYes}
	return nil
}

// handleConfirmKey resolves the pending confirmation.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		onYes := m.confirm.onYes
		m.confirm = nil
		return m, onYes
	case key.Matches(msg, m.keys.No), msg.String() == "q":
		m.confirm = nil
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// showBlockingAlert shows a message that stays until any key is pressed.
func (m *Model) showBlockingAlert(message string) {
	m.alert = message
}

func (m Model) renderConfirm() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render(m.tr.T("confirm.title")))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(m.confirm.message))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(m.tr.T("confirm.hint")))
	return m.placeModal(b.String(), 50, m.theme.Warning)
}

func (m Model) renderAlert() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render(m.tr.T("alert.title")))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(m.alert))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(m.tr.T("alert.hint")))
	return m.placeModal(b.String(), 50, m.theme.Danger)
}

// placeModal draws content in a bordered box centered on the screen.
func (m Model) placeModal(content string, width int, border string) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(min(width, max(m.width-4, 20)))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
