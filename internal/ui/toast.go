package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 4 * time.Second

type toastState struct {
	id     int
	text   string
	danger bool
}

type toastExpiredMsg struct{ id int }

// showNotification shows text on the toast line until ToastDuration passes or
// another notification replaces it.
func (m *Model) showNotification(text string, danger bool) tea.Cmd {
	id := m.toast.id + 1
	m.toast = toastState{id: id, text: text, danger: danger}
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m Model) renderToast() string {
	if m.toast.text == "" {
		return ""
	}
	color := m.theme.Success
	if m.toast.danger {
		color = m.theme.Danger
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(truncate(m.toast.text, max(m.width-2, 10)))
}
