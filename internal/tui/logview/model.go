// Package logview содержит модель экрана журнала сессии для TUI
package logview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-beattrees/internal/catalog"
	"github.com/hazadus/go-beattrees/internal/track"
	"github.com/hazadus/go-beattrees/internal/tui/tracklist"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(4)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
)

// GoBackMsg отправляется при выходе из журнала
type GoBackMsg struct{}

// Model представляет модель экрана журнала
type Model struct {
	trackManager *track.Manager
	entries      []catalog.Song
	cursor       int
}

// NewModel создает новую модель журнала
func NewModel(trackManager *track.Manager) *Model {
	m := &Model{trackManager: trackManager}
	m.Refresh()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Refresh перечитывает записи журнала
func (m *Model) Refresh() {
	m.entries = m.trackManager.CurrentLog()
	if m.cursor >= len(m.entries) {
		m.cursor = max(0, len(m.entries)-1)
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "esc", "tab":
		return m, func() tea.Msg {
			return GoBackMsg{}
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case "d", "x", "delete":
		if len(m.entries) > 0 {
			m.trackManager.RemoveEntry(m.entries[m.cursor])
			m.Refresh()
		}
	}

	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("📝 Журнал сессии (%d)", len(m.entries))))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(emptyStyle.Render("Журнал пуст. Добавьте песню клавишей 'a' на экране песни."))
	} else {
		rows := make([]string, len(m.entries))
		for i, song := range m.entries {
			rows[i] = tracklist.RenderRow(song, i == m.cursor)
		}
		b.WriteString(strings.Join(rows, "\n"))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: выбор • d: удалить • Tab/esc: назад"))
	return b.String()
}
