// Package tracklist содержит модель экрана поиска песен для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-beattrees/internal/catalog"
	"github.com/hazadus/go-beattrees/internal/track"
	"github.com/hazadus/go-beattrees/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	inputStyle        = lipgloss.NewStyle().MarginLeft(2).MarginBottom(1)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	tempoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

// SongSelectedMsg отправляется при выборе песни для просмотра
type SongSelectedMsg struct {
	Song catalog.Song
}

// songItem реализует интерфейс list.Item для песни
type songItem struct {
	song catalog.Song
}

func (i songItem) FilterValue() string {
	return i.song.String()
}

// songItemDelegate реализует отображение элементов списка
type songItemDelegate struct{}

func (d songItemDelegate) Height() int                             { return 1 }
func (d songItemDelegate) Spacing() int                            { return 0 }
func (d songItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d songItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(songItem)
	if !ok {
		return
	}

	fmt.Fprint(w, RenderRow(i.song, index == m.Index()))
}

// RenderRow форматирует строку песни: Исполнитель | Название | Темп
func RenderRow(song catalog.Song, selected bool) string {
	str := fmt.Sprintf("%-25s %-45s %s",
		utils.TruncateString(song.Artists, 25),
		utils.TruncateString(song.TrackName, 45),
		tempoStyle.Render(utils.FormatTempo(song.Tempo)))

	if selected {
		return selectedItemStyle.Render("> " + str)
	}
	return itemStyle.Render(str)
}

// Model представляет модель экрана поиска
type Model struct {
	input        textinput.Model
	list         list.Model
	trackManager *track.Manager
	query        string
}

// NewModel создает новую модель экрана поиска
func NewModel(trackManager *track.Manager) *Model {
	input := textinput.New()
	input.Placeholder = "Название, исполнитель или 120 bpm"
	input.Prompt = "🔍 "
	input.CharLimit = 100
	input.Focus()

	l := list.New(nil, songItemDelegate{}, 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	m := &Model{
		input:        input,
		list:         l,
		trackManager: trackManager,
	}
	m.RefreshData()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Query возвращает текущий поисковый запрос
func (m *Model) Query() string {
	return m.query
}

// RefreshData заново выполняет поиск по текущему каталогу
func (m *Model) RefreshData() {
	songs := m.trackManager.Search(m.query)

	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}

	m.list.Title = fmt.Sprintf("Песни (%d)", len(songs))
	m.list.SetItems(items)
	m.list.ResetSelected()
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 6) // Оставляем место для строки поиска и справки
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(songItem); ok {
				return m, func() tea.Msg {
					return SongSelectedMsg{Song: item.song}
				}
			}
			return m, nil

		case "esc":
			if m.input.Value() != "" {
				m.input.SetValue("")
				m.setQuery("")
			}
			return m, nil

		case "up", "down", "pgup", "pgdown", "home", "end":
			// Навигация по списку, остальные клавиши уходят в строку поиска
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.setQuery(m.input.Value())
	return m, cmd
}

func (m *Model) setQuery(q string) {
	if q == m.query {
		return
	}
	m.query = q
	m.RefreshData()
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter: открыть • Esc: очистить • Tab: журнал • Ctrl+C: выход"))
	return b.String()
}
