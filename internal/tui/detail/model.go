// Package detail содержит модель экрана песни для TUI
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-beattrees/internal/catalog"
	"github.com/hazadus/go-beattrees/internal/track"
	"github.com/hazadus/go-beattrees/internal/tui/tracklist"
	"github.com/hazadus/go-beattrees/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)

// maxRelatedRows сколько похожих песен видно одновременно
const maxRelatedRows = 10

// GoBackMsg отправляется для возврата к предыдущему экрану
type GoBackMsg struct{}

// SongSelectedMsg отправляется при переходе к похожей песне
type SongSelectedMsg struct {
	Song catalog.Song
}

// Model представляет модель экрана песни
type Model struct {
	song         catalog.Song
	related      []catalog.Song
	cursor       int
	trackManager *track.Manager
	meter        progress.Model
	width        int
	height       int
}

// NewModel создает модель экрана песни со списком песен того же темпа
func NewModel(song catalog.Song, trackManager *track.Manager) *Model {
	meter := progress.New(progress.WithDefaultGradient())
	meter.Width = 30

	return &Model{
		song:         song,
		related:      trackManager.Related(song),
		trackManager: trackManager,
		meter:        meter,
	}
}

// Song возвращает показываемую песню
func (m *Model) Song() catalog.Song {
	return m.song
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// RefreshRelated пересчитывает похожие песни по текущему каталогу
func (m *Model) RefreshRelated() {
	m.related = m.trackManager.Related(m.song)
	if m.cursor >= len(m.related) {
		m.cursor = max(0, len(m.related)-1)
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.meter.Width = min(40, msg.Width-20)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "backspace":
			return m, func() tea.Msg {
				return GoBackMsg{}
			}

		case "a":
			m.trackManager.AddEntry(m.song)
			return m, nil

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if m.cursor < len(m.related)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			if len(m.related) == 0 {
				return m, nil
			}
			next := m.related[m.cursor]
			return m, func() tea.Msg {
				return SongSelectedMsg{Song: next}
			}
		}
	}

	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("🎵 %s", m.song.TrackName))

	trackInfo := trackInfoStyle.Render(fmt.Sprintf(
		"🎤 %s\n💿 %s\n🏷  %s\n⏱  %s • %s • популярность %d",
		m.song.Artists,
		m.song.AlbumName,
		utils.FormatGenre(m.song.TrackGenre),
		utils.FormatDurationMS(m.song.DurationMS),
		utils.FormatTempo(m.song.Tempo),
		m.song.Popularity,
	))

	features := strings.Join([]string{
		m.featureRow("Танцевальность", m.song.Danceability),
		m.featureRow("Энергия", m.song.Energy),
		m.featureRow("Позитивность", m.song.Valence),
		m.featureRow("Акустичность", m.song.Acousticness),
	}, "\n")

	related := sectionStyle.Render(fmt.Sprintf("Похожие по темпу: %s (%d)",
		utils.FormatTempo(m.song.Tempo), len(m.related)))

	controls := controlsStyle.Render(
		"a: в журнал • ↑/↓: похожие • Enter: открыть • q/esc: назад",
	)

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n%s\n%s\n\n%s",
		title,
		trackInfo,
		features,
		related,
		m.relatedView(),
		controls,
	)
}

func (m *Model) featureRow(label string, value float64) string {
	return labelStyle.Render(label) + m.meter.ViewAs(clamp(value))
}

// relatedView отображает окно списка похожих песен вокруг курсора
func (m *Model) relatedView() string {
	if len(m.related) == 0 {
		return trackInfoStyle.Render("Других песен с таким темпом нет")
	}

	start := 0
	if m.cursor >= maxRelatedRows {
		start = m.cursor - maxRelatedRows + 1
	}
	end := min(len(m.related), start+maxRelatedRows)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, tracklist.RenderRow(m.related[i], i == m.cursor))
	}
	return strings.Join(rows, "\n")
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
