// Package app содержит основную логику TUI приложения
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-beattrees/internal/catalog"
	"github.com/hazadus/go-beattrees/internal/track"
	"github.com/hazadus/go-beattrees/internal/tui/detail"
	"github.com/hazadus/go-beattrees/internal/tui/logview"
	"github.com/hazadus/go-beattrees/internal/tui/tracklist"
)

var notificationStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#ffffff")).
	Background(lipgloss.Color("#2e7d32")).
	Padding(0, 1).
	MarginLeft(2)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// SearchScreen - экран поиска песен
	SearchScreen ScreenType = iota
	// DetailScreen - экран песни
	DetailScreen
	// LogScreen - экран журнала сессии
	LogScreen
)

// EventMsg доставляет событие Manager в цикл Bubble Tea
type EventMsg struct {
	Event track.Event
}

// MainModel представляет главную модель TUI
type MainModel struct {
	trackManager   *track.Manager
	currentScreen  ScreenType
	previousScreen ScreenType
	tracklistModel *tracklist.Model
	detailModel    *detail.Model
	logModel       *logview.Model
	// history песни, открытые через список похожих, для возврата назад
	history      []catalog.Song
	notification string
	events       <-chan track.Event
	unsubscribe  func()
	width        int
	height       int
}

// NewMainModel создает новую главную модель и подписывает ее на события Manager
func NewMainModel(trackManager *track.Manager) *MainModel {
	events, unsubscribe := trackManager.Subscribe()

	m := &MainModel{
		trackManager:   trackManager,
		currentScreen:  SearchScreen,
		tracklistModel: tracklist.NewModel(trackManager),
		detailModel:    nil, // Будет создана при выборе песни
		logModel:       logview.NewModel(trackManager),
		events:         events,
		unsubscribe:    unsubscribe,
	}
	m.notification, _ = trackManager.CurrentNotification()
	return m
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.tracklistModel.Init(),
		m.listenForEvents(),
	)
}

// CurrentScreen возвращает активный экран
func (m *MainModel) CurrentScreen() ScreenType {
	return m.currentScreen
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.currentScreen != LogScreen {
				m.previousScreen = m.currentScreen
				m.currentScreen = LogScreen
				m.logModel.Refresh()
				return m, nil
			}
		}

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, m.listenForEvents()

	case tracklist.SongSelectedMsg:
		m.history = m.history[:0]
		m.openDetail(msg.Song)
		return m, m.detailModel.Init()

	case detail.SongSelectedMsg:
		if m.detailModel != nil {
			m.history = append(m.history, m.detailModel.Song())
		}
		m.openDetail(msg.Song)
		return m, m.detailModel.Init()

	case detail.GoBackMsg:
		if n := len(m.history); n > 0 {
			previous := m.history[n-1]
			m.history = m.history[:n-1]
			m.openDetail(previous)
			return m, nil
		}
		m.currentScreen = SearchScreen
		m.detailModel = nil
		return m, nil

	case logview.GoBackMsg:
		m.currentScreen = m.previousScreen
		if m.currentScreen == DetailScreen && m.detailModel == nil {
			m.currentScreen = SearchScreen
		}
		return m, nil

	case tea.WindowSizeMsg:
		// Размеры нужны всем экранам, даже неактивным
		m.width = msg.Width
		m.height = msg.Height
		var cmd tea.Cmd
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
		if m.detailModel != nil {
			m.detailModel, _ = m.detailModel.Update(msg)
		}
		return m, cmd
	}

	// Передаем сообщение активной модели
	var cmd tea.Cmd
	switch m.currentScreen {
	case SearchScreen:
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)

	case DetailScreen:
		if m.detailModel != nil {
			m.detailModel, cmd = m.detailModel.Update(msg)
		}

	case LogScreen:
		m.logModel, cmd = m.logModel.Update(msg)
	}

	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	var view string
	switch m.currentScreen {
	case SearchScreen:
		view = m.tracklistModel.View()

	case DetailScreen:
		if m.detailModel != nil {
			view = m.detailModel.View()
		} else {
			view = "Ошибка: модель экрана песни не инициализирована"
		}

	case LogScreen:
		view = m.logModel.View()

	default:
		view = "Неизвестный экран"
	}

	if m.notification == "" {
		return view
	}
	return notificationStyle.Render("✅ Добавлено в журнал: "+m.notification) + "\n" + view
}

// Close отписывает модель от событий Manager
func (m *MainModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *MainModel) openDetail(song catalog.Song) {
	m.currentScreen = DetailScreen
	m.detailModel = detail.NewModel(song, m.trackManager)
	if m.width > 0 {
		m.detailModel, _ = m.detailModel.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
}

func (m *MainModel) handleEvent(event track.Event) {
	switch event.Kind {
	case track.CatalogLoaded:
		m.tracklistModel.RefreshData()
		if m.detailModel != nil {
			m.detailModel.RefreshRelated()
		}
	case track.LogChanged:
		m.logModel.Refresh()
	case track.NotificationChanged:
		m.notification, _ = m.trackManager.CurrentNotification()
	}
}

// listenForEvents ждет следующее событие Manager
func (m *MainModel) listenForEvents() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return EventMsg{Event: event}
	}
}
