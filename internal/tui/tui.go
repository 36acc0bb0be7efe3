// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-beattrees/internal/track"
	"github.com/hazadus/go-beattrees/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	trackManager *track.Manager
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(trackManager *track.Manager) *App {
	return &App{
		trackManager: trackManager,
	}
}

// Run запускает TUI приложение. Каталог загружается в фоне, список
// обновится по событию CatalogLoaded.
func (tuiApp *App) Run(ctx context.Context) error {
	model := app.NewMainModel(tuiApp.trackManager)
	defer model.Close()

	tuiApp.trackManager.LoadCatalog(ctx)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
