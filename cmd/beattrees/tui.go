package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-beattrees/internal/tui"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface for searching songs and keeping a session log.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.NewApp(app.Manager).Run(ctx)
		},
	}
}
