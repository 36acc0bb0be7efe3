package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand(ctx context.Context) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most popular songs of the catalog",
		Long:  `Display catalog songs ordered by popularity, most popular first.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.listSongs(ctx, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of songs to show (0 for all)")

	return cmd
}

func (app *Application) listSongs(ctx context.Context, limit int) error {
	if err := app.loadCatalog(ctx); err != nil {
		return err
	}

	songs := app.Manager.CurrentCatalog()
	if len(songs) == 0 {
		fmt.Println("📚 Каталог пуст. Укажите датасет в конфигурации или в переменной BEATTREES_DATASET.")
		return nil
	}

	fmt.Printf("📚 Песен в каталоге: %d\n\n", len(songs))
	printSongs(songs, limit)

	fmt.Println()
	fmt.Println("💡 Используйте 'beattrees related [track_id]' для поиска песен с тем же темпом")
	return nil
}
