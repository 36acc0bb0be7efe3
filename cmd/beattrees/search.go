package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// createSearchCommand создает команду search с привязкой к экземпляру приложения
func (app *Application) createSearchCommand(ctx context.Context) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search songs by title, artist or tempo",
		Long: `Search the catalog. A query like "120 bpm" matches songs with exactly that tempo,
any other query matches a case-insensitive substring of the title or artists.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.searchSongs(ctx, strings.Join(args, " "), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of songs to show (0 for all)")

	return cmd
}

func (app *Application) searchSongs(ctx context.Context, query string, limit int) error {
	if err := app.loadCatalog(ctx); err != nil {
		return err
	}

	songs := app.Manager.Search(query)
	if len(songs) == 0 {
		fmt.Printf("🔍 По запросу \"%s\" ничего не найдено\n", query)
		return nil
	}

	fmt.Printf("🔍 Найдено песен по запросу \"%s\": %d\n\n", query, len(songs))
	printSongs(songs, limit)
	return nil
}
