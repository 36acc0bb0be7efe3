package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-beattrees/internal/catalog"
	"github.com/hazadus/go-beattrees/internal/utils"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "beattrees",
		Short:        "Browse a song catalog and find songs with the same tempo",
		Long:         `A command line tool to search a song dataset by title, artist or tempo and keep a session log of picked songs.`,
		SilenceUsage: true,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createSearchCommand(ctx))
	rootCmd.AddCommand(app.createRelatedCommand(ctx))
	rootCmd.AddCommand(app.createListCommand(ctx))
	rootCmd.AddCommand(app.createDownloadCommand(ctx))
	rootCmd.AddCommand(app.createMatchCommand(ctx))
	rootCmd.AddCommand(app.createTUICommand(ctx))

	return rootCmd
}

// loadCatalog загружает каталог и ждет завершения загрузки
func (app *Application) loadCatalog(ctx context.Context) error {
	select {
	case <-app.Manager.LoadCatalog(ctx):
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("загрузка каталога прервана: %w", err)
	}
	return nil
}

// printSongs выводит таблицу песен, не больше limit строк (0 - без ограничения)
func printSongs(songs []catalog.Song, limit int) {
	fmt.Printf("%-10s %-25s %-40s %-15s %-22s\n",
		"Темп", "Исполнитель", "Название", "Жанр", "Track ID")
	fmt.Println(strings.Repeat("-", 115))

	shown := songs
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	for _, song := range shown {
		fmt.Printf("%-10s %-25s %-40s %-15s %-22s\n",
			utils.FormatTempo(song.Tempo),
			utils.TruncateString(song.Artists, 25),
			utils.TruncateString(song.TrackName, 40),
			utils.TruncateString(utils.FormatGenre(song.TrackGenre), 15),
			song.TrackID)
	}

	if len(shown) < len(songs) {
		fmt.Printf("... и еще %d\n", len(songs)-len(shown))
	}
}
