package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hazadus/go-beattrees/internal/metadata"
	"github.com/hazadus/go-beattrees/internal/utils"
)

// createMatchCommand создает команду match с привязкой к экземпляру приложения
func (app *Application) createMatchCommand(ctx context.Context) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "match [audio file]",
		Short: "Find catalog songs matching a local audio file",
		Long: `Read the tags of a local audio file. If the file has a BPM tag, list catalog songs
with exactly that tempo; otherwise look the title up and list songs with the same tempo as the best match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.matchFile(ctx, args[0], limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of songs to show (0 for all)")

	return cmd
}

func (app *Application) matchFile(ctx context.Context, filePath string, limit int) error {
	if _, err := os.Stat(filePath); err != nil {
		fmt.Printf("❌ Ошибка: файл не найден: %s\n", filePath)
		return nil
	}

	extractor := metadata.NewExtractor()
	meta := extractor.ExtractFromFile(filePath)

	fmt.Printf("🎧 Файл: %s\n", filePath)
	fmt.Printf("   Исполнитель: %s\n", meta.Artist)
	fmt.Printf("   Название: %s\n", meta.Title)
	if meta.BPM > 0 {
		fmt.Printf("   Темп: %s\n", utils.FormatTempo(meta.BPM))
	}

	info, err := extractor.GetFileInfo(filePath)
	if err != nil {
		app.Logger.Debug("Не удалось определить длительность", zap.String("file", filePath), zap.Error(err))
	} else {
		fmt.Printf("   Длительность: %s\n", utils.FormatDuration(info.Duration))
		fmt.Printf("   Размер: %s\n", utils.FormatFileSize(info.Size))
	}

	if err := app.loadCatalog(ctx); err != nil {
		return err
	}

	query := meta.Query()
	matches := app.Manager.Search(query)
	if len(matches) == 0 {
		fmt.Printf("\n🔍 В каталоге нет совпадений по запросу \"%s\"\n", query)
		return nil
	}

	fmt.Printf("\n🔍 Совпадения по запросу \"%s\": %d\n\n", query, len(matches))
	printSongs(matches, limit)

	if meta.BPM > 0 {
		return nil
	}

	best := matches[0]
	related := app.Manager.Related(best)
	fmt.Printf("\n🎵 Похожие по темпу на %s (%s): %d\n\n", best, utils.FormatTempo(best.Tempo), len(related))
	if len(related) > 0 {
		printSongs(related, limit)
	}
	return nil
}
