package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hazadus/go-beattrees/internal/catalog"
	"github.com/hazadus/go-beattrees/internal/config"
	"github.com/hazadus/go-beattrees/internal/dataset"
	"github.com/hazadus/go-beattrees/internal/utils"
)

// createDownloadCommand создает команду download с привязкой к экземпляру приложения
func (app *Application) createDownloadCommand(ctx context.Context) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download [dataset URL]",
		Short: "Download a remote dataset to the local cache",
		Long: `Download the dataset from http(s)://, s3:// or gs:// and save it to the cache path,
so the catalog can be loaded without network access. Without arguments the configured dataset is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			location := app.Config.Dataset
			if len(args) == 1 {
				location = args[0]
			}
			if output == "" {
				output = app.Config.CachePath
			}
			return app.downloadDataset(ctx, location, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "path to save the dataset (defaults to cache_path)")

	return cmd
}

func (app *Application) downloadDataset(ctx context.Context, location, output string) error {
	if !config.IsRemote(location) {
		fmt.Printf("❌ Ошибка: датасет уже локальный: %s\n", location)
		return nil
	}

	source, err := dataset.NewSource(location, sourceOptions(app.Config))
	if err != nil {
		return fmt.Errorf("ошибка настройки источника: %w", err)
	}

	fmt.Printf("📥 Скачиваем датасет: %s\n", location)

	stream, err := source.Open(ctx)
	if err != nil {
		app.Logger.Error("Ошибка открытия датасета", zap.String("source", location), zap.Error(err))
		return fmt.Errorf("ошибка открытия датасета: %w", err)
	}
	defer stream.Close()

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("ошибка создания директории: %w", err)
	}

	// Пишем во временный файл, чтобы прерванная загрузка не испортила кэш
	tmp, err := os.CreateTemp(filepath.Dir(output), ".dataset-*.csv")
	if err != nil {
		return fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer os.Remove(tmp.Name())

	bar := progressbar.NewOptions64(
		stream.Size,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription("[cyan]Скачивание[reset]"),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)

	written, err := io.Copy(io.MultiWriter(tmp, bar), stream)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("ошибка скачивания: %w", err)
	}
	_ = bar.Finish()

	if err := os.Rename(tmp.Name(), output); err != nil {
		return fmt.Errorf("ошибка сохранения датасета: %w", err)
	}

	app.Logger.Info("Датасет сохранен",
		zap.String("source", location),
		zap.String("path", output),
		zap.Int64("bytes", written),
	)

	songs, err := countSongs(output)
	if err != nil {
		return err
	}

	fmt.Printf("\n✅ Датасет сохранен: %s (%s, песен: %d)\n", output, utils.FormatFileSize(written), songs)
	fmt.Println("💡 Укажите этот путь в параметре dataset, чтобы работать без сети")
	return nil
}

// countSongs разбирает сохраненный датасет и возвращает число песен
func countSongs(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия датасета: %w", err)
	}
	defer file.Close()

	songs, err := catalog.ParseReader(file)
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения датасета: %w", err)
	}
	return len(songs), nil
}
