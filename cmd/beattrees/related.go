package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-beattrees/internal/utils"
)

// createRelatedCommand создает команду related с привязкой к экземпляру приложения
func (app *Application) createRelatedCommand(ctx context.Context) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "related [track_id]",
		Short: "List songs with the same whole-number tempo",
		Long:  `Find a song by its dataset track ID and list other songs whose tempo truncates to the same BPM.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.relatedSongs(ctx, args[0], limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of songs to show (0 for all)")

	return cmd
}

func (app *Application) relatedSongs(ctx context.Context, trackID string, limit int) error {
	if err := app.loadCatalog(ctx); err != nil {
		return err
	}

	song, err := app.Manager.SongByTrackID(trackID)
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return nil
	}

	fmt.Printf("🎵 %s (%s)\n", song, utils.FormatTempo(song.Tempo))

	related := app.Manager.Related(song)
	if len(related) == 0 {
		fmt.Println("Других песен с таким темпом нет")
		return nil
	}

	fmt.Printf("Похожих песен: %d\n\n", len(related))
	printSongs(related, limit)
	return nil
}
