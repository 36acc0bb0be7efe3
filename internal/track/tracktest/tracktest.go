// Package tracktest содержит помощники для тестов, которым нужен Manager
// с загруженным каталогом
package tracktest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hazadus/go-beattrees/internal/dataset"
	"github.com/hazadus/go-beattrees/internal/track"
)

// Header заголовок датасета
const Header = ",track_id,artists,album_name,track_name,popularity,duration_ms,explicit,danceability,energy,key,loudness,mode,speechiness,acousticness,instrumentalness,liveness,valence,tempo,time_signature,track_genre"

// Row собирает строку датасета с trackID вида "id<i>"
func Row(i int, trackName, artists string, popularity int, tempo float64) string {
	return fmt.Sprintf("%d,id%d,%s,Album,%s,%d,200000,0,0.5,0.5,1,-6.0,1,0.05,0.1,0.0,0.1,0.5,%g,4,pop",
		i, i, artists, trackName, popularity, tempo)
}

// WriteDataset создает файл датасета во временной директории теста
func WriteDataset(t testing.TB, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	raw := Header + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("Ошибка записи датасета: %v", err)
	}
	return path
}

// DefaultRows небольшой каталог: три песни на 120 BPM и две на других темпах
func DefaultRows() []string {
	return []string{
		Row(0, "Comedy", "Gen Hoshino", 73, 87.917),
		Row(1, "Hold On", "Chord Overstreet", 82, 120),
		Row(2, "Crazy", "Courtney Love", 60, 120),
		Row(3, "Lovely", "Billie Eilish", 90, 115.284),
		Row(4, "Almost", "Glove Club", 40, 120.5),
	}
}

// NewLoadedManager создает Manager и дожидается загрузки каталога из rows.
// Без rows используется DefaultRows.
func NewLoadedManager(t testing.TB, rows []string, opts ...track.Option) *track.Manager {
	t.Helper()
	if len(rows) == 0 {
		rows = DefaultRows()
	}

	m := track.NewManager(dataset.NewFileSource(WriteDataset(t, rows...)), nil, opts...)
	t.Cleanup(m.Close)

	select {
	case <-m.LoadCatalog(context.Background()):
	case <-time.After(5 * time.Second):
		t.Fatal("Загрузка каталога не завершилась")
	}
	return m
}
