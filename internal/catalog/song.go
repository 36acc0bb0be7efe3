// Package catalog содержит модель песни, разбор датасета и публикацию каталога
package catalog

import (
	"fmt"
	"time"
)

// Song хранит одну запись датасета
type Song struct {
	ID               string // Синтетический идентификатор, уникален в пределах загрузки
	TrackID          string
	Artists          string
	AlbumName        string
	TrackName        string
	Popularity       int
	DurationMS       int
	Explicit         bool
	Danceability     float64
	Energy           float64
	Key              int
	Loudness         float64
	Mode             int
	Speechiness      float64
	Acousticness     float64
	Instrumentalness float64
	Liveness         float64
	Valence          float64
	Tempo            float64
	TimeSignature    int
	TrackGenre       string
}

// String возвращает строку вида "Исполнитель - Название"
func (s Song) String() string {
	return fmt.Sprintf("%s - %s", s.Artists, s.TrackName)
}

// Catalog представляет опубликованный снимок каталога.
// После публикации не изменяется.
type Catalog struct {
	songs    []Song
	Source   string
	LoadedAt time.Time
}

// NewCatalog создает каталог из уже отсортированных песен
func NewCatalog(songs []Song, source string) *Catalog {
	if songs == nil {
		songs = make([]Song, 0)
	}
	return &Catalog{
		songs:    songs,
		Source:   source,
		LoadedAt: time.Now(),
	}
}

// Songs возвращает песни каталога в порядке убывания популярности.
// Срез принадлежит каталогу, изменять его нельзя.
func (c *Catalog) Songs() []Song {
	return c.songs
}

// Len возвращает количество песен
func (c *Catalog) Len() int {
	return len(c.songs)
}

// SongByTrackID возвращает первую песню с указанным trackID
func (c *Catalog) SongByTrackID(trackID string) (Song, error) {
	for _, s := range c.songs {
		if s.TrackID == trackID {
			return s, nil
		}
	}
	return Song{}, fmt.Errorf("песни с trackID %s не найдено", trackID)
}
