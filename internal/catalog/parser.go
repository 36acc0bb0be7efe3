package catalog

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// minFields минимальное число полей в строке датасета
const minFields = 20

// Позиции колонок датасета
const (
	colTrackID = iota + 1
	colArtists
	colAlbumName
	colTrackName
	colPopularity
	colDurationMS
	colExplicit
	colDanceability
	colEnergy
	colKey
	colLoudness
	colMode
	colSpeechiness
	colAcousticness
	colInstrumentalness
	colLiveness
	colValence
	colTempo
	colTimeSignature
	colTrackGenre
)

// Parse разбирает текст датасета и возвращает песни, отсортированные
// по убыванию популярности. Первая строка считается заголовком.
// Экранирование запятых не поддерживается: запятая внутри поля ломает строку.
func Parse(raw string) []Song {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 {
		return make([]Song, 0)
	}

	songs := make([]Song, 0, len(lines)-1)
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		fields := strings.Split(line, ",")
		// Короткие строки пропускаем молча
		if len(fields) < minFields {
			continue
		}
		songs = append(songs, songFromFields(fields))
	}

	// Стабильная сортировка: при равной популярности сохраняется порядок файла
	slices.SortStableFunc(songs, func(a, b Song) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})

	return songs
}

// ParseReader читает датасет целиком и разбирает его
func ParseReader(r io.Reader) ([]Song, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения датасета: %w", err)
	}
	return Parse(string(data)), nil
}

func songFromFields(fields []string) Song {
	return Song{
		ID:               uuid.NewString(),
		TrackID:          field(fields, colTrackID),
		Artists:          field(fields, colArtists),
		AlbumName:        field(fields, colAlbumName),
		TrackName:        field(fields, colTrackName),
		Popularity:       parseInt(field(fields, colPopularity)),
		DurationMS:       parseInt(field(fields, colDurationMS)),
		Explicit:         field(fields, colExplicit) == "1",
		Danceability:     parseFloat(field(fields, colDanceability)),
		Energy:           parseFloat(field(fields, colEnergy)),
		Key:              parseInt(field(fields, colKey)),
		Loudness:         parseFloat(field(fields, colLoudness)),
		Mode:             parseInt(field(fields, colMode)),
		Speechiness:      parseFloat(field(fields, colSpeechiness)),
		Acousticness:     parseFloat(field(fields, colAcousticness)),
		Instrumentalness: parseFloat(field(fields, colInstrumentalness)),
		Liveness:         parseFloat(field(fields, colLiveness)),
		Valence:          parseFloat(field(fields, colValence)),
		Tempo:            parseFloat(field(fields, colTempo)),
		TimeSignature:    parseInt(field(fields, colTimeSignature)),
		TrackGenre:       field(fields, colTrackGenre),
	}
}

// field возвращает поле по индексу или пустую строку, если поля нет
func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// parseInt возвращает 0, если значение не разбирается
func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// parseFloat возвращает 0, если значение не разбирается
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
