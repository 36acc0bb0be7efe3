// Package query реализует поиск по каталогу: по подстроке или по точному темпу
package query

import (
	"strconv"
	"strings"

	"github.com/hazadus/go-beattrees/internal/catalog"
)

// bpmSuffix суффикс запроса по темпу, например "120 bpm"
const bpmSuffix = "bpm"

// Search фильтрует песни по запросу, сохраняя порядок каталога.
// Пустой запрос возвращает songs без изменений. Запрос вида "<число> bpm"
// ищет песни с точно таким темпом, остальные ищут подстроку в названии
// трека или в исполнителях без учета регистра.
func Search(query string, songs []catalog.Song) []catalog.Song {
	if query == "" {
		return songs
	}

	q := strings.ToLower(query)
	if tempo, ok := ParseTempo(q); ok {
		return filter(songs, func(s catalog.Song) bool {
			return s.Tempo == tempo
		})
	}

	return filter(songs, func(s catalog.Song) bool {
		return strings.Contains(strings.ToLower(s.TrackName), q) ||
			strings.Contains(strings.ToLower(s.Artists), q)
	})
}

// ParseTempo разбирает запрос вида "120 bpm", "120BPM" или "98.5 bpm"
func ParseTempo(query string) (float64, bool) {
	q := strings.TrimSpace(strings.ToLower(query))
	prefix, found := strings.CutSuffix(q, bpmSuffix)
	if !found {
		return 0, false
	}

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return 0, false
	}

	tempo, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return tempo, true
}

func filter(songs []catalog.Song, keep func(catalog.Song) bool) []catalog.Song {
	result := make([]catalog.Song, 0)
	for _, s := range songs {
		if keep(s) {
			result = append(result, s)
		}
	}
	return result
}
