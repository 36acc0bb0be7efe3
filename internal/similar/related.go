// Package similar группирует песни по целой части темпа
package similar

import (
	"math"

	"github.com/hazadus/go-beattrees/internal/catalog"
)

// Bucket возвращает целую часть темпа с отбрасыванием дробной части.
// Песни с темпом 119.9 и 120.1 попадают в разные группы.
func Bucket(s catalog.Song) float64 {
	return math.Trunc(s.Tempo)
}

// Related возвращает песни из той же группы темпа, кроме самой песни,
// в порядке каталога
func Related(song catalog.Song, songs []catalog.Song) []catalog.Song {
	bucket := Bucket(song)
	result := make([]catalog.Song, 0)
	for _, c := range songs {
		if c.ID != song.ID && Bucket(c) == bucket {
			result = append(result, c)
		}
	}
	return result
}
