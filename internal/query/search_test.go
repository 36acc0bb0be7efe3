package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazadus/go-beattrees/internal/catalog"
)

func testSongs() []catalog.Song {
	return []catalog.Song{
		{ID: "1", TrackName: "Lovely", Artists: "Billie Eilish;Khalid", Popularity: 90, Tempo: 115.284},
		{ID: "2", TrackName: "Hold On", Artists: "Chord Overstreet", Popularity: 82, Tempo: 120.0},
		{ID: "3", TrackName: "Comedy", Artists: "Gen Hoshino", Popularity: 73, Tempo: 87.917},
		{ID: "4", TrackName: "Crazy", Artists: "Courtney Love", Popularity: 60, Tempo: 120.0},
		{ID: "5", TrackName: "Almost", Artists: "Glove Club", Popularity: 40, Tempo: 120.5},
		{ID: "6", TrackName: "Quiet", Artists: "Nobody", Popularity: 10, Tempo: 119.9},
	}
}

func ids(songs []catalog.Song) []string {
	result := make([]string, 0, len(songs))
	for _, s := range songs {
		result = append(result, s.ID)
	}
	return result
}

func TestSearchEmptyQueryReturnsCatalog(t *testing.T) {
	songs := testSongs()
	assert.Equal(t, songs, Search("", songs))
}

func TestSearchByTempo(t *testing.T) {
	songs := testSongs()

	result := Search("120 bpm", songs)
	assert.Equal(t, []string{"2", "4"}, ids(result))
	for _, s := range result {
		assert.Equal(t, 120.0, s.Tempo)
	}

	assert.Equal(t, result, Search("120 BPM", songs))
	assert.Equal(t, result, Search("120BPM", songs))
	assert.Equal(t, []string{"5"}, ids(Search("120.5 bpm", songs)))
}

func TestSearchByTempoIsExact(t *testing.T) {
	assert.Empty(t, Search("119 bpm", testSongs()))
}

func TestSearchBySubstring(t *testing.T) {
	songs := testSongs()

	result := Search("love", songs)
	assert.Equal(t, []string{"1", "4", "5"}, ids(result))
	for _, s := range result {
		matched := strings.Contains(strings.ToLower(s.TrackName), "love") ||
			strings.Contains(strings.ToLower(s.Artists), "love")
		assert.True(t, matched, "песня %s не содержит запрос", s)
	}

	assert.Equal(t, result, Search("LOVE", songs))
	assert.Equal(t, result, Search("LoVe", songs))
}

func TestSearchNonNumericBpmFallsBackToSubstring(t *testing.T) {
	songs := append(testSongs(), catalog.Song{ID: "7", TrackName: "Fast bpm", Artists: "DJ"})

	assert.Equal(t, []string{"7"}, ids(Search("bpm", songs)))
	assert.Equal(t, []string{"7"}, ids(Search("fast bpm", songs)))
}

func TestSearchNoMatches(t *testing.T) {
	result := Search("zzz", testSongs())
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestParseTempo(t *testing.T) {
	tests := []struct {
		query string
		tempo float64
		ok    bool
	}{
		{"120 bpm", 120, true},
		{"120bpm", 120, true},
		{"  98.5   BPM ", 98.5, true},
		{"bpm", 0, false},
		{"fast bpm", 0, false},
		{"120", 0, false},
		{"120 bpm please", 0, false},
	}

	for _, tt := range tests {
		tempo, ok := ParseTempo(tt.query)
		if ok != tt.ok || tempo != tt.tempo {
			t.Errorf("ParseTempo(%q) = (%v, %v); ожидалось (%v, %v)", tt.query, tempo, ok, tt.tempo, tt.ok)
		}
	}
}
