package recommend

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func batch() []EnrichedGame {
	mc := func(n int) *int { return &n }
	return []EnrichedGame{
		{Title: "Undated", Rating: 4.0, Metacritic: nil, released: ""},
		{Title: "Old Classic", Rating: 4.6, Metacritic: mc(96), released: "1998-11-21"},
		{Title: "New Hit", Rating: 4.2, Metacritic: mc(90), released: "2024-03-01"},
		{Title: "Mid", Rating: 4.2, Metacritic: mc(80), released: "2019-06-10"},
	}
}

func titlesOf(games []EnrichedGame) []string {
	titles := make([]string, len(games))
	for i, g := range games {
		titles[i] = g.Title
	}
	return titles
}

func TestSortGamesByRating(t *testing.T) {
	games := batch()
	sortGames(games, SortByRating)
	// Equal ratings keep their original relative order.
	assert.Equal(t, []string{"Old Classic", "New Hit", "Mid", "Undated"}, titlesOf(games))
}

func TestSortGamesByMetacritic(t *testing.T) {
	games := batch()
	sortGames(games, SortByMetacritic)
	// A missing score counts as zero and sinks to the bottom.
	assert.Equal(t, []string{"Old Classic", "New Hit", "Mid", "Undated"}, titlesOf(games))
}

func TestSortGamesByReleaseDate(t *testing.T) {
	games := batch()
	sortGames(games, SortByReleaseDate)
	// A missing date counts as the epoch and sinks to the bottom.
	assert.Equal(t, []string{"New Hit", "Mid", "Old Classic", "Undated"}, titlesOf(games))
}

func TestSortGamesDefaultsToReleaseDate(t *testing.T) {
	// Empty and unrecognized keys both get the release-date ordering.
	for _, sortBy := range []string{"", "popularity"} {
		games := batch()
		sortGames(games, sortBy)
		assert.Equal(t, []string{"New Hit", "Mid", "Old Classic", "Undated"}, titlesOf(games))
	}
}
