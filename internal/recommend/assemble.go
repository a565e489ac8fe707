package recommend

import "sort"

// Sort keys accepted on recommendation requests. Anything else (including
// the empty string) falls back to the release-date ordering.
const (
	SortByRating      = "rating"
	SortByMetacritic  = "metacritic"
	SortByReleaseDate = "release_date"
)

// sortGames re-orders the batch in place, descending. Newest-release-first is
// the default ordering, not just one option. Stable sort keeps the model's
// ranking as the tie-break, so equally-scored games stay in the order they
// were recommended.
func sortGames(games []EnrichedGame, sortBy string) {
	switch sortBy {
	case SortByRating:
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].Rating > games[j].Rating
		})
	case SortByMetacritic:
		sort.SliceStable(games, func(i, j int) bool {
			return metacriticOrZero(games[i]) > metacriticOrZero(games[j])
		})
	default:
		sort.SliceStable(games, func(i, j int) bool {
			return releasedOrEpoch(games[i]) > releasedOrEpoch(games[j])
		})
	}
}

func metacriticOrZero(game EnrichedGame) int {
	if game.Metacritic == nil {
		return 0
	}
	return *game.Metacritic
}

// releasedOrEpoch substitutes the epoch for missing dates so undated games
// sink to the bottom of a newest-first ordering. ISO dates compare correctly
// as strings.
func releasedOrEpoch(game EnrichedGame) string {
	if game.released == "" {
		return "1970-01-01"
	}
	return game.released
}
