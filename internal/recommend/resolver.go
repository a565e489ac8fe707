package recommend

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// igdbExactLimit bounds how deep the IGDB ranking is scanned for an
	// exact name, and rawgExactLimit likewise for the RAWG fallback.
	igdbExactLimit = 5
	rawgExactLimit = 3
)

// MatchFunc decides whether a catalog result name satisfies a requested
// title. It only governs the RAWG fallback; the IGDB pass always requires
// case-insensitive equality.
type MatchFunc func(requested, candidate string) bool

// StrictMatch accepts only case-insensitive equality.
func StrictMatch(requested, candidate string) bool {
	return strings.EqualFold(strings.TrimSpace(requested), strings.TrimSpace(candidate))
}

// LooseMatch accepts equality or a substring relation in either direction,
// so "The Witcher 3" matches "The Witcher 3: Wild Hunt". It is the default
// policy; swap in StrictMatch to stop series entries from matching each
// other's base names.
func LooseMatch(requested, candidate string) bool {
	a := strings.ToLower(strings.TrimSpace(requested))
	b := strings.ToLower(strings.TrimSpace(candidate))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// resolveExact tries to resolve the preference to a canonical catalog title,
// consulting IGDB first and falling back to RAWG. Both lookups fail soft: a
// broken index never blocks the general recommendation path.
func (r *Recommender) resolveExact(ctx context.Context, title string) (string, bool) {
	if r.index != nil {
		games, err := r.index.SearchGames(ctx, title, igdbExactLimit)
		if err != nil {
			slog.Warn("Exact-match lookup on IGDB failed", "title", title, "error", err)
		} else {
			for _, game := range games {
				if StrictMatch(title, game.Name) {
					return game.Name, true
				}
			}
		}
	}

	resp, err := r.catalog.SearchGames(ctx, title)
	if err != nil {
		slog.Warn("Exact-match lookup on RAWG failed", "title", title, "error", err)
		return "", false
	}

	results := resp.Results
	if len(results) > rawgExactLimit {
		results = results[:rawgExactLimit]
	}
	for _, game := range results {
		if r.match(title, game.Name) {
			return game.Name, true
		}
	}
	return "", false
}
