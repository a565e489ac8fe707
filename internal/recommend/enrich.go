package recommend

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gamescout/internal/quota"
)

// EnrichedGame is one fully-assembled recommendation entry.
type EnrichedGame struct {
	Title           string  `json:"title"`
	ReleaseDate     string  `json:"release_date"`
	Platforms       string  `json:"platforms"`
	Rating          float64 `json:"rating"`
	Genres          string  `json:"genres"`
	Developers      string  `json:"developers"`
	Metacritic      *int    `json:"metacritic"`
	BackgroundImage string  `json:"background_image"`
	TwitchViewers   int     `json:"twitch_viewers"`

	// released keeps the raw catalog date for sorting; ReleaseDate above is
	// the display form.
	released string
}

// enrich resolves every title against the catalog concurrently and assembles
// the entries that produced a usable match, preserving input order. Titles
// that fail or find nothing are dropped. Quota is counted per title for every
// search that actually hit the network, and the ledger is written back once
// after the whole batch settles.
func (r *Recommender) enrich(ctx context.Context, titles []string) []EnrichedGame {
	titles = dedupTitles(titles)

	rec, err := r.loadQuota()
	if err != nil {
		slog.Warn("Quota ledger unavailable, batch will not be metered", "error", err)
	}

	slots := make([]*EnrichedGame, len(titles))
	var wg sync.WaitGroup
	for i, title := range titles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			game, metered := r.enrichOne(ctx, title)
			if metered && rec != nil {
				r.ledger.RecordRequest(rec, title)
			}
			slots[i] = game
		}()
	}
	wg.Wait()

	if rec != nil {
		if err := r.ledger.Save(rec); err != nil {
			slog.Warn("Failed to persist quota ledger", "error", err)
		}
		r.ledger.LogUsage(rec)
	}

	games := make([]EnrichedGame, 0, len(titles))
	for _, game := range slots {
		if game != nil {
			games = append(games, *game)
		}
	}
	return games
}

// enrichOne builds the entry for a single title. The boolean reports whether
// the catalog search was a metered network call rather than a cache hit; an
// empty result set is still metered because the call was made regardless.
func (r *Recommender) enrichOne(ctx context.Context, title string) (*EnrichedGame, bool) {
	resp, err := r.catalog.SearchGames(ctx, title)
	if err != nil {
		slog.Warn("Catalog search failed, dropping title", "title", title, "error", err)
		return nil, false
	}
	metered := !resp.FromCache

	if len(resp.Results) == 0 {
		slog.Debug("No catalog match for title", "title", title)
		return nil, metered
	}
	top := resp.Results[0]

	game := &EnrichedGame{
		Title:           top.Name,
		ReleaseDate:     formatReleaseDate(top.Released),
		Platforms:       top.PlatformList(),
		Rating:          top.Rating,
		Genres:          top.GenreList(),
		Developers:      top.DeveloperList(),
		Metacritic:      top.Metacritic,
		BackgroundImage: top.BackgroundImage,
		released:        top.Released,
	}

	if r.popularity != nil {
		viewers, err := r.popularity.ViewerCount(ctx, top.Name)
		if err != nil {
			slog.Warn("Viewer-count lookup failed, reporting zero", "title", top.Name, "error", err)
		} else {
			game.TwitchViewers = viewers
		}
	}

	return game, metered
}

func (r *Recommender) loadQuota() (*quota.Record, error) {
	if r.ledger == nil {
		return nil, nil
	}
	return r.ledger.Load()
}

// dedupTitles drops case-insensitive repeats, keeping first occurrences in
// order so the model's ranking survives.
func dedupTitles(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	out := make([]string, 0, len(titles))
	for _, title := range titles {
		key := strings.ToLower(strings.TrimSpace(title))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, title)
	}
	return out
}

// formatReleaseDate converts the catalog's ISO date to the display form, or
// "N/A" when the catalog has no date.
func formatReleaseDate(released string) string {
	t, err := time.Parse("2006-01-02", released)
	if err != nil {
		return "N/A"
	}
	return t.Format("01/02/2006")
}
