// Package recommend implements the recommendation pipeline: candidate titles
// from the language model, catalog enrichment from RAWG, live popularity from
// Twitch, and quota accounting for the metered catalog calls.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "gamescout/internal/errors"
	"gamescout/internal/igdb"
	"gamescout/internal/quota"
	"gamescout/internal/rawg"
)

// maxSimilarTitles caps the generated tail behind a resolved exact match so
// the final list never exceeds one full batch.
const maxSimilarTitles = 17

const generalExplain = "GPT-4o AI recommendations: 80% trending/popular games, 20% timeless classics - all perfectly matched to your preferences."

// TitleGenerator produces an ordered candidate title list for a preference.
type TitleGenerator interface {
	Generate(ctx context.Context, preference string, filters map[string]string) ([]string, error)
}

// Catalog is the metered game catalog used for enrichment and details.
type Catalog interface {
	SearchGames(ctx context.Context, term string) (*rawg.SearchResponse, error)
	GetGameDetails(ctx context.Context, gameID int) (*rawg.Details, error)
	GetScreenshots(ctx context.Context, gameID int) ([]string, error)
}

// TitleIndex is the secondary catalog consulted first for exact-title matches.
type TitleIndex interface {
	SearchGames(ctx context.Context, query string, limit int) ([]igdb.Game, error)
}

// Popularity supplies the live viewer-count signal for an enriched game.
type Popularity interface {
	ViewerCount(ctx context.Context, gameName string) (int, error)
}

// Response is the outcome of one recommendation request.
type Response struct {
	Games   []EnrichedGame `json:"games"`
	Explain string         `json:"explain"`
}

// Recommender wires the pipeline stages together. All collaborators are
// injected so tests can substitute fakes without touching the network.
type Recommender struct {
	generator  TitleGenerator
	catalog    Catalog
	index      TitleIndex
	popularity Popularity
	ledger     *quota.Ledger
	match      MatchFunc
}

// Option is a functional option for configuring the Recommender.
type Option func(*Recommender)

// WithMatchFunc sets the catalog-side exact-match policy.
func WithMatchFunc(m MatchFunc) Option {
	return func(r *Recommender) {
		if m != nil {
			r.match = m
		}
	}
}

// NewRecommender creates a Recommender over the given collaborators.
func NewRecommender(generator TitleGenerator, catalog Catalog, index TitleIndex, popularity Popularity, ledger *quota.Ledger, opts ...Option) *Recommender {
	r := &Recommender{
		generator:  generator,
		catalog:    catalog,
		index:      index,
		popularity: popularity,
		ledger:     ledger,
		match:      LooseMatch,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend runs the full pipeline for a preference. Exact-match resolution
// is always attempted first: when the preference names a real game the
// resolved match is pinned to position zero and the rest of the batch is
// filled with similar titles in generation order. Otherwise the generated
// batch is sorted by sortBy, defaulting to newest release first.
func (r *Recommender) Recommend(ctx context.Context, preference string, filters map[string]string, sortBy string) (*Response, error) {
	preference = strings.TrimSpace(preference)

	if exact, ok := r.resolveExact(ctx, preference); ok {
		games := r.enrich(ctx, r.exactBatch(ctx, exact))
		return &Response{
			Games:   games,
			Explain: fmt.Sprintf("Found exact match for '%s' with similar trending games and curated gems.", exact),
		}, nil
	}

	titles, err := r.generator.Generate(ctx, preference, filters)
	if err != nil {
		return nil, err
	}

	games := r.enrich(ctx, titles)
	sortGames(games, sortBy)
	return &Response{Games: games, Explain: generalExplain}, nil
}

// exactBatch builds the title batch for a resolved exact match: the match
// itself first, then up to maxSimilarTitles generated companions with any
// repeat of the match filtered out.
func (r *Recommender) exactBatch(ctx context.Context, exact string) []string {
	similar, err := r.generator.Generate(ctx, "Games similar to "+exact, nil)
	if err != nil {
		slog.Warn("Similar-title generation failed, enriching the exact match alone", "title", exact, "error", err)
		similar = nil
	}

	batch := make([]string, 0, maxSimilarTitles+1)
	batch = append(batch, exact)
	for _, title := range similar {
		if len(batch) > maxSimilarTitles {
			break
		}
		if strings.EqualFold(strings.TrimSpace(title), strings.TrimSpace(exact)) {
			continue
		}
		batch = append(batch, title)
	}
	return batch
}

// GameDetails is the extended record served for a single game.
type GameDetails struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ReleaseDate     string   `json:"release_date"`
	Platforms       string   `json:"platforms"`
	Rating          float64  `json:"rating"`
	Metacritic      *int     `json:"metacritic"`
	Genres          string   `json:"genres"`
	Developers      string   `json:"developers"`
	Publishers      string   `json:"publishers"`
	ESRBRating      string   `json:"esrb_rating"`
	Website         string   `json:"website"`
	BackgroundImage string   `json:"background_image"`
	Screenshots     []string `json:"screenshots"`
}

// GameDetails resolves a title through the catalog and returns its extended
// record with screenshots. An unknown title fails with a NotFoundError.
// Detail lookups ride the response cache and are not counted against the
// quota; only enrichment batches are metered.
func (r *Recommender) GameDetails(ctx context.Context, title string) (*GameDetails, error) {
	resp, err := r.catalog.SearchGames(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, apperrors.NewNotFoundError(title)
	}
	top := resp.Results[0]

	details, err := r.catalog.GetGameDetails(ctx, top.ID)
	if err != nil {
		return nil, err
	}

	screenshots, err := r.catalog.GetScreenshots(ctx, top.ID)
	if err != nil {
		slog.Warn("Screenshot fetch failed, serving details without them", "title", details.Name, "error", err)
		screenshots = nil
	}

	return &GameDetails{
		Title:           details.Name,
		Description:     details.DescriptionRaw,
		ReleaseDate:     formatReleaseDate(details.Released),
		Platforms:       details.PlatformList(),
		Rating:          details.Rating,
		Metacritic:      details.Metacritic,
		Genres:          details.GenreList(),
		Developers:      details.DeveloperList(),
		Publishers:      details.PublisherList(),
		ESRBRating:      details.ESRBRating,
		Website:         details.Website,
		BackgroundImage: details.BackgroundImage,
		Screenshots:     screenshots,
	}, nil
}
