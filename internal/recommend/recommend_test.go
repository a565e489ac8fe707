package recommend

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	apperrors "gamescout/internal/errors"
	"gamescout/internal/igdb"
	"gamescout/internal/quota"
	"gamescout/internal/rawg"
)

type fakeGenerator struct {
	titles         []string
	err            error
	lastPreference string
	lastFilters    map[string]string
}

func (f *fakeGenerator) Generate(_ context.Context, preference string, filters map[string]string) ([]string, error) {
	f.lastPreference = preference
	f.lastFilters = filters
	return f.titles, f.err
}

// fakeCatalog serves canned search responses keyed by lowercased term. Titles
// missing from the map come back as empty uncached results.
type fakeCatalog struct {
	searches map[string]*rawg.SearchResponse
	details  map[int]*rawg.Details
	shots    map[int][]string
	shotsErr error
}

func (f *fakeCatalog) SearchGames(_ context.Context, term string) (*rawg.SearchResponse, error) {
	if resp, ok := f.searches[strings.ToLower(term)]; ok {
		if resp == nil {
			return nil, errors.New("catalog down")
		}
		return resp, nil
	}
	return &rawg.SearchResponse{}, nil
}

func (f *fakeCatalog) GetGameDetails(_ context.Context, gameID int) (*rawg.Details, error) {
	details, ok := f.details[gameID]
	if !ok {
		return nil, errors.New("no details")
	}
	return details, nil
}

func (f *fakeCatalog) GetScreenshots(_ context.Context, gameID int) ([]string, error) {
	if f.shotsErr != nil {
		return nil, f.shotsErr
	}
	return f.shots[gameID], nil
}

type fakeIndex struct {
	games  []igdb.Game
	err    error
	called bool
}

func (f *fakeIndex) SearchGames(_ context.Context, _ string, _ int) ([]igdb.Game, error) {
	f.called = true
	return f.games, f.err
}

type fakePopularity struct {
	counts map[string]int
	err    error
}

func (f *fakePopularity) ViewerCount(_ context.Context, gameName string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[gameName], nil
}

func searchHit(id int, name, released string, rating float64, metacritic *int) *rawg.SearchResponse {
	return &rawg.SearchResponse{
		Results: []rawg.Game{{
			ID:         id,
			Name:       name,
			Released:   released,
			Rating:     rating,
			Metacritic: metacritic,
			Platforms:  []string{"PC"},
			Genres:     []string{"RPG"},
		}},
	}
}

func intPtr(n int) *int { return &n }

func testLedger(t *testing.T) *quota.Ledger {
	t.Helper()
	return quota.NewLedger(filepath.Join(t.TempDir(), "quota.json"), 100)
}

func TestRecommendExactMatch(t *testing.T) {
	generator := &fakeGenerator{titles: []string{"Elden Ring", "Dark Souls III", "Bloodborne"}}
	index := &fakeIndex{games: []igdb.Game{{ID: 1, Name: "Elden Ring"}}}
	catalog := &fakeCatalog{searches: map[string]*rawg.SearchResponse{
		"elden ring":     searchHit(10, "Elden Ring", "2022-02-25", 4.4, intPtr(94)),
		"dark souls iii": searchHit(11, "Dark Souls III", "2016-04-11", 4.4, intPtr(89)),
		"bloodborne":     searchHit(12, "Bloodborne", "2015-03-24", 4.4, intPtr(92)),
	}}
	popularity := &fakePopularity{counts: map[string]int{"Elden Ring": 50000}}

	r := NewRecommender(generator, catalog, index, popularity, testLedger(t))
	resp, err := r.Recommend(context.Background(), "elden ring", nil, "")
	assert.NoError(t, err)

	assert.Equal(t, "Found exact match for 'Elden Ring' with similar trending games and curated gems.", resp.Explain)
	assert.Equal(t, "Games similar to Elden Ring", generator.lastPreference)

	// The resolved match is pinned first and its generated repeat is dropped.
	assert.Equal(t, 3, len(resp.Games))
	assert.Equal(t, "Elden Ring", resp.Games[0].Title)
	assert.Equal(t, "Dark Souls III", resp.Games[1].Title)
	assert.Equal(t, "Bloodborne", resp.Games[2].Title)

	assert.Equal(t, 50000, resp.Games[0].TwitchViewers)
	assert.Equal(t, "02/25/2022", resp.Games[0].ReleaseDate)
}

func TestRecommendExactMatchFallsBackToCatalog(t *testing.T) {
	generator := &fakeGenerator{titles: []string{"Coral Island"}}
	index := &fakeIndex{err: errors.New("igdb down")}
	catalog := &fakeCatalog{searches: map[string]*rawg.SearchResponse{
		"stardew valley": searchHit(20, "Stardew Valley", "2016-02-25", 4.4, intPtr(89)),
		"coral island":   searchHit(21, "Coral Island", "2023-11-14", 4.0, nil),
	}}

	r := NewRecommender(generator, catalog, index, nil, testLedger(t))
	resp, err := r.Recommend(context.Background(), "Stardew Valley", nil, "")
	assert.NoError(t, err)

	assert.True(t, index.called)
	assert.Equal(t, "Stardew Valley", resp.Games[0].Title)
	assert.Contains(t, resp.Explain, "exact match for 'Stardew Valley'")
}

func TestRecommendGeneralPreference(t *testing.T) {
	generator := &fakeGenerator{titles: []string{"Stardew Valley", "Coral Island", "Fae Farm"}}
	index := &fakeIndex{}
	catalog := &fakeCatalog{searches: map[string]*rawg.SearchResponse{
		"stardew valley": searchHit(20, "Stardew Valley", "2016-02-25", 4.4, intPtr(89)),
		"coral island":   searchHit(21, "Coral Island", "2023-11-14", 3.9, nil),
		"fae farm":       searchHit(22, "Fae Farm", "2023-09-08", 4.1, intPtr(75)),
	}}

	r := NewRecommender(generator, catalog, index, nil, testLedger(t))
	resp, err := r.Recommend(context.Background(), "cozy farming games", map[string]string{"year": "2023"}, "")
	assert.NoError(t, err)

	// Resolution is always attempted; a descriptive preference just finds
	// nothing and falls through to the general path.
	assert.True(t, index.called)
	assert.Equal(t, generalExplain, resp.Explain)
	assert.Equal(t, "cozy farming games", generator.lastPreference)
	assert.Equal(t, map[string]string{"year": "2023"}, generator.lastFilters)

	// No sort key: newest release first.
	assert.Equal(t, []string{"Coral Island", "Fae Farm", "Stardew Valley"},
		[]string{resp.Games[0].Title, resp.Games[1].Title, resp.Games[2].Title})
}

func TestRecommendExactMatchLongTitle(t *testing.T) {
	generator := &fakeGenerator{titles: []string{"Elden Ring"}}
	index := &fakeIndex{games: []igdb.Game{{ID: 2, Name: "The Witcher 3: Wild Hunt"}}}
	catalog := &fakeCatalog{searches: map[string]*rawg.SearchResponse{
		"the witcher 3: wild hunt": searchHit(40, "The Witcher 3: Wild Hunt", "2015-05-18", 4.7, intPtr(92)),
		"elden ring":               searchHit(10, "Elden Ring", "2022-02-25", 4.4, intPtr(94)),
	}}

	r := NewRecommender(generator, catalog, index, nil, testLedger(t))
	resp, err := r.Recommend(context.Background(), "The Witcher 3: Wild Hunt", nil, "")
	assert.NoError(t, err)

	// Long titles resolve too; word count never gates the resolver.
	assert.True(t, index.called)
	assert.Equal(t, "Found exact match for 'The Witcher 3: Wild Hunt' with similar trending games and curated gems.", resp.Explain)
	assert.Equal(t, "The Witcher 3: Wild Hunt", resp.Games[0].Title)
}

func TestRecommendSortByRating(t *testing.T) {
	generator := &fakeGenerator{titles: []string{"Coral Island", "Stardew Valley"}}
	catalog := &fakeCatalog{searches: map[string]*rawg.SearchResponse{
		"coral island":   searchHit(21, "Coral Island", "2023-11-14", 3.9, nil),
		"stardew valley": searchHit(20, "Stardew Valley", "2016-02-25", 4.4, intPtr(89)),
	}}

	r := NewRecommender(generator, catalog, nil, nil, testLedger(t))
	resp, err := r.Recommend(context.Background(), "cozy farming games", nil, SortByRating)
	assert.NoError(t, err)

	assert.Equal(t, "Stardew Valley", resp.Games[0].Title)
	assert.Equal(t, "Coral Island", resp.Games[1].Title)
}

func TestRecommendGeneratorFailure(t *testing.T) {
	generator := &fakeGenerator{err: apperrors.NewNotConfiguredError("OpenAI", "OPENAI_API_KEY")}
	r := NewRecommender(generator, &fakeCatalog{}, nil, nil, testLedger(t))

	_, err := r.Recommend(context.Background(), "cozy farming games", nil, "")
	assert.True(t, apperrors.IsNotConfiguredError(err))
}

func TestEnrichDropsFailuresAndMisses(t *testing.T) {
	generator := &fakeGenerator{titles: []string{"Hades", "Broken Game", "Ghost Title"}}
	catalog := &fakeCatalog{searches: map[string]*rawg.SearchResponse{
		"hades":       searchHit(30, "Hades", "2020-09-17", 4.5, intPtr(93)),
		"broken game": nil, // search error
		// "Ghost Title" is absent: empty result set
	}}

	r := NewRecommender(generator, catalog, nil, nil, testLedger(t))
	resp, err := r.Recommend(context.Background(), "roguelike games", nil, "")
	assert.NoError(t, err)

	assert.Equal(t, 1, len(resp.Games))
	assert.Equal(t, "Hades", resp.Games[0].Title)
}

func TestEnrichMetersOnlyNetworkCalls(t *testing.T) {
	cached := searchHit(30, "Hades", "2020-09-17", 4.5, intPtr(93))
	cached.FromCache = true

	generator := &fakeGenerator{titles: []string{"Hades", "Celeste", "Ghost Title"}}
	catalog := &fakeCatalog{searches: map[string]*rawg.SearchResponse{
		"hades":   cached,
		"celeste": searchHit(31, "Celeste", "2018-01-25", 4.4, intPtr(94)),
		// "Ghost Title": empty uncached result, metered anyway
	}}

	ledger := testLedger(t)
	r := NewRecommender(generator, catalog, nil, nil, ledger)
	_, err := r.Recommend(context.Background(), "platformer games", nil, "")
	assert.NoError(t, err)

	rec, err := ledger.Load()
	assert.NoError(t, err)
	assert.Equal(t, 2, rec.TotalRequests)
	assert.Equal(t, ledger.Limit()-2, rec.Remaining)
}

func TestEnrichViewerCountFailureYieldsZero(t *testing.T) {
	generator := &fakeGenerator{titles: []string{"Hades"}}
	catalog := &fakeCatalog{searches: map[string]*rawg.SearchResponse{
		"hades": searchHit(30, "Hades", "2020-09-17", 4.5, intPtr(93)),
	}}
	popularity := &fakePopularity{err: errors.New("helix down")}

	r := NewRecommender(generator, catalog, nil, popularity, testLedger(t))
	resp, err := r.Recommend(context.Background(), "roguelike games", nil, "")
	assert.NoError(t, err)

	assert.Equal(t, 1, len(resp.Games))
	assert.Equal(t, 0, resp.Games[0].TwitchViewers)
}

func TestDedupTitles(t *testing.T) {
	titles := dedupTitles([]string{"Hades", "hades", "  Hades  ", "Celeste", "", "celeste"})
	assert.Equal(t, []string{"Hades", "Celeste"}, titles)
}

func TestFormatReleaseDate(t *testing.T) {
	assert.Equal(t, "02/25/2022", formatReleaseDate("2022-02-25"))
	assert.Equal(t, "N/A", formatReleaseDate(""))
	assert.Equal(t, "N/A", formatReleaseDate("soon"))
}

func TestGameDetails(t *testing.T) {
	catalog := &fakeCatalog{
		searches: map[string]*rawg.SearchResponse{
			"hades": searchHit(30, "Hades", "2020-09-17", 4.5, intPtr(93)),
		},
		details: map[int]*rawg.Details{
			30: {
				ID:             30,
				Name:           "Hades",
				DescriptionRaw: "A rogue-like dungeon crawler.",
				Released:       "2020-09-17",
				Rating:         4.5,
				Metacritic:     intPtr(93),
				Platforms:      []string{"PC", "Switch"},
				Genres:         []string{"Action", "Indie"},
				Developers:     []string{"Supergiant Games"},
				Publishers:     []string{"Supergiant Games"},
				ESRBRating:     "Teen",
				Website:        "https://www.supergiantgames.com/games/hades",
			},
		},
		shots: map[int][]string{30: {"https://example.com/shot1.jpg"}},
	}

	r := NewRecommender(&fakeGenerator{}, catalog, nil, nil, testLedger(t))
	details, err := r.GameDetails(context.Background(), "Hades")
	assert.NoError(t, err)

	assert.Equal(t, "Hades", details.Title)
	assert.Equal(t, "A rogue-like dungeon crawler.", details.Description)
	assert.Equal(t, "09/17/2020", details.ReleaseDate)
	assert.Equal(t, "PC, Switch", details.Platforms)
	assert.Equal(t, "Action, Indie", details.Genres)
	assert.Equal(t, "Teen", details.ESRBRating)
	assert.Equal(t, []string{"https://example.com/shot1.jpg"}, details.Screenshots)
}

func TestGameDetailsNotFound(t *testing.T) {
	r := NewRecommender(&fakeGenerator{}, &fakeCatalog{}, nil, nil, testLedger(t))
	_, err := r.GameDetails(context.Background(), "Ghost Title")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGameDetailsScreenshotFailureIsSoft(t *testing.T) {
	catalog := &fakeCatalog{
		searches: map[string]*rawg.SearchResponse{
			"hades": searchHit(30, "Hades", "2020-09-17", 4.5, intPtr(93)),
		},
		details:  map[int]*rawg.Details{30: {ID: 30, Name: "Hades"}},
		shotsErr: errors.New("screenshots down"),
	}

	r := NewRecommender(&fakeGenerator{}, catalog, nil, nil, testLedger(t))
	details, err := r.GameDetails(context.Background(), "Hades")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(details.Screenshots))
}
