package rawg

import (
	"context"
	"net/url"

	"gamescout/internal/cache"
)

// SearchResponse is the outcome of one catalog search. FromCache reports
// whether the response was served from the local cache instead of a metered
// API call, so callers can decide whether to count it against the quota.
type SearchResponse struct {
	Results   []Game
	FromCache bool
}

// SearchGames searches the RAWG catalog for the given term and returns the
// ranked results. Responses are cached; "no results" responses are cached
// with the negative TTL since absent games rarely appear overnight.
func (c *Client) SearchGames(ctx context.Context, term string) (*SearchResponse, error) {
	fetch := func() ([]Game, error) {
		return c.searchGames(ctx, term)
	}

	if !c.useCache {
		results, err := fetch()
		if err != nil {
			return nil, err
		}
		return &SearchResponse{Results: results}, nil
	}

	results, fromCache, err := cache.GetOrFetchWithTTL("rawg_search_cache", cacheKey(term), fetch,
		cache.SelectNegativeCacheTTL(func(games []Game) bool {
			return len(games) == 0
		}))
	if err != nil {
		return nil, err
	}
	return &SearchResponse{Results: results, FromCache: fromCache}, nil
}

func (c *Client) searchGames(ctx context.Context, term string) ([]Game, error) {
	params := url.Values{}
	params.Set("search", term)

	var response struct {
		Results []struct {
			ID              int           `json:"id"`
			Name            string        `json:"name"`
			Released        string        `json:"released"`
			Rating          float64       `json:"rating"`
			Metacritic      *int          `json:"metacritic"`
			BackgroundImage string        `json:"background_image"`
			Platforms       []platformRef `json:"platforms"`
			Genres          []namedRef    `json:"genres"`
			Developers      []namedRef    `json:"developers"`
		} `json:"results"`
	}

	if err := c.getJSON(ctx, c.endpoint("/games", params), &response); err != nil {
		return nil, err
	}

	results := make([]Game, 0, len(response.Results))
	for _, item := range response.Results {
		results = append(results, Game{
			ID:              item.ID,
			Name:            item.Name,
			Released:        item.Released,
			Rating:          item.Rating,
			Metacritic:      item.Metacritic,
			BackgroundImage: item.BackgroundImage,
			Platforms:       platformNames(item.Platforms),
			Genres:          refNames(item.Genres),
			Developers:      refNames(item.Developers),
		})
	}

	return results, nil
}
