// Package igdb provides a client for the IGDB API, used as the secondary
// catalog for exact-title matching and name autocomplete. IGDB authenticates
// with Twitch application credentials via the shared oauth token cache.
package igdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gamescout/internal/cache"
	apperrors "gamescout/internal/errors"
	"gamescout/internal/oauth"
	"gamescout/internal/ratelimit"
)

const (
	defaultBaseURL = "https://api.igdb.com/v4"
	coverBaseURL   = "https://images.igdb.com/igdb/image/upload/t_cover_big/"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Game is a single IGDB search result.
type Game struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	CoverURL string `json:"cover_url"`
}

// Client is an IGDB API client.
type Client struct {
	clientID    string
	tokens      *oauth.TokenSource
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
	useCache    bool
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the IGDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithoutCache disables the SQLite response cache, used by tests.
func WithoutCache() Option {
	return func(client *Client) {
		client.useCache = false
	}
}

// NewClient creates a new IGDB client using the given token source.
func NewClient(clientID string, tokens *oauth.TokenSource, opts ...Option) *Client {
	client := &Client{
		clientID:    clientID,
		tokens:      tokens,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: ratelimit.ForIGDB(),
		useCache:    true,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SearchGames searches IGDB by name, returning up to limit results in API
// ranking order.
func (c *Client) SearchGames(ctx context.Context, query string, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = 5
	}

	fetch := func() ([]Game, error) {
		return c.searchGames(ctx, query, limit)
	}

	if !c.useCache {
		return fetch()
	}

	key := fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(query)), limit)
	games, _, err := cache.GetOrFetchWithTTL("igdb_search_cache", key, fetch,
		cache.SelectNegativeCacheTTL(func(games []Game) bool {
			return len(games) == 0
		}))
	return games, err
}

func (c *Client) searchGames(ctx context.Context, query string, limit int) ([]Game, error) {
	// IGDB uses the Apicalypse query language in the POST body.
	body := fmt.Sprintf("search \"%s\"; fields name,slug,first_release_date,cover.url; limit %d;",
		escapeQuery(query), limit)

	var results []struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Slug  string `json:"slug"`
		Cover *struct {
			URL     string `json:"url"`
			ImageID string `json:"image_id"`
		} `json:"cover"`
	}

	if err := c.post(ctx, "/games", body, &results); err != nil {
		return nil, err
	}

	games := make([]Game, 0, len(results))
	for _, item := range results {
		game := Game{
			ID:   item.ID,
			Name: item.Name,
			Slug: item.Slug,
		}
		if item.Cover != nil {
			switch {
			case item.Cover.URL != "":
				game.CoverURL = item.Cover.URL
			case item.Cover.ImageID != "":
				game.CoverURL = coverBaseURL + item.Cover.ImageID + ".jpg"
			}
		}
		games = append(games, game)
	}

	return games, nil
}

func (c *Client) post(ctx context.Context, path, query string, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBufferString(query))
	if err != nil {
		return fmt.Errorf("igdb: build request: %w", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("igdb: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return apperrors.NewRateLimitError("igdb: too many requests")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.NewUpstreamError("IGDB", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

// escapeQuery escapes a string for use in an Apicalypse query.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
