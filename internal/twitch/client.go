// Package twitch provides a client for the Twitch Helix API, used for live
// viewer counts as the popularity signal on enriched games.
package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gamescout/internal/cache"
	apperrors "gamescout/internal/errors"
	"gamescout/internal/oauth"
	"gamescout/internal/ratelimit"
)

const (
	defaultBaseURL = "https://api.twitch.tv/helix"
	// streamsPageSize is the maximum page size Helix allows on /streams.
	streamsPageSize = 100
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Twitch Helix API client.
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

// WithBaseURL sets a custom base URL for the Helix API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithoutCache disables the SQLite game-id cache, used by tests.
func WithoutCache() Option {
	return func(client *Client) {
		client.useCache = false
	}
}

// NewClient creates a new Helix client using the given token source.
func NewClient(clientID string, tokens *oauth.TokenSource, opts ...Option) *Client {
	client := &Client{
		clientID:    clientID,
		tokens:      tokens,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: ratelimit.ForTwitch(),
		useCache:    true,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// cachedGameID is the cache record for a game-name → id mapping. NotFound is
// cached too so that games absent from Twitch don't trigger a lookup on every
// batch.
type cachedGameID struct {
	ID       string `json:"id"`
	NotFound bool   `json:"not_found"`
}

// GameID resolves a game name to its Twitch game id. The boolean reports
// whether the game exists on Twitch at all.
func (c *Client) GameID(ctx context.Context, gameName string) (string, bool, error) {
	fetch := func() (cachedGameID, error) {
		return c.lookupGameID(ctx, gameName)
	}

	var result cachedGameID
	var err error
	if c.useCache {
		key := strings.ToLower(strings.TrimSpace(gameName))
		result, _, err = cache.GetOrFetchWithTTL("twitch_game_cache", key, fetch,
			cache.SelectNegativeCacheTTL(func(r cachedGameID) bool { return r.NotFound }))
	} else {
		result, err = fetch()
	}
	if err != nil {
		return "", false, err
	}
	return result.ID, !result.NotFound, nil
}

func (c *Client) lookupGameID(ctx context.Context, gameName string) (cachedGameID, error) {
	params := url.Values{}
	params.Set("name", gameName)

	var response struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, "/games", params, &response); err != nil {
		return cachedGameID{}, err
	}
	if len(response.Data) == 0 {
		return cachedGameID{NotFound: true}, nil
	}
	return cachedGameID{ID: response.Data[0].ID}, nil
}

// ViewerCount returns the current live viewer count for a game, summed over
// its active streams. A game absent from Twitch yields 0, never an error.
// Viewer counts are live data and are never cached.
func (c *Client) ViewerCount(ctx context.Context, gameName string) (int, error) {
	gameID, found, err := c.GameID(ctx, gameName)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	params := url.Values{}
	params.Set("game_id", gameID)
	params.Set("first", fmt.Sprintf("%d", streamsPageSize))

	var response struct {
		Data []struct {
			ViewerCount int `json:"viewer_count"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, "/streams", params, &response); err != nil {
		return 0, err
	}

	total := 0
	for _, stream := range response.Data {
		total += stream.ViewerCount
	}
	return total, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("twitch: build request: %w", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twitch: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return apperrors.NewRateLimitError("twitch: too many requests")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.NewUpstreamError("Twitch", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
