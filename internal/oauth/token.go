// Package oauth caches client-credentials bearer tokens for the Twitch and
// IGDB APIs. Both services use the same Twitch token endpoint; each gets its
// own TokenSource instance sharing this implementation.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"gamescout/internal/errors"
)

// TwitchTokenURL is the shared Twitch/IGDB credential exchange endpoint.
const TwitchTokenURL = "https://id.twitch.tv/oauth2/token"

// safetyMargin is subtracted from the advertised TTL so a token is never
// used adversarially close to its real expiry.
const safetyMargin = 60 * time.Second

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource lazily fetches and caches a bearer token for one service.
// It is shared process-wide across all callers; concurrent refreshes are
// serialized and the latest successful refresh wins.
type TokenSource struct {
	service      string
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   HTTPDoer
	clock        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// Option is a functional option for configuring the TokenSource.
type Option func(*TokenSource)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(ts *TokenSource) {
		if c != nil {
			ts.httpClient = c
		}
	}
}

// WithTokenURL sets a custom token endpoint.
func WithTokenURL(u string) Option {
	return func(ts *TokenSource) {
		if u != "" {
			ts.tokenURL = u
		}
	}
}

// WithClock sets a custom time source, used by tests.
func WithClock(clock func() time.Time) Option {
	return func(ts *TokenSource) {
		if clock != nil {
			ts.clock = clock
		}
	}
}

// NewTokenSource creates a token source for the named service.
func NewTokenSource(service, clientID, clientSecret string, opts ...Option) *TokenSource {
	ts := &TokenSource{
		service:      service,
		tokenURL:     TwitchTokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// Token returns a valid bearer token, refreshing it when the cached one is
// at or past expiry minus the safety margin. A failed exchange is fatal for
// the calling chain.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.clock().Before(ts.expiresAt) {
		return ts.token, nil
	}
	return ts.refresh(ctx)
}

func (ts *TokenSource) refresh(ctx context.Context) (string, error) {
	if ts.clientID == "" || ts.clientSecret == "" {
		return "", errors.NewNotConfiguredError(ts.service, "client credentials")
	}

	form := url.Values{}
	form.Set("client_id", ts.clientID)
	form.Set("client_secret", ts.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%s token request: %w", ts.service, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", errors.NewUpstreamError(ts.service, 0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errors.NewUpstreamError(ts.service, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%s token decode: %w", ts.service, err)
	}

	ts.token = result.AccessToken
	ts.expiresAt = ts.clock().Add(time.Duration(result.ExpiresIn)*time.Second - safetyMargin)

	return ts.token, nil
}
