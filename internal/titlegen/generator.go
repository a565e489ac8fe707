// Package titlegen turns a free-text game preference into an ordered list of
// candidate titles using an OpenAI-compatible chat completions endpoint.
// Insertion order encodes "most-recommended first" and is preserved.
package titlegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "gamescout/internal/errors"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
	maxTokens      = 1000
	temperature    = 0.3
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Generator produces candidate title lists from preferences.
type Generator struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient HTTPDoer
	classify   Classifier
}

// Option is a functional option for configuring the Generator.
type Option func(*Generator)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(g *Generator) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the completions endpoint.
func WithBaseURL(base string) Option {
	return func(g *Generator) {
		if base != "" {
			g.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithClassifier sets the specific-title/general-preference predicate.
func WithClassifier(c Classifier) Option {
	return func(g *Generator) {
		if c != nil {
			g.classify = c
		}
	}
}

// NewGenerator creates a Generator with the given API key.
func NewGenerator(apiKey string, opts ...Option) *Generator {
	g := &Generator{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		classify:   IsLikelyGameTitle,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns up to MaxTitles cleaned candidate titles for the given
// preference and filters. A missing API key fails with a NotConfiguredError
// before any call is made; an upstream failure fails with an UpstreamError.
func (g *Generator) Generate(ctx context.Context, preference string, filters map[string]string) ([]string, error) {
	if g.apiKey == "" {
		return nil, apperrors.NewNotConfiguredError("OpenAI", "OPENAI_API_KEY")
	}

	var userPrompt string
	if g.classify(preference) {
		userPrompt = specificTitlePrompt(preference)
	} else {
		userPrompt = generalPreferencePrompt(preference, FilterClause(filters))
	}

	content, err := g.complete(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	titles := ParseTitles(content)
	slog.Debug("Generated candidate titles", "preference", preference, "count", len(titles))
	return titles, nil
}

func (g *Generator) complete(ctx context.Context, userPrompt string) (string, error) {
	payload := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("openai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError("OpenAI", 0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", apperrors.NewUpstreamError("OpenAI", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", apperrors.NewUpstreamError("OpenAI", resp.StatusCode, "empty choices in response")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
