// Package handlers contains the JSON API handlers.
package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	apperrors "gamescout/internal/errors"
	"gamescout/internal/igdb"
	"gamescout/internal/recommend"
)

// RecommendationService is the pipeline surface the handlers call into.
type RecommendationService interface {
	Recommend(ctx context.Context, preference string, filters map[string]string, sortBy string) (*recommend.Response, error)
	GameDetails(ctx context.Context, title string) (*recommend.GameDetails, error)
}

// AutocompleteIndex supplies name suggestions for the autocomplete endpoint.
type AutocompleteIndex interface {
	SearchGames(ctx context.Context, query string, limit int) ([]igdb.Game, error)
}

// Handler bundles the API handlers and their dependencies.
type Handler struct {
	service RecommendationService
	index   AutocompleteIndex
}

// New creates the handler bundle.
func New(service RecommendationService, index AutocompleteIndex) *Handler {
	return &Handler{service: service, index: index}
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps pipeline errors onto HTTP status codes. Unclassified
// errors bubble up to the app-level error handler as a 500.
func serviceError(c fiber.Ctx, err error) error {
	switch {
	case apperrors.IsNotFoundError(err):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case apperrors.IsNotConfiguredError(err):
		return jsonError(c, fiber.StatusServiceUnavailable, err.Error())
	case apperrors.IsRateLimitError(err):
		return jsonError(c, fiber.StatusTooManyRequests, err.Error())
	case apperrors.IsUpstreamError(err):
		// The upstream detail is logged server-side; clients get a
		// retry-later message without the provider's error text.
		slog.Warn("Upstream failure", "error", err)
		return jsonError(c, fiber.StatusBadGateway, "upstream service unavailable, please try again later")
	default:
		return err
	}
}
