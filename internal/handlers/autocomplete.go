package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// autocompleteLimit caps the number of suggestions per query.
const autocompleteLimit = 7

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	CoverURL string `json:"cover_url,omitempty"`
}

// Autocomplete serves name suggestions for a partial title.
func (h *Handler) Autocomplete(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return jsonError(c, fiber.StatusBadRequest, "query parameter q is required")
	}

	games, err := h.index.SearchGames(c.Context(), query, autocompleteLimit)
	if err != nil {
		return serviceError(c, err)
	}

	suggestions := make([]Suggestion, 0, len(games))
	for _, game := range games {
		suggestions = append(suggestions, Suggestion{
			Name:     game.Name,
			Slug:     game.Slug,
			CoverURL: game.CoverURL,
		})
	}
	return c.JSON(fiber.Map{"suggestions": suggestions})
}
