package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// GameDetailsRequest is the body of POST /api/game-details.
type GameDetailsRequest struct {
	Title string `json:"title"`
}

// GameDetails serves the extended record for a single game.
func (h *Handler) GameDetails(c fiber.Ctx) error {
	var req GameDetailsRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return jsonError(c, fiber.StatusBadRequest, "title is required")
	}

	details, err := h.service.GameDetails(c.Context(), req.Title)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(details)
}
