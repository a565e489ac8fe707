package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// RecommendationRequest is the body of POST /api/recommendations.
type RecommendationRequest struct {
	Preference string            `json:"preference"`
	Filters    map[string]string `json:"filters"`
	SortBy     string            `json:"sort_by"`
}

// Recommendations runs the recommendation pipeline for a preference.
func (h *Handler) Recommendations(c fiber.Ctx) error {
	var req RecommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Preference) == "" {
		return jsonError(c, fiber.StatusBadRequest, "preference is required")
	}

	resp, err := h.service.Recommend(c.Context(), req.Preference, req.Filters, req.SortBy)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}
