package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"gamescout/internal/config"
)

// Index serves the service banner.
func (h *Handler) Index(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "gamescout",
		"endpoints": []string{
			"POST /api/recommendations",
			"POST /api/game-details",
			"GET /api/igdb-autocomplete?q=",
			"GET /health",
		},
	})
}

// Health reports readiness. Missing upstream credentials degrade the status
// but the endpoint itself always answers 200 so orchestration can tell
// "misconfigured" from "down".
func (h *Handler) Health(c fiber.Ctx) error {
	missing := config.MissingKeys()
	status := "ok"
	if len(missing) > 0 {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status":       status,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"missing_keys": missing,
	})
}
