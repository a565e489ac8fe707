// Package server owns the Fiber application: middleware stack, error
// rendering, and route registration.
package server

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"gamescout/internal/handlers"
)

// Server wraps the Fiber app and its listen address.
type Server struct {
	App  *fiber.App
	addr string
}

// New creates a new server with middleware configured.
func New(addr string) *Server {
	app := fiber.New(fiber.Config{
		AppName: "gamescout",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Rate limiting - 60 requests per minute per IP. The upstream quotas are
	// the scarce resource; this just keeps one client from burning them.
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded, try again later",
			})
		},
	}))

	return &Server{App: app, addr: addr}
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(service handlers.RecommendationService, index handlers.AutocompleteIndex) {
	h := handlers.New(service, index)

	s.App.Get("/", h.Index)
	s.App.Get("/health", h.Health)

	s.App.Post("/api/recommendations", h.Recommendations)
	s.App.Post("/api/game-details", h.GameDetails)
	s.App.Get("/api/igdb-autocomplete", h.Autocomplete)
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	return s.App.Listen(s.addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
