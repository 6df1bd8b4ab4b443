package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Dashboard *handlers.DashboardHandler
	API       *handlers.APIHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Get("/", cfg.Dashboard.Page)

	fragments := app.Group("/fragments")
	fragments.Get("/tickets", cfg.Dashboard.ListFragment)
	fragments.Get("/tickets/:id", cfg.Dashboard.DetailFragment)

	api := app.Group("/api")
	api.Get("/state", cfg.API.State)
	api.Get("/tickets", cfg.API.ListTickets)
	api.Get("/tickets/:id", cfg.API.GetTicket)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}
