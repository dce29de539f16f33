package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Night40050/support-copilot/internal/api/http/handlers"
	"github.com/Night40050/support-copilot/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Metrics *handlers.MetricsHandler
	// AuthMiddleware guards ticket processing when set.
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cors.New())

	app.Get("/health", cfg.Health.Live)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	process := []fiber.Handler{cfg.Tickets.ProcessTicket}
	if cfg.AuthMiddleware != nil {
		process = append([]fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireScope(auth.ScopeProcessTickets)}, process...)
	}
	app.Post("/process-ticket", process...)
}
