package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/tickets", cfg.Tickets.CreateTicket)
	app.Get("/tickets", cfg.Tickets.ListTickets)
	app.Post("/tickets/search", cfg.Tickets.Search)
	app.Get("/tickets/:no", cfg.Tickets.GetTicket)
	app.Post("/tickets/:no/close", cfg.Tickets.CloseTicket)

	app.Post("/process", cfg.Tickets.Process)
	app.Get("/resolutions", cfg.Tickets.ListResolutions)
}
