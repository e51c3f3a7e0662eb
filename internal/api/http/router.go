package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freshdesk-proxy/internal/api/http/handlers"
	"github.com/spec-kit/freshdesk-proxy/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Token          *handlers.TokenHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/token", cfg.Token.Issue)

	proxy := app.Group("/v2/arta/proxy", cfg.AuthMiddleware.Handle)
	proxy.Post("/tickets", cfg.Tickets.CreateTicket)
	proxy.Get("/tickets/filter", cfg.Tickets.FilterByStatus)
	proxy.Get("/tickets/search-by-contact", cfg.Tickets.SearchByContact)
	proxy.Post("/tickets/:id/add-note", cfg.Tickets.AddNote)
	proxy.Delete("/tickets/delete-all", cfg.Tickets.DeleteAll)
}
