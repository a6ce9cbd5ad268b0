package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamado-tracker/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Reference *handlers.ReferenceHandler
	Users     *handlers.UsersHandler
	Tickets   *handlers.TicketsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/reference", cfg.Reference.Get)

	app.Get("/users", cfg.Users.List)
	app.Post("/users", cfg.Users.Register)

	tickets := app.Group("/tickets")
	tickets.Get("/backup-warning", cfg.Tickets.BackupWarning)
	tickets.Get("/queue", cfg.Tickets.List)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Put("/:id", cfg.Tickets.Update)
}
