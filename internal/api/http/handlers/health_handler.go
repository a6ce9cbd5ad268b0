package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamado-tracker/internal/store"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	tickets     *store.TicketStore
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, tickets *store.TicketStore) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, tickets: tickets}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness. The stores are local files loaded at
// start, so readiness is the live store being reachable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "ready",
		"live_tickets": h.tickets.Len(),
	})
}
