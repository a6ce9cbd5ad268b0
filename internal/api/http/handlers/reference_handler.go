package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamado-tracker/internal/api/dto"
	"github.com/spec-kit/chamado-tracker/internal/service"
	"github.com/spec-kit/chamado-tracker/internal/store"
)

// ReferenceHandler serves the reference snapshot for form display.
type ReferenceHandler struct {
	reference *store.ReferenceStore
	users     *service.UserService
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(reference *store.ReferenceStore, users *service.UserService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference, users: users}
}

// Get handles GET /reference.
func (h *ReferenceHandler) Get(c *fiber.Ctx) error {
	snapshot := h.reference.Snapshot()
	return c.JSON(fiber.Map{"data": dto.ReferenceResponse{
		SectorResponsible: snapshot.SectorResponsible,
		Equipment:         snapshot.Equipment,
		Responsibles:      snapshot.Responsibles,
		Users:             h.users.List(c.Context()),
	}})
}
