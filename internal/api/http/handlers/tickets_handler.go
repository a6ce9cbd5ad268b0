package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamado-tracker/internal/api/dto"
	"github.com/spec-kit/chamado-tracker/internal/service"
	util "github.com/spec-kit/chamado-tracker/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /tickets. Also serves the queue view, which returns the same
// unfiltered list.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets := h.service.ListTickets(c.Context())
	return c.JSON(fiber.Map{"data": tickets})
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError(util.CodeValidation, "invalid payload", nil)
	}
	input := service.TicketCreateInput{
		Sector:             req.Sector,
		User:               req.User,
		Equipment:          req.Equipment,
		ProblemDescription: req.ProblemDescription,
		Responsible:        req.Responsible,
	}
	ticket, err := h.service.CreateTicket(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// Update PUT /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return util.NewValidationError(util.CodeValidation, "invalid ticket id", nil)
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError(util.CodeValidation, "invalid payload", nil)
	}
	input := service.TicketUpdateInput{
		Sector:             req.Sector,
		User:               req.User,
		Equipment:          req.Equipment,
		ProblemDescription: req.ProblemDescription,
		Responsible:        req.Responsible,
		Status:             req.Status,
		ResolutionComment:  req.ResolutionComment,
	}
	ticket, err := h.service.UpdateTicket(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// BackupWarning GET /tickets/backup-warning.
func (h *TicketsHandler) BackupWarning(c *fiber.Ctx) error {
	warning := h.service.GetBackupWarning(time.Now())
	return c.JSON(warning)
}
