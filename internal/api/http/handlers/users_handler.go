package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamado-tracker/internal/api/dto"
	"github.com/spec-kit/chamado-tracker/internal/service"
	util "github.com/spec-kit/chamado-tracker/pkg/util/errorutil"
)

// UsersHandler exposes the user registry endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.users.List(c.Context())})
}

// Register handles POST /users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError(util.CodeValidation, "invalid payload", nil)
	}
	name, err := h.users.Register(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"name": name}})
}
