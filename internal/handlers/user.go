package handlers

import (
	"errors"

	"bux/internal/models"
	"bux/internal/repositories"
	"bux/internal/services/user"
	"bux/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /api/register. A new user gets their account
// with the opening balance in the same transaction.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	created, err := h.service.Register(c.Context(), &input)
	if err != nil {
		if errors.Is(err, repositories.ErrStoreUnavailable) {
			return response.Error(c, fiber.StatusServiceUnavailable, "service temporarily unavailable")
		}
		return response.BadRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registration successful",
		"data": fiber.Map{
			"user":    created.Public(),
			"account": created.Account,
		},
	})
}

// ListUsers handles GET /api/users: the directory used to pick a
// transfer counterparty.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		if errors.Is(err, repositories.ErrStoreUnavailable) {
			return response.Error(c, fiber.StatusServiceUnavailable, "service temporarily unavailable")
		}
		return response.ServerError(c, "failed to list users")
	}
	return response.Success(c, "users", users)
}
