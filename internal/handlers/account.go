package handlers

import (
	"errors"

	"bux/internal/models"
	"bux/internal/repositories"
	"bux/internal/services/account"
	"bux/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// extractUserClaims is a helper to pull authenticated claims from locals.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// GetBalance handles GET /api/balance for the authenticated user.
func (h *AccountHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	balance, err := h.service.GetBalance(c.Context(), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			return response.NotFound(c, "account not found")
		case errors.Is(err, repositories.ErrStoreUnavailable):
			return response.Error(c, fiber.StatusServiceUnavailable, "service temporarily unavailable")
		}
		return response.ServerError(c, "failed to get balance")
	}

	return response.Success(c, "balance", fiber.Map{
		"balance": balance,
	})
}
