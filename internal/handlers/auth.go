package handlers

import (
	"bux/internal/models"
	"bux/internal/services/auth"
	"bux/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "username and password are required")
	}

	user, accessToken, refreshToken, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	return response.Success(c, "login successful", fiber.Map{
		"user":          user.Public(),
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// RefreshToken handles POST /api/refresh.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return response.BadRequest(c, "refresh token is required")
	}

	accessToken, refreshToken, err := h.service.RefreshTokens(c.Context(), req.RefreshToken)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	return response.Success(c, "tokens refreshed", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout handles POST /api/logout. Bumping the token version
// invalidates every outstanding token for the user.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return response.Unauthorized(c)
	}

	if err := h.service.Logout(c.Context(), claims.UserID); err != nil {
		return response.ServerError(c, "failed to log out")
	}
	return response.Success(c, "logged out", nil)
}
