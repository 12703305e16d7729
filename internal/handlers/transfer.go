package handlers

import (
	"errors"
	"strconv"

	"bux/internal/models"
	"bux/internal/repositories"
	"bux/internal/services/transfer"
	"bux/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// TransferHandler exposes the transfer engine over HTTP. Pure
// adaptation; every business rule lives in the service.
type TransferHandler struct {
	service transfer.Service
}

func NewTransferHandler(service transfer.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

// transferStatusCode maps engine failures onto HTTP statuses. Store
// failures are 503 so callers know a retry may help; validation
// failures are terminal 4xx.
func transferStatusCode(err error) int {
	switch {
	case errors.Is(err, repositories.ErrTransferNotFound),
		errors.Is(err, repositories.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, transfer.ErrNotPending):
		return fiber.StatusConflict
	case errors.Is(err, transfer.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, transfer.ErrInvalidAmount),
		errors.Is(err, transfer.ErrInvalidParties),
		errors.Is(err, transfer.ErrSelfTransfer),
		errors.Is(err, transfer.ErrInvalidType):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// Send handles POST /api/transfers/send. The authenticated user is
// the payer.
func (h *TransferHandler) Send(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		ToUserID uint            `json:"to_user_id"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	t, err := h.service.CreateTransfer(c.Context(), claims.UserID, req.ToUserID, req.Amount, models.TransferTypeSend)
	if err != nil {
		return response.Error(c, transferStatusCode(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "transfer created",
		"data":    t,
	})
}

// Request handles POST /api/transfers/request. The authenticated user
// is the payee; the named user pays once they approve.
func (h *TransferHandler) Request(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		FromUserID uint            `json:"from_user_id"`
		Amount     decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	t, err := h.service.CreateTransfer(c.Context(), req.FromUserID, claims.UserID, req.Amount, models.TransferTypeRequest)
	if err != nil {
		return response.Error(c, transferStatusCode(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "transfer requested",
		"data":    t,
	})
}

// History handles GET /api/transfers: both directions for the caller.
func (h *TransferHandler) History(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	transfers, err := h.service.ListByUser(c.Context(), claims.UserID)
	if err != nil {
		return response.Error(c, transferStatusCode(err), err.Error())
	}
	return response.Success(c, "transfer history", transfers)
}

// PendingIncoming handles GET /api/transfers/pending: requests
// awaiting the caller's approval.
func (h *TransferHandler) PendingIncoming(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	transfers, err := h.service.ListPendingIncoming(c.Context(), claims.UserID)
	if err != nil {
		return response.Error(c, transferStatusCode(err), err.Error())
	}
	return response.Success(c, "pending transfers", transfers)
}

// Get handles GET /api/transfers/:id.
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	id, err := transferID(c)
	if err != nil {
		return response.BadRequest(c, "invalid transfer id")
	}

	t, err := h.service.GetTransfer(c.Context(), id)
	if err != nil {
		return response.Error(c, transferStatusCode(err), err.Error())
	}
	return response.Success(c, "transfer", t)
}

// Approve handles PUT /api/transfers/:id/approve.
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	id, err := transferID(c)
	if err != nil {
		return response.BadRequest(c, "invalid transfer id")
	}

	if err := h.service.ApproveTransfer(c.Context(), id); err != nil {
		return response.Error(c, transferStatusCode(err), err.Error())
	}
	return response.Success(c, "transfer approved", nil)
}

// Reject handles POST /api/transfers/:id/reject.
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	id, err := transferID(c)
	if err != nil {
		return response.BadRequest(c, "invalid transfer id")
	}

	if err := h.service.RejectTransfer(c.Context(), id); err != nil {
		return response.Error(c, transferStatusCode(err), err.Error())
	}
	return response.Success(c, "transfer rejected", nil)
}

func transferID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid transfer id")
	}
	return uint(id), nil
}
