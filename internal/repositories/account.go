package repositories

import (
	"context"
	"errors"

	"bux/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists")
)

// AccountRepository is the account directory consumed by the transfer
// engine: lookup by user or account id, and atomic balance update.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Account, error)
	// GetByIDForUpdate takes a row-level lock; only meaningful inside
	// ExecuteInTransaction on the transfer repository.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Account, error)
	UpdateBalance(ctx context.Context, accountID uint, balance decimal.Decimal) error
}
