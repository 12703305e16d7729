package repositories

import (
	"context"
	"errors"

	"bux/internal/models"
)

var ErrTransferNotFound = errors.New("transfer not found")

// TransferRepository is the transfer ledger consumed by the engine.
// Rows are immutable except for the status column.
type TransferRepository interface {
	Create(ctx context.Context, transfer *models.Transfer) error
	GetByID(ctx context.Context, id uint) (*models.Transfer, error)
	// GetByIDForUpdate takes a row-level lock on the transfer so that
	// concurrent approvals of the same transfer serialize.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Transfer, error)
	// ListByAccount returns every transfer where the account is either
	// side, ordered by transfer id.
	ListByAccount(ctx context.Context, accountID uint) ([]models.Transfer, error)
	// ListIncomingByStatus returns transfers into the account with the
	// given status, ordered by transfer id.
	ListIncomingByStatus(ctx context.Context, accountID uint, status models.TransferStatus) ([]models.Transfer, error)
	UpdateStatus(ctx context.Context, id uint, status models.TransferStatus) error

	// ExecuteInTransaction runs fn against repositories bound to one
	// database transaction; settlement uses it to make the status and
	// both balance updates a single atomic unit.
	ExecuteInTransaction(fn func(transfers TransferRepository, accounts AccountRepository) error) error
}
