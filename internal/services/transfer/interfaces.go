package transfer

import (
	"context"

	"bux/internal/models"

	"github.com/shopspring/decimal"
)

// Service owns every business rule around moving money between two
// accounts. It is the only component that mutates balances or transfer
// status.
type Service interface {
	// CreateTransfer inserts a PENDING transfer between the two users'
	// accounts. No balance moves at creation time for either type;
	// settlement happens on approval.
	CreateTransfer(ctx context.Context, fromUserID, toUserID uint, amount decimal.Decimal, transferType models.TransferType) (*models.Transfer, error)

	// ApproveTransfer settles a pending transfer: marks it APPROVED,
	// debits the source account and credits the destination as one
	// atomic unit.
	ApproveTransfer(ctx context.Context, transferID uint) error

	// RejectTransfer marks a pending transfer REJECTED. Balances are
	// never touched.
	RejectTransfer(ctx context.Context, transferID uint) error

	GetTransfer(ctx context.Context, transferID uint) (*models.Transfer, error)

	// ListByUser returns the user's transfer history, both directions.
	ListByUser(ctx context.Context, userID uint) ([]models.Transfer, error)

	// ListPendingIncoming returns pending transfers whose destination
	// is the user's account, i.e. requests awaiting this payer.
	ListPendingIncoming(ctx context.Context, userID uint) ([]models.Transfer, error)
}

// BalanceCacheInvalidator drops cached balances after settlement.
// Optional collaborator; a nil invalidator disables invalidation.
type BalanceCacheInvalidator interface {
	InvalidateBalance(ctx context.Context, userID uint) error
}
