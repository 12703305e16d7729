package transfer

import (
	"context"

	"bux/internal/models"
	"bux/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// service implements the transfer Service interface.
type service struct {
	transfers repositories.TransferRepository
	accounts  repositories.AccountRepository
	cache     BalanceCacheInvalidator
}

// NewService creates a new transfer service instance.
func NewService(transfers repositories.TransferRepository, accounts repositories.AccountRepository, cache BalanceCacheInvalidator) Service {
	if transfers == nil {
		panic("transfer repository is required")
	}
	if accounts == nil {
		panic("account repository is required")
	}
	return &service{
		transfers: transfers,
		accounts:  accounts,
		cache:     cache,
	}
}

func (s *service) CreateTransfer(ctx context.Context, fromUserID, toUserID uint, amount decimal.Decimal, transferType models.TransferType) (*models.Transfer, error) {
	if !transferType.Valid() {
		return nil, ErrInvalidType
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	from, err := s.accounts.GetByUserID(ctx, fromUserID)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return nil, ErrInvalidParties
		}
		return nil, err
	}
	to, err := s.accounts.GetByUserID(ctx, toUserID)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return nil, ErrInvalidParties
		}
		return nil, err
	}
	if from.ID == to.ID {
		return nil, ErrInvalidParties
	}

	t := &models.Transfer{
		Type:        transferType,
		Status:      models.TransferStatusPending,
		AccountFrom: from.ID,
		AccountTo:   to.ID,
		Amount:      amount,
		Reference:   uuid.NewString(),
	}
	if err := s.transfers.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ApproveTransfer runs the settlement inside one database transaction
// with row locks on the transfer and both accounts, so concurrent
// approvals of the same transfer serialize and exactly one wins.
func (s *service) ApproveTransfer(ctx context.Context, transferID uint) error {
	var fromUserID, toUserID uint

	err := s.transfers.ExecuteInTransaction(func(transfers repositories.TransferRepository, accounts repositories.AccountRepository) error {
		t, err := transfers.GetByIDForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if t.Status != models.TransferStatusPending {
			return ErrNotPending
		}

		from, err := accounts.GetByIDForUpdate(ctx, t.AccountFrom)
		if err != nil {
			return err
		}
		if from.Balance.LessThan(t.Amount) {
			return ErrInsufficientFunds
		}
		if t.AccountFrom == t.AccountTo {
			return ErrSelfTransfer
		}
		to, err := accounts.GetByIDForUpdate(ctx, t.AccountTo)
		if err != nil {
			return err
		}

		if err := transfers.UpdateStatus(ctx, t.ID, models.TransferStatusApproved); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, to.ID, to.Balance.Add(t.Amount)); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, from.ID, from.Balance.Sub(t.Amount)); err != nil {
			return err
		}

		fromUserID, toUserID = from.UserID, to.UserID
		return nil
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateBalance(ctx, fromUserID)
		_ = s.cache.InvalidateBalance(ctx, toUserID)
	}
	return nil
}

func (s *service) RejectTransfer(ctx context.Context, transferID uint) error {
	return s.transfers.ExecuteInTransaction(func(transfers repositories.TransferRepository, _ repositories.AccountRepository) error {
		t, err := transfers.GetByIDForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if t.Status != models.TransferStatusPending {
			return ErrNotPending
		}
		return transfers.UpdateStatus(ctx, t.ID, models.TransferStatusRejected)
	})
}

func (s *service) GetTransfer(ctx context.Context, transferID uint) (*models.Transfer, error) {
	return s.transfers.GetByID(ctx, transferID)
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]models.Transfer, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.transfers.ListByAccount(ctx, account.ID)
}

func (s *service) ListPendingIncoming(ctx context.Context, userID uint) ([]models.Transfer, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.transfers.ListIncomingByStatus(ctx, account.ID, models.TransferStatusPending)
}
