package repositories

import (
	"context"
	"errors"
	"fmt"

	"bux/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, transfer *models.Transfer) error {
	if err := r.db.WithContext(ctx).Create(transfer).Error; err != nil {
		return fmt.Errorf("%w: create transfer: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *transferRepository) GetByID(ctx context.Context, id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	if err := r.db.WithContext(ctx).First(&transfer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransferNotFound
		}
		return nil, fmt.Errorf("%w: get transfer %d: %v", ErrStoreUnavailable, id, err)
	}
	return &transfer, nil
}

func (r *transferRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&transfer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransferNotFound
		}
		return nil, fmt.Errorf("%w: lock transfer %d: %v", ErrStoreUnavailable, id, err)
	}
	return &transfer, nil
}

func (r *transferRepository) ListByAccount(ctx context.Context, accountID uint) ([]models.Transfer, error) {
	var transfers []models.Transfer
	err := r.db.WithContext(ctx).
		Where("account_from = ? OR account_to = ?", accountID, accountID).
		Order("transfer_id").
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list transfers for account %d: %v", ErrStoreUnavailable, accountID, err)
	}
	return transfers, nil
}

func (r *transferRepository) ListIncomingByStatus(ctx context.Context, accountID uint, status models.TransferStatus) ([]models.Transfer, error) {
	var transfers []models.Transfer
	err := r.db.WithContext(ctx).
		Where("account_to = ? AND transfer_status_id = ?", accountID, status).
		Order("transfer_id").
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list incoming transfers for account %d: %v", ErrStoreUnavailable, accountID, err)
	}
	return transfers, nil
}

func (r *transferRepository) UpdateStatus(ctx context.Context, id uint, status models.TransferStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Transfer{}).
		Where("transfer_id = ?", id).
		Update("transfer_status_id", status)
	if result.Error != nil {
		return fmt.Errorf("%w: update status for transfer %d: %v", ErrStoreUnavailable, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransferNotFound
	}
	return nil
}

func (r *transferRepository) ExecuteInTransaction(fn func(TransferRepository, AccountRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&transferRepository{db: tx}, &accountRepository{db: tx})
	})
}
