package repositories

import (
	"context"
	"errors"
	"fmt"

	"bux/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateAccount
		}
		return fmt.Errorf("%w: create account: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: get account %d: %v", ErrStoreUnavailable, id, err)
	}
	return &account, nil
}

func (r *accountRepository) GetByUserID(ctx context.Context, userID uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: get account for user %d: %v", ErrStoreUnavailable, userID, err)
	}
	return &account, nil
}

func (r *accountRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: lock account %d: %v", ErrStoreUnavailable, id, err)
	}
	return &account, nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, accountID uint, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("account_id = ?", accountID).
		Update("balance", balance)
	if result.Error != nil {
		return fmt.Errorf("%w: update balance for account %d: %v", ErrStoreUnavailable, accountID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
