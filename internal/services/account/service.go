package account

import (
	"context"
	"fmt"
	"log"

	"bux/internal/models"
	"bux/internal/repositories"
	"bux/internal/repositories/cache"

	"github.com/shopspring/decimal"
)

// Service is the account directory surface: balance lookups and
// account creation. Balances are only ever changed by the transfer
// engine's settlement step, so this service caches reads aggressively.
type Service interface {
	GetAccount(ctx context.Context, userID uint) (*models.Account, error)
	GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
	CreateAccount(ctx context.Context, userID uint, openingBalance decimal.Decimal) (*models.Account, error)
}

type service struct {
	repo  repositories.AccountRepository
	cache *cache.CacheService
}

// NewService creates a new account service
func NewService(repo repositories.AccountRepository, cacheSvc *cache.CacheService) Service {
	if repo == nil {
		panic("account repository is required")
	}
	return &service{
		repo:  repo,
		cache: cacheSvc,
	}
}

func (s *service) GetAccount(ctx context.Context, userID uint) (*models.Account, error) {
	account, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	if s.cache != nil {
		if balance, err := s.cache.GetBalance(ctx, userID); err == nil {
			return balance, nil
		}
	}

	account, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	if s.cache != nil {
		if err := s.cache.CacheBalance(ctx, userID, account.Balance); err != nil {
			log.Printf("failed to cache balance for user %d: %v", userID, err)
		}
	}
	return account.Balance, nil
}

func (s *service) CreateAccount(ctx context.Context, userID uint, openingBalance decimal.Decimal) (*models.Account, error) {
	if openingBalance.IsNegative() {
		return nil, fmt.Errorf("opening balance cannot be negative")
	}

	account := &models.Account{
		UserID:  userID,
		Balance: openingBalance,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
