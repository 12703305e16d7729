package account

import (
	"context"
	"testing"

	"bux/internal/models"
	"bux/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountRepo struct {
	accounts map[uint]*models.Account
	nextID   uint
}

func (r *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	r.nextID++
	account.ID = r.nextID
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id uint) (*models.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) GetByUserID(_ context.Context, userID uint) (*models.Account, error) {
	for _, account := range r.accounts {
		if account.UserID == userID {
			return account, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) UpdateBalance(_ context.Context, accountID uint, balance decimal.Decimal) error {
	account, ok := r.accounts[accountID]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.Balance = balance
	return nil
}

func TestGetBalance(t *testing.T) {
	repo := &fakeAccountRepo{accounts: map[uint]*models.Account{
		1: {ID: 1, UserID: 42, Balance: decimal.RequireFromString("987.65")},
	}}
	svc := NewService(repo, nil)

	balance, err := svc.GetBalance(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("987.65")))

	_, err = svc.GetBalance(context.Background(), 7)
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
}

func TestCreateAccount(t *testing.T) {
	repo := &fakeAccountRepo{accounts: map[uint]*models.Account{}}
	svc := NewService(repo, nil)

	account, err := svc.CreateAccount(context.Background(), 42, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, uint(42), account.UserID)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1000)))

	_, err = svc.CreateAccount(context.Background(), 43, decimal.NewFromInt(-1))
	assert.Error(t, err)
}
