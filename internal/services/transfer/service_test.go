package transfer

import (
	"context"
	"sync"
	"testing"

	"bux/internal/models"
	"bux/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore backs the in-memory repository fakes. The engine only
// talks to the repository interfaces, so the whole state machine can
// be exercised without a database.
type fakeStore struct {
	mu        sync.Mutex
	accounts  map[uint]*models.Account
	transfers map[uint]*models.Transfer
	nextID    uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:  make(map[uint]*models.Account),
		transfers: make(map[uint]*models.Transfer),
	}
}

func (s *fakeStore) addAccount(id, userID uint, balance string) {
	s.accounts[id] = &models.Account{
		ID:      id,
		UserID:  userID,
		Balance: decimal.RequireFromString(balance),
	}
}

type fakeAccountRepo struct{ store *fakeStore }

func (r *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	account.ID = uint(len(r.store.accounts) + 1)
	r.store.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id uint) (*models.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	account, ok := r.store.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) GetByUserID(_ context.Context, userID uint) (*models.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, account := range r.store.accounts {
		if account.UserID == userID {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) UpdateBalance(_ context.Context, accountID uint, balance decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	account, ok := r.store.accounts[accountID]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.Balance = balance
	return nil
}

type fakeTransferRepo struct{ store *fakeStore }

func (r *fakeTransferRepo) Create(_ context.Context, transfer *models.Transfer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextID++
	transfer.ID = r.store.nextID
	copied := *transfer
	r.store.transfers[transfer.ID] = &copied
	return nil
}

func (r *fakeTransferRepo) GetByID(_ context.Context, id uint) (*models.Transfer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	transfer, ok := r.store.transfers[id]
	if !ok {
		return nil, repositories.ErrTransferNotFound
	}
	copied := *transfer
	return &copied, nil
}

func (r *fakeTransferRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTransferRepo) ListByAccount(_ context.Context, accountID uint) ([]models.Transfer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Transfer
	for id := uint(1); id <= r.store.nextID; id++ {
		t, ok := r.store.transfers[id]
		if !ok {
			continue
		}
		if t.AccountFrom == accountID || t.AccountTo == accountID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTransferRepo) ListIncomingByStatus(_ context.Context, accountID uint, status models.TransferStatus) ([]models.Transfer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Transfer
	for id := uint(1); id <= r.store.nextID; id++ {
		t, ok := r.store.transfers[id]
		if !ok {
			continue
		}
		if t.AccountTo == accountID && t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTransferRepo) UpdateStatus(_ context.Context, id uint, status models.TransferStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	transfer, ok := r.store.transfers[id]
	if !ok {
		return repositories.ErrTransferNotFound
	}
	transfer.Status = status
	return nil
}

func (r *fakeTransferRepo) ExecuteInTransaction(fn func(repositories.TransferRepository, repositories.AccountRepository) error) error {
	return fn(r, &fakeAccountRepo{store: r.store})
}

type fakeInvalidator struct {
	mu      sync.Mutex
	userIDs []uint
}

func (f *fakeInvalidator) InvalidateBalance(_ context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userIDs = append(f.userIDs, userID)
	return nil
}

func newTestService(store *fakeStore, cache BalanceCacheInvalidator) Service {
	return NewService(&fakeTransferRepo{store: store}, &fakeAccountRepo{store: store}, cache)
}

func balance(t *testing.T, store *fakeStore, accountID uint) decimal.Decimal {
	t.Helper()
	account, ok := store.accounts[accountID]
	require.True(t, ok, "account %d must exist", accountID)
	return account.Balance
}

func TestCreateTransfer(t *testing.T) {
	amount := decimal.RequireFromString("30.00")

	tests := []struct {
		name       string
		fromUserID uint
		toUserID   uint
		amount     decimal.Decimal
		txType     models.TransferType
		wantErr    error
	}{
		{
			name:       "send between existing accounts",
			fromUserID: 1,
			toUserID:   2,
			amount:     amount,
			txType:     models.TransferTypeSend,
		},
		{
			name:       "request between existing accounts",
			fromUserID: 2,
			toUserID:   1,
			amount:     amount,
			txType:     models.TransferTypeRequest,
		},
		{
			name:       "self transfer rejected",
			fromUserID: 1,
			toUserID:   1,
			amount:     amount,
			txType:     models.TransferTypeSend,
			wantErr:    ErrInvalidParties,
		},
		{
			name:       "unknown source user",
			fromUserID: 99,
			toUserID:   2,
			amount:     amount,
			txType:     models.TransferTypeSend,
			wantErr:    ErrInvalidParties,
		},
		{
			name:       "unknown destination user",
			fromUserID: 1,
			toUserID:   99,
			amount:     amount,
			txType:     models.TransferTypeRequest,
			wantErr:    ErrInvalidParties,
		},
		{
			name:       "zero amount",
			fromUserID: 1,
			toUserID:   2,
			amount:     decimal.Zero,
			txType:     models.TransferTypeSend,
			wantErr:    ErrInvalidAmount,
		},
		{
			name:       "negative amount",
			fromUserID: 1,
			toUserID:   2,
			amount:     decimal.RequireFromString("-5.00"),
			txType:     models.TransferTypeSend,
			wantErr:    ErrInvalidAmount,
		},
		{
			name:       "unknown type",
			fromUserID: 1,
			toUserID:   2,
			amount:     amount,
			txType:     models.TransferType(9),
			wantErr:    ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.addAccount(10, 1, "100.00")
			store.addAccount(20, 2, "50.00")
			svc := newTestService(store, nil)

			created, err := svc.CreateTransfer(context.Background(), tt.fromUserID, tt.toUserID, tt.amount, tt.txType)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, created)
				assert.Empty(t, store.transfers, "no record may be created on failure")
				return
			}

			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Equal(t, models.TransferStatusPending, created.Status)
			assert.Equal(t, tt.txType, created.Type)
			assert.NotEmpty(t, created.Reference)
			assert.True(t, created.Amount.Equal(tt.amount))

			// Creation never moves money, for either type.
			assert.True(t, balance(t, store, 10).Equal(decimal.RequireFromString("100.00")))
			assert.True(t, balance(t, store, 20).Equal(decimal.RequireFromString("50.00")))
		})
	}
}

func TestApproveTransfer_SettlesOnce(t *testing.T) {
	store := newFakeStore()
	store.addAccount(10, 1, "100.00")
	store.addAccount(20, 2, "50.00")
	cache := &fakeInvalidator{}
	svc := newTestService(store, cache)
	ctx := context.Background()

	created, err := svc.CreateTransfer(ctx, 1, 2, decimal.RequireFromString("30.00"), models.TransferTypeSend)
	require.NoError(t, err)

	// Pending transfer leaves balances untouched.
	assert.True(t, balance(t, store, 10).Equal(decimal.RequireFromString("100.00")))
	assert.True(t, balance(t, store, 20).Equal(decimal.RequireFromString("50.00")))

	require.NoError(t, svc.ApproveTransfer(ctx, created.ID))

	got, err := svc.GetTransfer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusApproved, got.Status)
	assert.True(t, balance(t, store, 10).Equal(decimal.RequireFromString("70.00")))
	assert.True(t, balance(t, store, 20).Equal(decimal.RequireFromString("80.00")))
	assert.ElementsMatch(t, []uint{1, 2}, cache.userIDs, "both parties' cached balances are dropped")

	// A second approval must fail and leave balances alone.
	err = svc.ApproveTransfer(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotPending)
	assert.True(t, balance(t, store, 10).Equal(decimal.RequireFromString("70.00")))
	assert.True(t, balance(t, store, 20).Equal(decimal.RequireFromString("80.00")))
}

func TestApproveTransfer_ConservesMoney(t *testing.T) {
	store := newFakeStore()
	store.addAccount(10, 1, "421.37")
	store.addAccount(20, 2, "78.63")
	svc := newTestService(store, nil)
	ctx := context.Background()

	before := balance(t, store, 10).Add(balance(t, store, 20))

	created, err := svc.CreateTransfer(ctx, 1, 2, decimal.RequireFromString("0.01"), models.TransferTypeSend)
	require.NoError(t, err)
	require.NoError(t, svc.ApproveTransfer(ctx, created.ID))

	after := balance(t, store, 10).Add(balance(t, store, 20))
	assert.True(t, before.Equal(after), "total money must be conserved, got %s -> %s", before, after)
}

func TestApproveTransfer_InsufficientFunds(t *testing.T) {
	store := newFakeStore()
	store.addAccount(10, 1, "10.00")
	store.addAccount(20, 2, "200.00")
	svc := newTestService(store, nil)
	ctx := context.Background()

	// User 2 requests 50.00 from user 1, who only holds 10.00.
	created, err := svc.CreateTransfer(ctx, 1, 2, decimal.RequireFromString("50.00"), models.TransferTypeRequest)
	require.NoError(t, err)

	err = svc.ApproveTransfer(ctx, created.ID)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	got, err := svc.GetTransfer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusPending, got.Status, "failed approval leaves the transfer pending")
	assert.True(t, balance(t, store, 10).Equal(decimal.RequireFromString("10.00")))
	assert.True(t, balance(t, store, 20).Equal(decimal.RequireFromString("200.00")))
}

func TestApproveTransfer_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	err := svc.ApproveTransfer(context.Background(), 42)
	assert.ErrorIs(t, err, repositories.ErrTransferNotFound)
}

func TestRejectTransfer(t *testing.T) {
	store := newFakeStore()
	store.addAccount(10, 1, "100.00")
	store.addAccount(20, 2, "50.00")
	svc := newTestService(store, nil)
	ctx := context.Background()

	created, err := svc.CreateTransfer(ctx, 1, 2, decimal.RequireFromString("30.00"), models.TransferTypeRequest)
	require.NoError(t, err)

	require.NoError(t, svc.RejectTransfer(ctx, created.ID))

	got, err := svc.GetTransfer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusRejected, got.Status)
	assert.True(t, balance(t, store, 10).Equal(decimal.RequireFromString("100.00")), "rejection never moves money")
	assert.True(t, balance(t, store, 20).Equal(decimal.RequireFromString("50.00")))

	// Terminal states stay terminal.
	assert.ErrorIs(t, svc.RejectTransfer(ctx, created.ID), ErrNotPending)
	assert.ErrorIs(t, svc.ApproveTransfer(ctx, created.ID), ErrNotPending)

	assert.ErrorIs(t, svc.RejectTransfer(ctx, 99), repositories.ErrTransferNotFound)
}

func TestRejectThenApproveApprovedTransfer(t *testing.T) {
	store := newFakeStore()
	store.addAccount(10, 1, "100.00")
	store.addAccount(20, 2, "50.00")
	svc := newTestService(store, nil)
	ctx := context.Background()

	created, err := svc.CreateTransfer(ctx, 1, 2, decimal.RequireFromString("30.00"), models.TransferTypeSend)
	require.NoError(t, err)
	require.NoError(t, svc.ApproveTransfer(ctx, created.ID))

	assert.ErrorIs(t, svc.RejectTransfer(ctx, created.ID), ErrNotPending)
	assert.True(t, balance(t, store, 10).Equal(decimal.RequireFromString("70.00")))
	assert.True(t, balance(t, store, 20).Equal(decimal.RequireFromString("80.00")))
}

func TestListByUser(t *testing.T) {
	store := newFakeStore()
	store.addAccount(10, 1, "100.00")
	store.addAccount(20, 2, "100.00")
	store.addAccount(30, 3, "100.00")
	svc := newTestService(store, nil)
	ctx := context.Background()

	amount := decimal.RequireFromString("5.00")
	_, err := svc.CreateTransfer(ctx, 1, 2, amount, models.TransferTypeSend)
	require.NoError(t, err)
	_, err = svc.CreateTransfer(ctx, 3, 1, amount, models.TransferTypeRequest)
	require.NoError(t, err)
	_, err = svc.CreateTransfer(ctx, 2, 3, amount, models.TransferTypeSend)
	require.NoError(t, err)

	history, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2, "both directions appear in history")
	assert.Equal(t, uint(1), history[0].ID)
	assert.Equal(t, uint(2), history[1].ID)

	// Repeated reads with no intervening writes return the same sequence.
	again, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, history, again)

	_, err = svc.ListByUser(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
}

func TestListPendingIncoming(t *testing.T) {
	store := newFakeStore()
	store.addAccount(10, 1, "100.00")
	store.addAccount(20, 2, "100.00")
	svc := newTestService(store, nil)
	ctx := context.Background()

	amount := decimal.RequireFromString("5.00")

	// Incoming pending for user 1: transfers into account 10.
	incoming, err := svc.CreateTransfer(ctx, 2, 1, amount, models.TransferTypeSend)
	require.NoError(t, err)
	// Outgoing request, not incoming for user 1.
	_, err = svc.CreateTransfer(ctx, 1, 2, amount, models.TransferTypeRequest)
	require.NoError(t, err)
	// Approved transfers drop out of the pending view.
	settled, err := svc.CreateTransfer(ctx, 2, 1, amount, models.TransferTypeSend)
	require.NoError(t, err)
	require.NoError(t, svc.ApproveTransfer(ctx, settled.ID))

	pending, err := svc.ListPendingIncoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, incoming.ID, pending[0].ID)
	assert.Equal(t, models.TransferStatusPending, pending[0].Status)
}
