package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type walletTestDeps struct {
	svc        *WalletServiceImpl
	walletRepo *mocks.MockWalletRepository
	txRepo     *mocks.MockTransactionRepository
	transactor *mocks.MockDBTransactor
	cache      *mocks.MockSummaryCache
	ctrl       *gomock.Controller
}

func setupWalletService(t *testing.T) *walletTestDeps {
	ctrl := gomock.NewController(t)
	d := &walletTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		cache:      mocks.NewMockSummaryCache(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewWalletService(d.walletRepo, d.txRepo, d.transactor, d.cache, zerolog.Nop())
	return d
}

// ==================== Setup Tests ====================

func TestWalletService_Setup_CreatesWalletWithFundingTransaction(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	balance := decimal.RequireFromString("100")

	d.walletRepo.EXPECT().GetByName(ctx, "alice").Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, w *domain.Wallet) error {
			assert.Equal(t, "alice", w.Name)
			assert.True(t, w.Balance.Equal(balance))
			assert.NotEqual(t, uuid.Nil, w.ID)
			return nil
		})
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, txn *domain.Transaction) error {
			assert.Equal(t, domain.TransactionTypeCredit, txn.Type)
			assert.True(t, txn.Amount.Equal(balance))
			return nil
		})

	result, err := d.svc.Setup(ctx, "alice", balance)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "alice", result.Name)
	assert.True(t, result.Balance.Equal(balance))
	assert.False(t, result.AlreadyExists)
	assert.NotEqual(t, uuid.Nil, result.TransactionID)
}

func TestWalletService_Setup_IdempotentByName(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	existing := &domain.Wallet{
		ID:        uuid.New(),
		Name:      "alice",
		Balance:   decimal.RequireFromString("42.50"),
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}

	d.walletRepo.EXPECT().GetByName(ctx, "alice").Return(existing, nil)

	// A repeated setup must not touch the existing balance, even with a
	// different requested amount.
	result, err := d.svc.Setup(ctx, "alice", decimal.RequireFromString("9999"))
	require.NoError(t, err)
	assert.True(t, result.AlreadyExists)
	assert.Equal(t, existing.ID, result.WalletID)
	assert.True(t, result.Balance.Equal(existing.Balance))
}

func TestWalletService_Setup_ConcurrentRaceReturnsWinner(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	winner := &domain.Wallet{
		ID:      uuid.New(),
		Name:    "bob",
		Balance: decimal.RequireFromString("10"),
	}

	// Name lookup sees nothing, but the insert loses to a concurrent setup.
	d.walletRepo.EXPECT().GetByName(ctx, "bob").Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(ports.ErrDuplicateName)
	d.walletRepo.EXPECT().GetByName(ctx, "bob").Return(winner, nil)

	result, err := d.svc.Setup(ctx, "bob", decimal.RequireFromString("10"))
	require.NoError(t, err)
	assert.True(t, result.AlreadyExists)
	assert.Equal(t, winner.ID, result.WalletID)
}

func TestWalletService_Setup_RejectsNonPositiveBalance(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	for _, raw := range []string{"0", "-1", "-0.0001"} {
		result, err := d.svc.Setup(context.Background(), "alice", decimal.RequireFromString(raw))
		assert.Nil(t, result, "balance %s", raw)
		assertAppError(t, err, "VAL_001")
	}
}

func TestWalletService_Setup_RejectsExcessPrecision(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	result, err := d.svc.Setup(context.Background(), "alice", decimal.RequireFromString("1.00001"))
	assert.Nil(t, result)
	assertAppError(t, err, "VAL_001")
}

func TestWalletService_Setup_RejectsEmptyName(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	result, err := d.svc.Setup(context.Background(), "", decimal.RequireFromString("10"))
	assert.Nil(t, result)
	assertAppError(t, err, "VAL_001")
}

// ==================== GetSummary Tests ====================

func TestWalletService_GetSummary_CacheMiss(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	wallet := &domain.Wallet{
		ID:        walletID,
		Name:      "alice",
		Balance:   decimal.RequireFromString("70"),
		CreatedAt: time.Now().UTC(),
	}

	d.cache.EXPECT().Get(ctx, walletID).Return(nil, nil)
	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(wallet, nil)
	d.txRepo.EXPECT().CountByWallet(ctx, walletID).Return(int64(2), nil)
	d.cache.EXPECT().Set(ctx, gomock.Any(), summaryCacheTTL).Return(nil)

	summary, err := d.svc.GetSummary(ctx, walletID.String())
	require.NoError(t, err)
	assert.Equal(t, walletID, summary.ID)
	assert.Equal(t, "alice", summary.Name)
	assert.True(t, summary.Balance.Equal(wallet.Balance))
	assert.Equal(t, int64(2), summary.TransactionCount)
}

func TestWalletService_GetSummary_CacheHit(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	cached := &ports.WalletSummary{
		ID:               walletID,
		Name:             "alice",
		Balance:          decimal.RequireFromString("70"),
		TransactionCount: 2,
	}

	d.cache.EXPECT().Get(ctx, walletID).Return(cached, nil)

	summary, err := d.svc.GetSummary(ctx, walletID.String())
	require.NoError(t, err)
	assert.Equal(t, cached, summary)
}

func TestWalletService_GetSummary_CacheErrorFallsThrough(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	wallet := &domain.Wallet{ID: walletID, Name: "alice", Balance: decimal.RequireFromString("1")}

	d.cache.EXPECT().Get(ctx, walletID).Return(nil, errors.New("redis down"))
	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(wallet, nil)
	d.txRepo.EXPECT().CountByWallet(ctx, walletID).Return(int64(1), nil)
	d.cache.EXPECT().Set(ctx, gomock.Any(), summaryCacheTTL).Return(errors.New("redis down"))

	summary, err := d.svc.GetSummary(ctx, walletID.String())
	require.NoError(t, err)
	assert.Equal(t, walletID, summary.ID)
}

func TestWalletService_GetSummary_MalformedID(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	for _, raw := range []string{"", "not-a-uuid", "12345", uuid.New().String() + "x"} {
		summary, err := d.svc.GetSummary(context.Background(), raw)
		assert.Nil(t, summary, "id %q", raw)
		assertAppError(t, err, "VAL_002")
	}
}

func TestWalletService_GetSummary_NotFound(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.cache.EXPECT().Get(ctx, walletID).Return(nil, nil)
	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(nil, nil)

	summary, err := d.svc.GetSummary(ctx, walletID.String())
	assert.Nil(t, summary)
	assertAppError(t, err, "WLT_003")
}

// ==================== ListTransactions Tests ====================

func TestWalletService_ListTransactions(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	txns := []domain.Transaction{
		{ID: uuid.New(), WalletID: walletID, Amount: decimal.RequireFromString("100"), Type: domain.TransactionTypeCredit},
		{ID: uuid.New(), WalletID: walletID, Amount: decimal.RequireFromString("-30"), Type: domain.TransactionTypeDebit},
	}

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{ID: walletID}, nil)
	d.txRepo.EXPECT().ListByWallet(ctx, walletID, 0, 10).Return(txns, nil)

	got, err := d.svc.ListTransactions(ctx, walletID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, txns, got)
}

func TestWalletService_ListTransactions_WalletNotFound(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(nil, nil)

	got, err := d.svc.ListTransactions(ctx, walletID, 0, 10)
	assert.Nil(t, got)
	assertAppError(t, err, "WLT_003")
}
