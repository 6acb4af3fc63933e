package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// summaryCacheTTL bounds how stale a cached summary can get.
const summaryCacheTTL = 30 * time.Second

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	cache      ports.SummaryCache
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	cache ports.SummaryCache,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		transactor: transactor,
		cache:      cache,
		log:        log,
	}
}

// Setup creates a wallet funded with initialBalance, recording the funding as
// the wallet's first CREDIT transaction. Setup is idempotent by name: if a
// wallet with the same name already exists it is returned unchanged.
func (s *WalletServiceImpl) Setup(ctx context.Context, name string, initialBalance decimal.Decimal) (*ports.SetupResult, error) {
	if name == "" {
		return nil, apperror.Validation("wallet name must not be empty")
	}
	if initialBalance.Sign() <= 0 {
		return nil, apperror.Validation("initial balance must be greater than zero")
	}
	if !initialBalance.Equal(initialBalance.Round(4)) {
		return nil, apperror.Validation("initial balance must have at most 4 decimal places")
	}

	existing, err := s.walletRepo.GetByName(ctx, name)
	if err != nil {
		return nil, apperror.StorageError(fmt.Errorf("get wallet by name: %w", err))
	}
	if existing != nil {
		return existingSetupResult(existing), nil
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:        uuid.New(),
		Name:      name,
		Balance:   initialBalance,
		CreatedAt: now,
	}
	txn := domain.NewTransaction(wallet.ID, initialBalance, "initial funding", now)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.StorageError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.walletRepo.Create(ctx, dbTx, wallet); err != nil {
		if errors.Is(err, ports.ErrDuplicateName) {
			// Lost a concurrent setup race for the same name: the unique
			// index picked a winner, return it unchanged.
			winner, lookupErr := s.walletRepo.GetByName(ctx, name)
			if lookupErr != nil {
				return nil, apperror.StorageError(fmt.Errorf("get winning wallet: %w", lookupErr))
			}
			if winner == nil {
				return nil, apperror.InternalError(fmt.Errorf("duplicate wallet name %q but no row found", name))
			}
			return existingSetupResult(winner), nil
		}
		return nil, apperror.StorageError(fmt.Errorf("create wallet: %w", err))
	}

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.StorageError(fmt.Errorf("append funding transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.StorageError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("name", name).
		Str("balance", initialBalance.String()).
		Msg("wallet created")

	return &ports.SetupResult{
		WalletID:      wallet.ID,
		Name:          wallet.Name,
		Balance:       wallet.Balance,
		TransactionID: txn.ID,
		CreatedAt:     wallet.CreatedAt,
	}, nil
}

// GetSummary returns the current state of one wallet. The raw path parameter
// is validated before any store access; summaries are served read-through
// from the cache when present.
func (s *WalletServiceImpl) GetSummary(ctx context.Context, rawID string) (*ports.WalletSummary, error) {
	id, ok := domain.ParseWalletID(rawID)
	if !ok {
		return nil, apperror.ErrInvalidWalletID()
	}

	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("wallet_id", id.String()).Msg("summary cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.StorageError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	total, err := s.txRepo.CountByWallet(ctx, id)
	if err != nil {
		return nil, apperror.StorageError(fmt.Errorf("count transactions: %w", err))
	}

	summary := &ports.WalletSummary{
		ID:               wallet.ID,
		Name:             wallet.Name,
		Balance:          wallet.Balance,
		CreatedAt:        wallet.CreatedAt,
		TransactionCount: total,
	}

	if err := s.cache.Set(ctx, summary, summaryCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", id.String()).Msg("summary cache write failed")
	}

	return summary, nil
}

// ListTransactions returns one page of the wallet's transaction log in
// chronological order.
func (s *WalletServiceImpl) ListTransactions(ctx context.Context, walletID uuid.UUID, skip, limit int) ([]domain.Transaction, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.StorageError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	txns, err := s.txRepo.ListByWallet(ctx, walletID, skip, limit)
	if err != nil {
		return nil, apperror.StorageError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}

func existingSetupResult(w *domain.Wallet) *ports.SetupResult {
	return &ports.SetupResult{
		WalletID:      w.ID,
		Name:          w.Name,
		Balance:       w.Balance,
		CreatedAt:     w.CreatedAt,
		AlreadyExists: true,
	}
}
