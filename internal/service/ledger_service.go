package service

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerService with pessimistic locking.
type LedgerServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	cache      ports.SummaryCache
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	cache ports.SummaryCache,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		transactor: transactor,
		cache:      cache,
		log:        log,
	}
}

// Transact applies one signed amount to one wallet. The funds check, the
// balance update and the log append all run between taking the row lock and
// committing, so no other transaction on the same wallet can interleave.
func (s *LedgerServiceImpl) Transact(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, description string) (*ports.TransactResult, error) {
	if amount.IsZero() {
		return nil, apperror.ErrZeroAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.StorageError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get wallet
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return nil, apperror.StorageError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	// Business rule: a debit may not take the balance below zero.
	if amount.Sign() < 0 && !wallet.CanDebit(amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	newBalance := wallet.Balance.Add(amount)
	txn := domain.NewTransaction(walletID, amount, description, time.Now().UTC())

	// Persist: update wallet balance
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, walletID, newBalance); err != nil {
		return nil, apperror.StorageError(fmt.Errorf("update balance: %w", err))
	}

	// Persist: append ledger entry
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.StorageError(fmt.Errorf("append transaction: %w", err))
	}

	// Commit
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.StorageError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-process: drop the cached summary (best-effort)
	if err := s.cache.Invalidate(ctx, walletID); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", walletID.String()).Msg("failed to invalidate summary cache")
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("wallet_id", walletID.String()).
		Str("amount", amount.String()).
		Str("type", string(txn.Type)).
		Msg("transaction applied")

	return &ports.TransactResult{
		Balance:       newBalance,
		TransactionID: txn.ID,
	}, nil
}
