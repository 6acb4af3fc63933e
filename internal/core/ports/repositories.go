package ports

import (
	"context"
	"errors"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrDuplicateName is returned by WalletRepository.Create when another wallet
// already holds the requested name (unique-index violation). The lifecycle
// manager resolves it by re-reading the winner.
var ErrDuplicateName = errors.New("wallet name already exists")

// WalletRepository defines persistence operations for wallet aggregates.
// Methods accepting pgx.Tx run inside a transaction; GetByIDForUpdate takes
// the per-wallet lock that serializes balance mutations.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByName(ctx context.Context, name string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
}

// TransactionRepository defines persistence for the append-only transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	// ListByWallet returns a contiguous chronological slice of the wallet's log.
	// skip is clamped to >= 0 and limit to >= 1; a skip beyond the end of the
	// log yields an empty slice.
	ListByWallet(ctx context.Context, walletID uuid.UUID, skip, limit int) ([]domain.Transaction, error)
	CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
}

// DBTransactor provides the scoped transactional context for atomic
// read-modify-write on a wallet aggregate. Implementations guarantee that a
// started transaction is released on every exit path.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
