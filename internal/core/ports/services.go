package ports

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Service Ports (Business Logic) ---

// LedgerService applies a single signed amount to one wallet under the
// non-negative-balance invariant. The funds check and the mutation execute
// inside one store-level critical section per wallet.
type LedgerService interface {
	Transact(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, description string) (*TransactResult, error)
}

// TransactResult holds the outcome of a committed transaction.
type TransactResult struct {
	Balance       decimal.Decimal
	TransactionID uuid.UUID
}

// WalletService handles wallet creation (idempotent by name) and read-only
// projections.
type WalletService interface {
	Setup(ctx context.Context, name string, initialBalance decimal.Decimal) (*SetupResult, error)
	GetSummary(ctx context.Context, rawID string) (*WalletSummary, error)
	ListTransactions(ctx context.Context, walletID uuid.UUID, skip, limit int) ([]domain.Transaction, error)
}

// SetupResult holds the outcome of wallet setup. When AlreadyExists is true
// the wallet predates this call and TransactionID is uuid.Nil: no wallet was
// created and no transaction appended.
type SetupResult struct {
	WalletID      uuid.UUID
	Name          string
	Balance       decimal.Decimal
	TransactionID uuid.UUID
	CreatedAt     time.Time
	AlreadyExists bool
}

// WalletSummary is the read-only projection served by GetSummary.
type WalletSummary struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Balance          decimal.Decimal `json:"balance"`
	CreatedAt        time.Time       `json:"created_at"`
	TransactionCount int64           `json:"transaction_count"`
}

// SummaryCache is a best-effort read-through cache for wallet summaries.
// Failures are logged by callers and never fail a request.
type SummaryCache interface {
	Get(ctx context.Context, walletID uuid.UUID) (*WalletSummary, error) // nil, nil on miss
	Set(ctx context.Context, summary *WalletSummary, ttl time.Duration) error
	Invalidate(ctx context.Context, walletID uuid.UUID) error
}
