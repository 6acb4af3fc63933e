package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is the aggregate root of the ledger: a balance plus an append-only
// transaction log, mutated only through the store's per-wallet critical section.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// CanDebit reports whether applying amount (negative for debits) keeps the
// balance non-negative.
func (w *Wallet) CanDebit(amount decimal.Decimal) bool {
	return w.Balance.Add(amount).Sign() >= 0
}

// ParseWalletID validates that raw is a canonical UUID v4 string
// (8-4-4-4-12 hex groups, version 4, RFC 4122 variant). Validation happens
// before any store access.
func ParseWalletID(raw string) (uuid.UUID, bool) {
	if len(raw) != 36 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	if id.Version() != 4 || id.Variant() != uuid.RFC4122 {
		return uuid.Nil, false
	}
	return id, true
}
