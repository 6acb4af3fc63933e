package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType tags the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// Transaction is an immutable ledger entry. Once appended it is never
// updated or removed; insertion order is chronological order.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	WalletID    uuid.UUID       `json:"walletId"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
}

// TypeForAmount derives the entry tag: CREDIT for amount >= 0, DEBIT otherwise.
// Zero amounts are rejected before any entry is built, so the zero branch is
// unreachable in practice.
func TypeForAmount(amount decimal.Decimal) TransactionType {
	if amount.Sign() < 0 {
		return TransactionTypeDebit
	}
	return TransactionTypeCredit
}

// NewTransaction builds a ledger entry with a fresh id and the derived type.
func NewTransaction(walletID uuid.UUID, amount decimal.Decimal, description string, at time.Time) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		WalletID:    walletID,
		Date:        at,
		Amount:      amount,
		Description: description,
		Type:        TypeForAmount(amount),
	}
}
