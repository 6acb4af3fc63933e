package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepo implements ports.TransactionRepository. The log is
// append-only: rows are inserted inside the same transaction as the balance
// update and never modified afterwards. The seq column preserves insertion
// order even when two entries share a timestamp.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, wallet_id, date, amount, description, type)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WalletID, t.Date, t.Amount.String(), t.Description, t.Type,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByWallet returns a contiguous chronological slice of the wallet's log.
// skip below zero is clamped to zero and limit below one to one; a skip past
// the end of the log yields an empty slice, not an error.
func (r *TransactionRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, skip, limit int) ([]domain.Transaction, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 1
	}

	query := `SELECT id, wallet_id, date, amount::text, description, type
		FROM transactions WHERE wallet_id = $1 ORDER BY seq ASC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, walletID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t := domain.Transaction{}
		var amount string
		err := rows.Scan(&t.ID, &t.WalletID, &t.Date, &amount, &t.Description, &t.Type)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse transaction amount: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

// CountByWallet returns the total number of entries in a wallet's log.
func (r *TransactionRepo) CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE wallet_id = $1`

	var total int64
	if err := r.pool.QueryRow(ctx, query, walletID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return total, nil
}
