package dto

import (
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for wallet creation dates.
const dateLayout = "2006-01-02"

func init() {
	// Balances and amounts go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// SetupRequest is the request body for wallet setup.
type SetupRequest struct {
	Balance decimal.Decimal `json:"balance"`
	Name    string          `json:"name"`
}

// TransactRequest is the request body for applying a transaction.
type TransactRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// SetupResponse is the response body for a newly created wallet.
type SetupResponse struct {
	ID            string          `json:"id"`
	Balance       decimal.Decimal `json:"balance"`
	TransactionID string          `json:"transactionId"`
	Name          string          `json:"name"`
	Date          string          `json:"date"`
}

// SetupExistsResponse is returned when setup hits an already existing name.
type SetupExistsResponse struct {
	Message string          `json:"message"`
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
	Name    string          `json:"name"`
	Date    string          `json:"date"`
}

// TransactResponse is the response body for a successful transaction.
type TransactResponse struct {
	Balance       decimal.Decimal `json:"balance"`
	TransactionID string          `json:"transactionId"`
}

// TransactionResponse is one row of a wallet's transaction log.
type TransactionResponse struct {
	ID          string          `json:"id"`
	WalletID    string          `json:"walletId"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
}

// WalletSummaryResponse is the response for a wallet summary query.
type WalletSummaryResponse struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
	Name    string          `json:"name"`
	Date    string          `json:"date"`
	Total   int64           `json:"total"`
}

// NewSetupResponse maps a fresh setup result onto the wire shape.
func NewSetupResponse(r *ports.SetupResult) SetupResponse {
	return SetupResponse{
		ID:            r.WalletID.String(),
		Balance:       r.Balance,
		TransactionID: r.TransactionID.String(),
		Name:          r.Name,
		Date:          r.CreatedAt.Format(dateLayout),
	}
}

// NewSetupExistsResponse maps a repeated setup onto the wire shape.
func NewSetupExistsResponse(r *ports.SetupResult) SetupExistsResponse {
	return SetupExistsResponse{
		Message: "wallet already exists",
		ID:      r.WalletID.String(),
		Balance: r.Balance,
		Name:    r.Name,
		Date:    r.CreatedAt.Format(dateLayout),
	}
}

// NewTransactionResponses maps a log page onto the wire shape, keeping the
// page's order. The result is never nil.
func NewTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, TransactionResponse{
			ID:          txn.ID.String(),
			WalletID:    txn.WalletID.String(),
			Date:        txn.Date.Format("2006-01-02T15:04:05.000Z07:00"),
			Amount:      txn.Amount,
			Description: txn.Description,
			Type:        string(txn.Type),
		})
	}
	return out
}

// NewWalletSummaryResponse maps a summary onto the wire shape.
func NewWalletSummaryResponse(s *ports.WalletSummary) WalletSummaryResponse {
	return WalletSummaryResponse{
		ID:      s.ID.String(),
		Balance: s.Balance,
		Name:    s.Name,
		Date:    s.CreatedAt.Format(dateLayout),
		Total:   s.TransactionCount,
	}
}
