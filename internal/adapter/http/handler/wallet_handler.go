package handler

import (
	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles the ledger endpoints.
type WalletHandler struct {
	ledgerSvc ports.LedgerService
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService, walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{
		ledgerSvc: ledgerSvc,
		walletSvc: walletSvc,
	}
}

// Setup handles POST /setup.
func (h *WalletHandler) Setup(c *gin.Context) {
	var req dto.SetupRequest
	if err := dto.DecodeStrict(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.walletSvc.Setup(c.Request.Context(), req.Name, req.Balance)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.AlreadyExists {
		response.OK(c, dto.NewSetupExistsResponse(result))
		return
	}
	response.OK(c, dto.NewSetupResponse(result))
}

// Transact handles POST /transact/:walletId.
func (h *WalletHandler) Transact(c *gin.Context) {
	walletID, ok := domain.ParseWalletID(c.Param("walletId"))
	if !ok {
		response.Error(c, apperror.ErrInvalidWalletID())
		return
	}

	var req dto.TransactRequest
	if err := dto.DecodeStrict(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.ledgerSvc.Transact(c.Request.Context(), walletID, req.Amount, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransactResponse{
		Balance:       result.Balance,
		TransactionID: result.TransactionID.String(),
	})
}

// ListTransactions handles GET /transactions?walletId=&skip=&limit=.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	walletID, ok := domain.ParseWalletID(c.Query("walletId"))
	if !ok {
		response.Error(c, apperror.ErrInvalidWalletID())
		return
	}

	skip, limit, err := dto.ParsePageParams(c.Query("skip"), c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	txns, err := h.walletSvc.ListTransactions(c.Request.Context(), walletID, skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewTransactionResponses(txns))
}

// GetSummary handles GET /wallet/:id.
func (h *WalletHandler) GetSummary(c *gin.Context) {
	summary, err := h.walletSvc.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewWalletSummaryResponse(summary))
}
