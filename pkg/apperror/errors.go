package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a generic request-validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidWalletID() *AppError {
	return New("VAL_002", "Wallet id must be a well-formed UUID v4", http.StatusBadRequest)
}

// ---- Wallet Business Logic (WLT) ----

func ErrZeroAmount() *AppError {
	return New("WLT_001", "Transaction amount must be non-zero", http.StatusBadRequest)
}

func ErrInsufficientFunds() *AppError {
	return New("WLT_002", "Insufficient funds in wallet", http.StatusBadRequest)
}

func ErrWalletNotFound() *AppError {
	return New("WLT_003", "Wallet not found", http.StatusNotFound)
}

func ErrDuplicateWallet() *AppError {
	return New("WLT_004", "Wallet already exists", http.StatusConflict)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// StorageError wraps a storage-layer failure (unreachable store, aborted transaction).
func StorageError(err error) *AppError {
	return Wrap("SYS_002", "Storage failure", http.StatusInternalServerError, err)
}
