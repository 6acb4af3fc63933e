package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"wallet-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const maxNameLength = 100

// DecodeStrict decodes a JSON request body into v, rejecting unknown fields
// and trailing garbage. Every schema violation maps to the same 400.
func DecodeStrict(c *gin.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperror.Validation("malformed request body")
	}
	if dec.More() {
		return apperror.Validation("malformed request body")
	}
	return nil
}

// Validate checks the setup schema: a non-empty name and a positive balance
// with at most 4 decimal places.
func (r *SetupRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apperror.Validation("name is required")
	}
	if len(r.Name) > maxNameLength {
		return apperror.Validation("name must be at most 100 characters")
	}
	if r.Balance.Sign() <= 0 {
		return apperror.Validation("balance must be greater than zero")
	}
	if !r.Balance.Equal(r.Balance.Round(4)) {
		return apperror.Validation("balance must have at most 4 decimal places")
	}
	return nil
}

// Validate checks the transact schema. The zero-amount rejection lives in the
// service; here only gross shape problems are caught.
func (r *TransactRequest) Validate() error {
	if !r.Amount.Equal(r.Amount.Round(4)) {
		return apperror.Validation("amount must have at most 4 decimal places")
	}
	return nil
}

// ParsePageParams parses skip/limit query strings with the documented
// defaults (skip 0, limit 10). Negative skip and non-positive limit are
// schema violations, not silently clamped at this layer.
func ParsePageParams(rawSkip, rawLimit string) (skip, limit int, err error) {
	skip, limit = 0, 10

	if rawSkip != "" {
		skip, err = strconv.Atoi(rawSkip)
		if err != nil || skip < 0 {
			return 0, 0, apperror.Validation("skip must be a non-negative integer")
		}
	}
	if rawLimit != "" {
		limit, err = strconv.Atoi(rawLimit)
		if err != nil || limit < 1 {
			return 0, 0, apperror.Validation("limit must be a positive integer")
		}
	}
	return skip, limit, nil
}
