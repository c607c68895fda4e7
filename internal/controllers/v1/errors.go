package v1

import (
	"errors"
	"net/http"

	"github.com/moneyhealth/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the month must be in YYYY-MM format"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errAmountNegative = errors.New("the amount must not be negative")
	errDebtProfile    = errors.New("the debt must belong to the same profile as the transaction")
)
