package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/enerlink/enerlink/internal/httputil"
	"github.com/enerlink/enerlink/internal/metrics"
	"github.com/enerlink/enerlink/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodeInternalError   = "internal_error"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeAccountLocked   = "account_locked"
	ErrCodeValidationError = "validation_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// validationSentinels are the request validation errors that map to a 400.
var validationSentinels = []error{
	models.ErrMissingName,
	models.ErrMissingCUPS,
	models.ErrMissingClient,
	models.ErrMissingPoint,
	models.ErrMissingAmount,
	models.ErrInvalidState,
	models.ErrTooLong,
}

func isValidationError(err error) bool {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
