package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrEmptyNote           = errors.New("note content is required")
	ErrMissingName         = errors.New("name is required")
	ErrMissingCUPS         = errors.New("cups is required")
	ErrMissingClient       = errors.New("client_id is required")
	ErrMissingPoint        = errors.New("supply_point_id is required")
	ErrMissingAmount       = errors.New("amount is required")
	ErrSubjectModeConflict = errors.New("legacy and hierarchical subject filters are mutually exclusive")
	ErrUnknownSubjectMode  = errors.New("unknown subject filter mode")
	ErrInvalidState        = errors.New("invalid contract state")
)

// ErrNoActor indicates a write was attempted without an authenticated user.
var ErrNoActor = errors.New("authenticated user required")

// Sentinel errors for entity lookups.
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrPointNotFound    = errors.New("supply point not found")
	ErrContractNotFound = errors.New("contract not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrUserNotFound     = errors.New("user not found")
)

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// ErrInvalidCredentials indicates a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrTooLong is the base error wrapped by ErrFieldTooLong.
var ErrTooLong = errors.New("field too long")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%w: %s exceeds maximum length of %d", ErrTooLong, field, maxLen)
}
