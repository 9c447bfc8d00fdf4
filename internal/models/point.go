package models

import (
	"strings"
	"time"
)

// Utility types a supply point can carry.
const (
	UtilityPower = "power"
	UtilityGas   = "gas"
)

// SupplyPoint is a metered delivery point identified by its CUPS code.
type SupplyPoint struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	CUPS        string     `json:"cups"`
	Address     string     `json:"address,omitempty"`
	Tariff      string     `json:"tariff,omitempty"`
	UtilityType string     `json:"utility_type"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateSupplyPointRequest is the payload for registering a supply point.
type CreateSupplyPointRequest struct {
	ClientID    string `json:"client_id"`
	CUPS        string `json:"cups"`
	Address     string `json:"address,omitempty"`
	Tariff      string `json:"tariff,omitempty"`
	UtilityType string `json:"utility_type,omitempty"`
}

// Validate checks required fields and length limits.
func (r CreateSupplyPointRequest) Validate() error {
	if r.ClientID == "" {
		return ErrMissingClient
	}

	if strings.TrimSpace(r.CUPS) == "" {
		return ErrMissingCUPS
	}

	if len(r.CUPS) > maxNameLen {
		return ErrFieldTooLong("cups", maxNameLen)
	}

	return nil
}

// UpdateSupplyPointRequest is the payload for updating a supply point.
// Nil fields are left unchanged.
type UpdateSupplyPointRequest struct {
	Address *string `json:"address,omitempty"`
	Tariff  *string `json:"tariff,omitempty"`
}
