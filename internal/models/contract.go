package models

import "time"

// Contract states, in rough lifecycle order.
const (
	ContractDraft     = "draft"
	ContractActive    = "active"
	ContractExpired   = "expired"
	ContractCancelled = "cancelled"
)

// validContractStates is the closed set of states accepted on writes.
var validContractStates = map[string]bool{
	ContractDraft:     true,
	ContractActive:    true,
	ContractExpired:   true,
	ContractCancelled: true,
}

// Contract is a supply agreement for one supply point.
type Contract struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	PointID   string     `json:"supply_point_id"`
	RateCode  string     `json:"rate_code,omitempty"`
	State     string     `json:"state"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	StartsOn  *time.Time `json:"starts_on,omitempty"`
	EndsOn    *time.Time `json:"ends_on,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateContractRequest is the payload for creating a contract.
type CreateContractRequest struct {
	ClientID string     `json:"client_id"`
	PointID  string     `json:"supply_point_id"`
	RateCode string     `json:"rate_code,omitempty"`
	State    string     `json:"state,omitempty"`
	SignedAt *time.Time `json:"signed_at,omitempty"`
	StartsOn *time.Time `json:"starts_on,omitempty"`
	EndsOn   *time.Time `json:"ends_on,omitempty"`
}

// Validate checks required references and the state value.
func (r CreateContractRequest) Validate() error {
	if r.ClientID == "" {
		return ErrMissingClient
	}

	if r.PointID == "" {
		return ErrMissingPoint
	}

	if r.State != "" && !validContractStates[r.State] {
		return ErrInvalidState
	}

	return nil
}

// UpdateContractRequest is the payload for updating a contract. Nil fields
// are left unchanged.
type UpdateContractRequest struct {
	RateCode *string    `json:"rate_code,omitempty"`
	State    *string    `json:"state,omitempty"`
	SignedAt *time.Time `json:"signed_at,omitempty"`
	StartsOn *time.Time `json:"starts_on,omitempty"`
	EndsOn   *time.Time `json:"ends_on,omitempty"`
}

// Validate checks the state value when one is provided.
func (r UpdateContractRequest) Validate() error {
	if r.State != nil && !validContractStates[*r.State] {
		return ErrInvalidState
	}

	return nil
}
