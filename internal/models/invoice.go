package models

import "time"

// Invoice is a billing record attached to a client, optionally scoped to a
// single contract.
type Invoice struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	ContractID  *string    `json:"contract_id,omitempty"`
	Number      string     `json:"number"`
	AmountCents int64      `json:"amount_cents"`
	IssuedOn    time.Time  `json:"issued_on"`
	DueOn       *time.Time `json:"due_on,omitempty"`
	Paid        bool       `json:"paid"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateInvoiceRequest is the payload for registering an invoice.
type CreateInvoiceRequest struct {
	ClientID    string     `json:"client_id"`
	ContractID  *string    `json:"contract_id,omitempty"`
	Number      string     `json:"number"`
	AmountCents int64      `json:"amount_cents"`
	IssuedOn    time.Time  `json:"issued_on"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

// Validate checks required fields.
func (r CreateInvoiceRequest) Validate() error {
	if r.ClientID == "" {
		return ErrMissingClient
	}

	if r.Number == "" {
		return ErrMissingName
	}

	if r.AmountCents == 0 {
		return ErrMissingAmount
	}

	return nil
}
