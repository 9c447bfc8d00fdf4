// Package models defines the data types shared across the enerlink CRM:
// clients, supply points, contracts, invoices, users, and the activity log
// entries that record every change to them.
package models

import (
	"strings"
	"time"
)

// maxNameLen bounds free-text name and label fields.
const maxNameLen = 255

// Client is a brokerage customer.
type Client struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	TaxID     string     `json:"tax_id,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateClientRequest is the payload for creating a client.
type CreateClientRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Validate checks required fields and length limits.
func (r CreateClientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}

	if len(r.Name) > maxNameLen {
		return ErrFieldTooLong("name", maxNameLen)
	}

	return nil
}

// UpdateClientRequest is the payload for updating a client. Nil fields are
// left unchanged.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Validate checks that provided fields are usable.
func (r UpdateClientRequest) Validate() error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return ErrMissingName
		}

		if len(*r.Name) > maxNameLen {
			return ErrFieldTooLong("name", maxNameLen)
		}
	}

	return nil
}
