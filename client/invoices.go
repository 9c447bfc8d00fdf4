package client

import (
	"context"
	"net/url"
)

// InvoiceService handles invoice operations.
type InvoiceService struct {
	c *Client
}

// ListByClient returns the invoices issued against a client.
func (s *InvoiceService) ListByClient(ctx context.Context, clientID string) ([]Invoice, error) {
	var resp struct {
		Invoices []Invoice `json:"invoices"`
	}
	if err := s.c.get(ctx, "/api/v1/clients/"+url.PathEscape(clientID)+"/invoices", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Invoices, nil
}

// Get returns a single invoice by ID.
func (s *InvoiceService) Get(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	if err := s.c.get(ctx, "/api/v1/invoices/"+url.PathEscape(id), nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create creates a new invoice.
func (s *InvoiceService) Create(ctx context.Context, req *CreateInvoiceRequest) (*Invoice, error) {
	var inv Invoice
	if err := s.c.post(ctx, "/api/v1/invoices", req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkPaid marks an invoice as paid.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	if err := s.c.post(ctx, "/api/v1/invoices/"+url.PathEscape(id)+"/pay", nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Delete soft-deletes an invoice.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/invoices/"+url.PathEscape(id))
}
