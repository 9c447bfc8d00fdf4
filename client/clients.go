package client

import (
	"context"
	"net/url"
	"strconv"
)

// ClientService handles brokerage client CRUD operations.
type ClientService struct {
	c *Client
}

// clientListResponse wraps the paginated client list response.
type clientListResponse struct {
	Clients []ClientRecord `json:"clients"`
}

// List returns clients with optional pagination.
func (s *ClientService) List(ctx context.Context, limit, offset int) ([]ClientRecord, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var resp clientListResponse
	if err := s.c.get(ctx, "/api/v1/clients", params, &resp); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

// Get returns a single client by ID.
func (s *ClientService) Get(ctx context.Context, id string) (*ClientRecord, error) {
	var rec ClientRecord
	if err := s.c.get(ctx, "/api/v1/clients/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create creates a new client.
func (s *ClientService) Create(ctx context.Context, req *CreateClientRequest) (*ClientRecord, error) {
	var rec ClientRecord
	if err := s.c.post(ctx, "/api/v1/clients", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update applies a partial update to a client.
func (s *ClientService) Update(ctx context.Context, id string, req *UpdateClientRequest) (*ClientRecord, error) {
	var rec ClientRecord
	if err := s.c.patch(ctx, "/api/v1/clients/"+url.PathEscape(id), req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete soft-deletes a client.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/clients/"+url.PathEscape(id))
}
