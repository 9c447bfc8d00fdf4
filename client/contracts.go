package client

import (
	"context"
	"net/url"
)

// ContractService handles contract operations.
type ContractService struct {
	c *Client
}

// ListByClient returns the contracts belonging to a client.
func (s *ContractService) ListByClient(ctx context.Context, clientID string) ([]Contract, error) {
	var resp struct {
		Contracts []Contract `json:"contracts"`
	}
	if err := s.c.get(ctx, "/api/v1/clients/"+url.PathEscape(clientID)+"/contracts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Contracts, nil
}

// Get returns a single contract by ID.
func (s *ContractService) Get(ctx context.Context, id string) (*Contract, error) {
	var con Contract
	if err := s.c.get(ctx, "/api/v1/contracts/"+url.PathEscape(id), nil, &con); err != nil {
		return nil, err
	}
	return &con, nil
}

// Create creates a new contract.
func (s *ContractService) Create(ctx context.Context, req *CreateContractRequest) (*Contract, error) {
	var con Contract
	if err := s.c.post(ctx, "/api/v1/contracts", req, &con); err != nil {
		return nil, err
	}
	return &con, nil
}

// Update applies a partial update to a contract.
func (s *ContractService) Update(ctx context.Context, id string, req *UpdateContractRequest) (*Contract, error) {
	var con Contract
	if err := s.c.patch(ctx, "/api/v1/contracts/"+url.PathEscape(id), req, &con); err != nil {
		return nil, err
	}
	return &con, nil
}

// Delete soft-deletes a contract.
func (s *ContractService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/contracts/"+url.PathEscape(id))
}
