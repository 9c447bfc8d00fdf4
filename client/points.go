package client

import (
	"context"
	"net/url"
)

// PointService handles supply point operations.
type PointService struct {
	c *Client
}

// ListByClient returns the supply points belonging to a client.
func (s *PointService) ListByClient(ctx context.Context, clientID string) ([]SupplyPoint, error) {
	var resp struct {
		Points []SupplyPoint `json:"points"`
	}
	if err := s.c.get(ctx, "/api/v1/clients/"+url.PathEscape(clientID)+"/points", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Points, nil
}

// Get returns a single supply point by ID.
func (s *PointService) Get(ctx context.Context, id string) (*SupplyPoint, error) {
	var p SupplyPoint
	if err := s.c.get(ctx, "/api/v1/points/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new supply point.
func (s *PointService) Create(ctx context.Context, req *CreateSupplyPointRequest) (*SupplyPoint, error) {
	var p SupplyPoint
	if err := s.c.post(ctx, "/api/v1/points", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies a partial update to a supply point.
func (s *PointService) Update(ctx context.Context, id string, req *UpdateSupplyPointRequest) (*SupplyPoint, error) {
	var p SupplyPoint
	if err := s.c.patch(ctx, "/api/v1/points/"+url.PathEscape(id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete soft-deletes a supply point.
func (s *PointService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/points/"+url.PathEscape(id))
}
