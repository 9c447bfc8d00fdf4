package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/enerlink/enerlink/internal/models"
)

// GeocodeStore caches upstream geocoder responses keyed by query text.
type GeocodeStore struct {
	Base
}

// NewGeocodeStore creates a GeocodeStore.
func NewGeocodeStore(base Base) *GeocodeStore {
	return &GeocodeStore{Base: base}
}

// Lookup returns the cached result for a query, if one exists.
func (s *GeocodeStore) Lookup(ctx context.Context, query string) (*models.GeocodeResult, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var r models.GeocodeResult

	err := s.Pool.QueryRow(ctx, `
		SELECT query, latitude, longitude, display_name, created_at
		FROM geocode_cache WHERE query = $1`, query).
		Scan(&r.Query, &r.Latitude, &r.Longitude, &r.DisplayName, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("looking up geocode cache: %w", err)
	}

	r.Cached = true

	return &r, true, nil
}

// Save stores a result. Concurrent saves of the same query are harmless.
func (s *GeocodeStore) Save(ctx context.Context, r models.GeocodeResult) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.Pool.Exec(ctx, `
		INSERT INTO geocode_cache (query, latitude, longitude, display_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (query) DO NOTHING`,
		r.Query, r.Latitude, r.Longitude, r.DisplayName)
	if err != nil {
		return fmt.Errorf("saving geocode result: %w", err)
	}

	return nil
}
