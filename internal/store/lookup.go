package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/enerlink/enerlink/internal/models"
)

// defaultLookupRowLimit caps every lookup result set.
const defaultLookupRowLimit = 500

// LookupStore serves the read-only option lists behind the activity filter
// controls. Every query is capped at RowLimit rows; an empty scoping id-set
// means no restriction, not an empty result.
type LookupStore struct {
	Base
	RowLimit int
}

// NewLookupStore creates a LookupStore with the given row cap.
// A non-positive limit falls back to the default.
func NewLookupStore(base Base, rowLimit int) *LookupStore {
	if rowLimit <= 0 {
		rowLimit = defaultLookupRowLimit
	}

	return &LookupStore{Base: base, RowLimit: rowLimit}
}

// Users returns active, non-deleted users ordered by name.
func (s *LookupStore) Users(ctx context.Context) ([]models.LookupOption, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `
		SELECT id, name, surname, email FROM users
		WHERE active AND deleted_at IS NULL
		ORDER BY name, surname
		LIMIT $1`, s.RowLimit)
	if err != nil {
		return nil, fmt.Errorf("querying user options: %w", err)
	}
	defer rows.Close()

	return collectOptions(rows, func(r pgx.Rows) (models.LookupOption, error) {
		var u models.User
		if err := r.Scan(&u.ID, &u.Name, &u.Surname, &u.Email); err != nil {
			return models.LookupOption{}, err
		}

		return models.LookupOption{Value: u.ID, Label: u.DisplayName()}, nil
	})
}

// Clients returns non-deleted clients ordered by name.
func (s *LookupStore) Clients(ctx context.Context) ([]models.LookupOption, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `
		SELECT id, name, tax_id FROM clients
		WHERE deleted_at IS NULL
		ORDER BY name
		LIMIT $1`, s.RowLimit)
	if err != nil {
		return nil, fmt.Errorf("querying client options: %w", err)
	}
	defer rows.Close()

	return collectOptions(rows, func(r pgx.Rows) (models.LookupOption, error) {
		var o models.LookupOption
		if err := r.Scan(&o.Value, &o.Label, &o.Subtitle); err != nil {
			return models.LookupOption{}, err
		}

		return o, nil
	})
}

// SupplyPoints returns non-deleted supply points, optionally restricted to a
// set of client ids. Labeled by CUPS with the address as subtitle.
func (s *LookupStore) SupplyPoints(ctx context.Context, clientIDs []string) ([]models.LookupOption, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, cups, address FROM supply_points
		WHERE deleted_at IS NULL`
	args := []any{}

	if len(clientIDs) > 0 {
		query += " AND client_id = ANY($1)"
		args = append(args, clientIDs)
	}

	query += fmt.Sprintf(" ORDER BY cups LIMIT $%d", len(args)+1)
	args = append(args, s.RowLimit)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying supply point options: %w", err)
	}
	defer rows.Close()

	return collectOptions(rows, func(r pgx.Rows) (models.LookupOption, error) {
		var o models.LookupOption
		if err := r.Scan(&o.Value, &o.Label, &o.Subtitle); err != nil {
			return models.LookupOption{}, err
		}

		return o, nil
	})
}

// Contracts returns non-deleted contracts labeled by the linked supply
// point's CUPS, with the contract state as subtitle.
//
// The point-id restriction is pushed to the query. The client-id restriction
// is applied after the fetch, and only when no point-id restriction was
// given, so point scoping always wins when both are supplied.
func (s *LookupStore) Contracts(ctx context.Context, pointIDs, clientIDs []string) ([]models.LookupOption, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT ct.id, ct.client_id, ct.state, sp.cups
		FROM contracts ct
		LEFT JOIN supply_points sp ON sp.id = ct.supply_point_id
		WHERE ct.deleted_at IS NULL`
	args := []any{}

	if len(pointIDs) > 0 {
		query += " AND ct.supply_point_id = ANY($1)"
		args = append(args, pointIDs)
	}

	query += fmt.Sprintf(" ORDER BY ct.created_at DESC LIMIT $%d", len(args)+1)
	args = append(args, s.RowLimit)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contract options: %w", err)
	}
	defer rows.Close()

	filterClients := len(pointIDs) == 0 && len(clientIDs) > 0

	wanted := make(map[string]bool, len(clientIDs))
	for _, id := range clientIDs {
		wanted[id] = true
	}

	options := make([]models.LookupOption, 0, 16)

	for rows.Next() {
		var (
			id, clientID, state string
			cups                *string
		)

		if err := rows.Scan(&id, &clientID, &state, &cups); err != nil {
			return nil, fmt.Errorf("scanning contract option: %w", err)
		}

		if filterClients && !wanted[clientID] {
			continue
		}

		label := "no CUPS"
		if cups != nil && *cups != "" {
			label = *cups
		}

		options = append(options, models.LookupOption{Value: id, Label: label, Subtitle: state})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contract options: %w", err)
	}

	return options, nil
}

// collectOptions drains a result set through a per-row scan function.
func collectOptions(rows pgx.Rows, scan func(pgx.Rows) (models.LookupOption, error)) ([]models.LookupOption, error) {
	options := make([]models.LookupOption, 0, 16)

	for rows.Next() {
		o, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lookup option: %w", err)
		}

		options = append(options, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lookup options: %w", err)
	}

	return options, nil
}
