package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/enerlink/enerlink/internal/models"
)

// ClientStore provides data access for clients.
type ClientStore struct {
	Base
}

// NewClientStore creates a ClientStore.
func NewClientStore(base Base) *ClientStore {
	return &ClientStore{Base: base}
}

const clientColumns = `id, name, tax_id, email, phone, address,
	latitude, longitude, deleted_at, created_at, updated_at`

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client

	err := row.Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address,
		&c.Latitude, &c.Longitude, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrClientNotFound
		}

		return nil, fmt.Errorf("scanning client: %w", err)
	}

	return &c, nil
}

// Create inserts a new client.
func (s *ClientStore) Create(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO clients (name, tax_id, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, clientColumns),
		req.Name, req.TaxID, req.Email, req.Phone, req.Address,
	)

	c, err := scanClient(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("creating client: %w", err)
	}

	return c, nil
}

// Get returns one client by id, including soft-deleted rows so activity
// entries can still resolve their subject.
func (s *ClientStore) Get(ctx context.Context, id string) (*models.Client, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM clients WHERE id = $1", clientColumns), id)

	return scanClient(row)
}

// List returns non-deleted clients ordered by name.
func (s *ClientStore) List(ctx context.Context, limit, offset int) ([]models.Client, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM clients
		WHERE deleted_at IS NULL
		ORDER BY name
		LIMIT $1 OFFSET $2`, clientColumns), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	clients := make([]models.Client, 0, 16)

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}

		clients = append(clients, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}

	return clients, nil
}

// Update applies the non-nil fields of req and returns the updated client.
func (s *ClientStore) Update(ctx context.Context, id string, req models.UpdateClientRequest) (*models.Client, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var (
		sets   []string
		args   []any
		argIdx = 1
	)

	set := func(column string, v any) {
		sets = append(sets, column+" = $"+strconv.Itoa(argIdx))
		args = append(args, v)
		argIdx++
	}

	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.TaxID != nil {
		set("tax_id", *req.TaxID)
	}
	if req.Email != nil {
		set("email", *req.Email)
	}
	if req.Phone != nil {
		set("phone", *req.Phone)
	}
	if req.Address != nil {
		set("address", *req.Address)
	}

	if len(sets) == 0 {
		return s.Get(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE clients SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s`, strings.Join(sets, ", "), argIdx, clientColumns), args...)

	return scanClient(row)
}

// SetCoordinates stores resolved geolocation for a client (best-effort
// enrichment, separate from Update so geocoding never races user edits).
func (s *ClientStore) SetCoordinates(ctx context.Context, id string, lat, lon float64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `
		UPDATE clients SET latitude = $1, longitude = $2, updated_at = now()
		WHERE id = $3 AND deleted_at IS NULL`, lat, lon, id)
	if err != nil {
		return fmt.Errorf("setting client coordinates: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrClientNotFound
	}

	return nil
}

// Delete soft-deletes a client. Activity entries referencing it are kept.
func (s *ClientStore) Delete(ctx context.Context, id string) (*models.Client, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE clients SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s`, clientColumns), id)

	return scanClient(row)
}
