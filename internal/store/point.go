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

// PointStore provides data access for supply points.
type PointStore struct {
	Base
}

// NewPointStore creates a PointStore.
func NewPointStore(base Base) *PointStore {
	return &PointStore{Base: base}
}

const pointColumns = `id, client_id, cups, address, tariff, utility_type,
	deleted_at, created_at, updated_at`

func scanPoint(row pgx.Row) (*models.SupplyPoint, error) {
	var p models.SupplyPoint

	err := row.Scan(
		&p.ID, &p.ClientID, &p.CUPS, &p.Address, &p.Tariff, &p.UtilityType,
		&p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPointNotFound
		}

		return nil, fmt.Errorf("scanning supply point: %w", err)
	}

	return &p, nil
}

// Create registers a supply point. The CUPS code is globally unique.
func (s *PointStore) Create(ctx context.Context, req models.CreateSupplyPointRequest) (*models.SupplyPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	utilityType := req.UtilityType
	if utilityType == "" {
		utilityType = models.UtilityPower
	}

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO supply_points (client_id, cups, address, tariff, utility_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, pointColumns),
		req.ClientID, req.CUPS, req.Address, req.Tariff, utilityType,
	)

	p, err := scanPoint(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("creating supply point: %w", err)
	}

	return p, nil
}

// Get returns one supply point by id, including soft-deleted rows.
func (s *PointStore) Get(ctx context.Context, id string) (*models.SupplyPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM supply_points WHERE id = $1", pointColumns), id)

	return scanPoint(row)
}

// ListByClient returns a client's non-deleted supply points ordered by CUPS.
func (s *PointStore) ListByClient(ctx context.Context, clientID string) ([]models.SupplyPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM supply_points
		WHERE client_id = $1 AND deleted_at IS NULL
		ORDER BY cups`, pointColumns), clientID)
	if err != nil {
		return nil, fmt.Errorf("listing supply points: %w", err)
	}
	defer rows.Close()

	points := make([]models.SupplyPoint, 0, 8)

	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, err
		}

		points = append(points, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating supply points: %w", err)
	}

	return points, nil
}

// Update applies the non-nil fields of req and returns the updated point.
func (s *PointStore) Update(ctx context.Context, id string, req models.UpdateSupplyPointRequest) (*models.SupplyPoint, error) {
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

	if req.Address != nil {
		set("address", *req.Address)
	}
	if req.Tariff != nil {
		set("tariff", *req.Tariff)
	}

	if len(sets) == 0 {
		return s.Get(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE supply_points SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s`, strings.Join(sets, ", "), argIdx, pointColumns), args...)

	return scanPoint(row)
}

// Delete soft-deletes a supply point.
func (s *PointStore) Delete(ctx context.Context, id string) (*models.SupplyPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE supply_points SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s`, pointColumns), id)

	return scanPoint(row)
}
