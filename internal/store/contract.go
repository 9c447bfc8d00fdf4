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

// ContractStore provides data access for contracts.
type ContractStore struct {
	Base
}

// NewContractStore creates a ContractStore.
func NewContractStore(base Base) *ContractStore {
	return &ContractStore{Base: base}
}

const contractColumns = `id, client_id, supply_point_id, rate_code, state,
	signed_at, starts_on, ends_on, deleted_at, created_at, updated_at`

func scanContract(row pgx.Row) (*models.Contract, error) {
	var c models.Contract

	err := row.Scan(
		&c.ID, &c.ClientID, &c.PointID, &c.RateCode, &c.State,
		&c.SignedAt, &c.StartsOn, &c.EndsOn, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrContractNotFound
		}

		return nil, fmt.Errorf("scanning contract: %w", err)
	}

	return &c, nil
}

// Create inserts a new contract. New contracts default to the draft state.
func (s *ContractStore) Create(ctx context.Context, req models.CreateContractRequest) (*models.Contract, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	state := req.State
	if state == "" {
		state = models.ContractDraft
	}

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO contracts (client_id, supply_point_id, rate_code, state, signed_at, starts_on, ends_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, contractColumns),
		req.ClientID, req.PointID, req.RateCode, state, req.SignedAt, req.StartsOn, req.EndsOn,
	)

	return scanContract(row)
}

// Get returns one contract by id, including soft-deleted rows.
func (s *ContractStore) Get(ctx context.Context, id string) (*models.Contract, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM contracts WHERE id = $1", contractColumns), id)

	return scanContract(row)
}

// ListByClient returns a client's non-deleted contracts, newest first.
func (s *ContractStore) ListByClient(ctx context.Context, clientID string) ([]models.Contract, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM contracts
		WHERE client_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`, contractColumns), clientID)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	contracts := make([]models.Contract, 0, 8)

	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}

		contracts = append(contracts, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}

	return contracts, nil
}

// Update applies the non-nil fields of req and returns the updated contract.
func (s *ContractStore) Update(ctx context.Context, id string, req models.UpdateContractRequest) (*models.Contract, error) {
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

	if req.RateCode != nil {
		set("rate_code", *req.RateCode)
	}
	if req.State != nil {
		set("state", *req.State)
	}
	if req.SignedAt != nil {
		set("signed_at", *req.SignedAt)
	}
	if req.StartsOn != nil {
		set("starts_on", *req.StartsOn)
	}
	if req.EndsOn != nil {
		set("ends_on", *req.EndsOn)
	}

	if len(sets) == 0 {
		return s.Get(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE contracts SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s`, strings.Join(sets, ", "), argIdx, contractColumns), args...)

	return scanContract(row)
}

// Delete soft-deletes a contract.
func (s *ContractStore) Delete(ctx context.Context, id string) (*models.Contract, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE contracts SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s`, contractColumns), id)

	return scanContract(row)
}
