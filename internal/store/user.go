package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/enerlink/enerlink/internal/models"
)

// UserStore provides data access for user accounts.
type UserStore struct {
	Base
}

// NewUserStore creates a UserStore.
func NewUserStore(base Base) *UserStore {
	return &UserStore{Base: base}
}

const userColumns = `id, name, surname, email, password_hash, role, active,
	deleted_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User

	err := row.Scan(
		&u.ID, &u.Name, &u.Surname, &u.Email, &u.PasswordHash, &u.Role, &u.Active,
		&u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}

		return nil, fmt.Errorf("scanning user: %w", err)
	}

	return &u, nil
}

// GetByEmail returns the active, non-deleted user with the given email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		WHERE email = $1 AND active AND deleted_at IS NULL`, userColumns), email)

	return scanUser(row)
}

// GetByID returns one user by id, including inactive and soft-deleted rows.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns), id)

	return scanUser(row)
}

// EmailByID returns a user's email, or "" when the user cannot be found.
// Lookup failures are logged, never surfaced; callers use this to enrich
// activity snapshots and must proceed without it.
func (s *UserStore) EmailByID(ctx context.Context, id string) string {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var email string

	err := s.Pool.QueryRow(ctx, "SELECT email FROM users WHERE id = $1", id).Scan(&email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.Log.WithError(err).WithField("user_id", id).Warn("failed to resolve user email")
		}

		return ""
	}

	return email
}

// Create inserts a new user account with an already-hashed password.
func (s *UserStore) Create(ctx context.Context, u models.User) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	role := u.Role
	if role == "" {
		role = models.RoleAgent
	}

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO users (name, surname, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, userColumns),
		u.Name, u.Surname, u.Email, u.PasswordHash, role,
	)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("creating user: %w", err)
	}

	return created, nil
}
