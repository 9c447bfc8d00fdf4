package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/enerlink/enerlink/internal/auth"
	"github.com/enerlink/enerlink/internal/models"
	"github.com/enerlink/enerlink/internal/security"
)

// UserStore is the data-access interface AuthService depends on.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ErrAccountLocked indicates the account is temporarily locked after
// repeated login failures.
var ErrAccountLocked = errors.New("account temporarily locked")

// AuthService authenticates users and issues session tokens.
type AuthService struct {
	users  UserStore
	tokens *auth.Manager
	guard  *security.LoginGuard
	log    *logrus.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users UserStore, tokens *auth.Manager, guard *security.LoginGuard, log *logrus.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, guard: guard, log: log}
}

// Login verifies credentials and returns a signed session token plus the
// authenticated user. Failures are indistinguishable between unknown email
// and wrong password.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return "", nil, models.ErrInvalidCredentials
	}

	if s.guard.IsBlocked(email) {
		return "", nil, ErrAccountLocked
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.guard.RecordFailure(email)

			return "", nil, models.ErrInvalidCredentials
		}

		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.guard.RecordFailure(email)

		return "", nil, models.ErrInvalidCredentials
	}

	s.guard.Reset(email)

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("auth.login")

	return token, user, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
