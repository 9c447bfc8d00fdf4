package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/enerlink/enerlink/internal/auth"
	"github.com/enerlink/enerlink/internal/models"
	"github.com/enerlink/enerlink/internal/security"
)

// mockUserStore serves a single configured user by email.
type mockUserStore struct {
	user *models.User
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.user == nil || m.user.Email != email {
		return nil, models.ErrUserNotFound
	}

	return m.user, nil
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, models.ErrUserNotFound
	}

	return m.user, nil
}

func newAuthService(t *testing.T, password string) (*AuthService, context.CancelFunc) {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	users := &mockUserStore{user: &models.User{
		ID:           "u1",
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: hash,
		Role:         models.RoleAgent,
		Active:       true,
	}}

	ctx, cancel := context.WithCancel(context.Background())
	guard := security.NewLoginGuard(ctx, testLog())
	tokens := auth.NewManager("0123456789abcdef0123456789abcdef", time.Hour)

	return NewAuthService(users, tokens, guard, testLog()), cancel
}

func TestLoginSuccess(t *testing.T) {
	s, cancel := newAuthService(t, "correct horse")
	defer cancel()

	token, user, err := s.Login(context.Background(), models.LoginRequest{
		Email:    "ana@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if token == "" {
		t.Error("token is empty")
	}
	if user.ID != "u1" {
		t.Errorf("user.ID = %q, want u1", user.ID)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	s, cancel := newAuthService(t, "pw")
	defer cancel()

	_, _, err := s.Login(context.Background(), models.LoginRequest{
		Email:    "  ANA@example.com ",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Login with unnormalized email: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s, cancel := newAuthService(t, "right")
	defer cancel()

	_, _, err := s.Login(context.Background(), models.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	s, cancel := newAuthService(t, "pw")
	defer cancel()

	_, _, err := s.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "pw",
	})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	s, cancel := newAuthService(t, "right")
	defer cancel()

	ctx := context.Background()
	req := models.LoginRequest{Email: "ana@example.com", Password: "wrong"}

	for i := 0; i < security.LoginMaxAttempts; i++ {
		if _, _, err := s.Login(ctx, req); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	}

	// Even the right password is rejected while locked.
	_, _, err := s.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "right"})
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("err = %v, want ErrAccountLocked", err)
	}
}
