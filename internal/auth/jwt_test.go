package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/enerlink/enerlink/internal/auth"
	"github.com/enerlink/enerlink/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *models.User {
	return &models.User{
		ID:      "user-1",
		Name:    "Ana",
		Surname: "Torres",
		Email:   "ana@example.com",
		Role:    models.RoleAgent,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	m := auth.NewManager(testSecret, time.Hour)

	token, err := m.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Role != models.RoleAgent {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleAgent)
	}

	actor := claims.Actor()
	if actor.Email != "ana@example.com" {
		t.Errorf("Actor().Email = %q, want ana@example.com", actor.Email)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	m := auth.NewManager(testSecret, -time.Minute)

	token, err := m.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := m.Validate(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Validate(expired) = %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewManager(testSecret, time.Hour).Generate(testUser())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	other := auth.NewManager("another-secret-another-secret-00", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Validate(wrong secret) = %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := auth.NewManager(testSecret, time.Hour)

	if _, err := m.Validate("not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Validate(garbage) = %v, want ErrInvalidToken", err)
	}
}
