package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/enerlink/enerlink/internal/api"
	"github.com/enerlink/enerlink/internal/models"
	"github.com/enerlink/enerlink/internal/service"
)

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	repo := &mockAuthRepo{
		loginFn: func(_ context.Context, req models.LoginRequest) (string, *models.User, error) {
			if req.Email != "ana@example.com" {
				t.Errorf("unexpected email %q", req.Email)
			}

			return "token-123", &models.User{ID: "u1", Email: req.Email, Role: models.RoleAgent}, nil
		},
	}

	r := newPlainRouter()
	h := api.NewAuthHandler(repo, testLogger())
	r.POST("/auth/login", h.Login)

	w := doRequest(r, http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"secret"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.Token != "token-123" || body.User.ID != "u1" {
		t.Errorf("unexpected response: %+v", body)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	repo := &mockAuthRepo{
		loginFn: func(_ context.Context, _ models.LoginRequest) (string, *models.User, error) {
			return "", nil, models.ErrInvalidCredentials
		},
	}

	r := newPlainRouter()
	h := api.NewAuthHandler(repo, testLogger())
	r.POST("/auth/login", h.Login)

	w := doRequest(r, http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"wrong"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLogin_AccountLocked(t *testing.T) {
	t.Parallel()

	repo := &mockAuthRepo{
		loginFn: func(_ context.Context, _ models.LoginRequest) (string, *models.User, error) {
			return "", nil, service.ErrAccountLocked
		},
	}

	r := newPlainRouter()
	h := api.NewAuthHandler(repo, testLogger())
	r.POST("/auth/login", h.Login)

	w := doRequest(r, http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"secret"}`)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMe_ReturnsActor(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewAuthHandler(&mockAuthRepo{}, testLogger())
	r.GET("/me", h.Me)

	w := doRequest(r, http.MethodGet, "/me", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var actor models.ActorContext
	if err := json.Unmarshal(w.Body.Bytes(), &actor); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if actor.UserID != testActor().UserID {
		t.Errorf("unexpected actor: %+v", actor)
	}
}
