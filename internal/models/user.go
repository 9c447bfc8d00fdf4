package models

import (
	"strings"
	"time"
)

// User roles, from least to most privileged.
const (
	RoleAgent   = "agent"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User is a CRM operator account. PasswordHash is never serialized.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Surname      string     `json:"surname,omitempty"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DisplayName returns "name surname", falling back to the email when both
// name fields are empty.
func (u User) DisplayName() string {
	full := strings.TrimSpace(u.Name + " " + u.Surname)
	if full == "" {
		return u.Email
	}

	return full
}

// Actor returns the actor context snapshot for this user.
func (u User) Actor() ActorContext {
	return ActorContext{
		UserID:  u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
		Role:    u.Role,
	}
}

// LoginRequest is the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
