package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
	"github.com/enerlink/enerlink/internal/service"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	repo AuthRepository
	log  *logrus.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(repo AuthRepository, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{repo: repo, log: log}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	token, user, err := h.repo.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountLocked):
			respondError(c, http.StatusTooManyRequests, ErrCodeAccountLocked, "too many failed attempts, try again later")
		case errors.Is(err, models.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
		default:
			h.log.WithError(err).Error("login failed")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me handles GET /api/v1/me, returning the actor snapshot from the token.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, actor)
}
