package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// ClientHandler serves the client CRUD endpoints.
type ClientHandler struct {
	repo ClientRepository
	log  *logrus.Logger
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(repo ClientRepository, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{repo: repo, log: log}
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	client, err := h.repo.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.respondClientError(c, err, "creating client")

		return
	}

	c.JSON(http.StatusCreated, client)
}

// Get handles GET /api/v1/clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	client, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.respondClientError(c, err, "loading client")

		return
	}

	c.JSON(http.StatusOK, client)
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(c *gin.Context) {
	limit := parseInt(c.Query("limit"), 50)
	offset := parseOffset(c.Query("offset"))

	clients, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondClientError(c, err, "listing clients")

		return
	}

	if clients == nil {
		clients = []models.Client{}
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients, "limit": limit, "offset": offset})
}

// Update handles PATCH /api/v1/clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	client, err := h.repo.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.respondClientError(c, err, "updating client")

		return
	}

	c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /api/v1/clients/:id.
func (h *ClientHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.repo.Delete(c.Request.Context(), actor, id); err != nil {
		h.respondClientError(c, err, "deleting client")

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) respondClientError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, models.ErrClientNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateKey):
		respondError(c, http.StatusConflict, ErrCodeConflict, "a client with this tax id already exists")
	case isValidationError(err):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	default:
		h.log.WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
