package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// ContractHandler serves the contract CRUD endpoints.
type ContractHandler struct {
	repo ContractRepository
	log  *logrus.Logger
}

// NewContractHandler creates a ContractHandler.
func NewContractHandler(repo ContractRepository, log *logrus.Logger) *ContractHandler {
	return &ContractHandler{repo: repo, log: log}
}

// Create handles POST /api/v1/contracts.
func (h *ContractHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req models.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	contract, err := h.repo.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.respondContractError(c, err, "creating contract")

		return
	}

	c.JSON(http.StatusCreated, contract)
}

// Get handles GET /api/v1/contracts/:id.
func (h *ContractHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	contract, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.respondContractError(c, err, "loading contract")

		return
	}

	c.JSON(http.StatusOK, contract)
}

// ListByClient handles GET /api/v1/clients/:id/contracts.
func (h *ContractHandler) ListByClient(c *gin.Context) {
	clientID := c.Param("id")
	if err := validatePathID(clientID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	contracts, err := h.repo.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.respondContractError(c, err, "listing contracts")

		return
	}

	if contracts == nil {
		contracts = []models.Contract{}
	}

	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

// Update handles PATCH /api/v1/contracts/:id.
func (h *ContractHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	contract, err := h.repo.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.respondContractError(c, err, "updating contract")

		return
	}

	c.JSON(http.StatusOK, contract)
}

// Delete handles DELETE /api/v1/contracts/:id.
func (h *ContractHandler) Delete(c *gin.Context) {
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
		h.respondContractError(c, err, "deleting contract")

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ContractHandler) respondContractError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, models.ErrContractNotFound),
		errors.Is(err, models.ErrClientNotFound),
		errors.Is(err, models.ErrPointNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateKey):
		respondError(c, http.StatusConflict, ErrCodeConflict, "contract already exists")
	case isValidationError(err):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	default:
		h.log.WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
