package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// PointHandler serves the supply point CRUD endpoints.
type PointHandler struct {
	repo PointRepository
	log  *logrus.Logger
}

// NewPointHandler creates a PointHandler.
func NewPointHandler(repo PointRepository, log *logrus.Logger) *PointHandler {
	return &PointHandler{repo: repo, log: log}
}

// Create handles POST /api/v1/points.
func (h *PointHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req models.CreateSupplyPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	point, err := h.repo.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.respondPointError(c, err, "creating supply point")

		return
	}

	c.JSON(http.StatusCreated, point)
}

// Get handles GET /api/v1/points/:id.
func (h *PointHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	point, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.respondPointError(c, err, "loading supply point")

		return
	}

	c.JSON(http.StatusOK, point)
}

// ListByClient handles GET /api/v1/clients/:id/points.
func (h *PointHandler) ListByClient(c *gin.Context) {
	clientID := c.Param("id")
	if err := validatePathID(clientID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	points, err := h.repo.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.respondPointError(c, err, "listing supply points")

		return
	}

	if points == nil {
		points = []models.SupplyPoint{}
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

// Update handles PATCH /api/v1/points/:id.
func (h *PointHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateSupplyPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	point, err := h.repo.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.respondPointError(c, err, "updating supply point")

		return
	}

	c.JSON(http.StatusOK, point)
}

// Delete handles DELETE /api/v1/points/:id.
func (h *PointHandler) Delete(c *gin.Context) {
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
		h.respondPointError(c, err, "deleting supply point")

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PointHandler) respondPointError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, models.ErrPointNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrClientNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateKey):
		respondError(c, http.StatusConflict, ErrCodeConflict, "a supply point with this cups already exists")
	case isValidationError(err):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	default:
		h.log.WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
