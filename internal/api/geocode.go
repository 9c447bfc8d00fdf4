package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/service"
)

// GeocodeHandler serves the address resolution endpoint.
type GeocodeHandler struct {
	repo GeocodeRepository
	log  *logrus.Logger
}

// NewGeocodeHandler creates a GeocodeHandler.
func NewGeocodeHandler(repo GeocodeRepository, log *logrus.Logger) *GeocodeHandler {
	return &GeocodeHandler{repo: repo, log: log}
}

// Resolve handles GET /api/v1/geocode?q=<address>.
func (h *GeocodeHandler) Resolve(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "q parameter is required")

		return
	}

	result, err := h.repo.Resolve(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrNoMatch) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "no match for address")

			return
		}

		h.log.WithError(err).Error("resolving address")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, result)
}
