package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// InvoiceHandler serves the invoice endpoints.
type InvoiceHandler struct {
	repo InvoiceRepository
	log  *logrus.Logger
}

// NewInvoiceHandler creates an InvoiceHandler.
func NewInvoiceHandler(repo InvoiceRepository, log *logrus.Logger) *InvoiceHandler {
	return &InvoiceHandler{repo: repo, log: log}
}

// Create handles POST /api/v1/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	invoice, err := h.repo.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.respondInvoiceError(c, err, "creating invoice")

		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// Get handles GET /api/v1/invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	invoice, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.respondInvoiceError(c, err, "loading invoice")

		return
	}

	c.JSON(http.StatusOK, invoice)
}

// ListByClient handles GET /api/v1/clients/:id/invoices.
func (h *InvoiceHandler) ListByClient(c *gin.Context) {
	clientID := c.Param("id")
	if err := validatePathID(clientID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	invoices, err := h.repo.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.respondInvoiceError(c, err, "listing invoices")

		return
	}

	if invoices == nil {
		invoices = []models.Invoice{}
	}

	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// MarkPaid handles POST /api/v1/invoices/:id/pay.
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	invoice, err := h.repo.MarkPaid(c.Request.Context(), actor, id)
	if err != nil {
		h.respondInvoiceError(c, err, "marking invoice paid")

		return
	}

	c.JSON(http.StatusOK, invoice)
}

// Delete handles DELETE /api/v1/invoices/:id.
func (h *InvoiceHandler) Delete(c *gin.Context) {
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
		h.respondInvoiceError(c, err, "deleting invoice")

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandler) respondInvoiceError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, models.ErrInvoiceNotFound), errors.Is(err, models.ErrClientNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateKey):
		respondError(c, http.StatusConflict, ErrCodeConflict, "an invoice with this number already exists")
	case isValidationError(err):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	default:
		h.log.WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
