package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// ActivityHandler serves the activity log endpoints: search, manual notes,
// CSV export, and the filter-control lookups.
type ActivityHandler struct {
	repo ActivityRepository
	log  *logrus.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(repo ActivityRepository, log *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{repo: repo, log: log}
}

// Search handles POST /api/v1/activity/search.
func (h *ActivityHandler) Search(c *gin.Context) {
	var req models.SearchActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	result, err := h.repo.QueryPage(c.Request.Context(), req.Filter, req.Page)
	if err != nil {
		if errors.Is(err, models.ErrSubjectModeConflict) || errors.Is(err, models.ErrUnknownSubjectMode) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		h.log.WithError(err).Error("searching activity log")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateNote handles POST /api/v1/activity/notes.
func (h *ActivityHandler) CreateNote(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	entry, err := h.repo.AddNote(c.Request.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyNote):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		case errors.Is(err, models.ErrNoActor):
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
		default:
			h.log.WithError(err).Error("creating note")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusCreated, entry)
}

// Export handles POST /api/v1/activity/export. The filter travels in the
// body like Search; the response streams CSV.
func (h *ActivityHandler) Export(c *gin.Context) {
	var spec models.FilterSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	filename := "activity-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	written, err := h.repo.ExportCSV(c.Request.Context(), spec, c.Writer)
	if err != nil {
		if errors.Is(err, models.ErrSubjectModeConflict) || errors.Is(err, models.ErrUnknownSubjectMode) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		// Headers may already be sent; log and give up mid-stream.
		h.log.WithError(err).WithField("written", written).Error("exporting activity log")

		return
	}

	h.log.WithField("rows", written).Info("activity.export")
}

// LookupUsers handles GET /api/v1/lookups/users.
func (h *ActivityHandler) LookupUsers(c *gin.Context) {
	h.respondOptions(c, "users")(h.repo.UserOptions(c.Request.Context()))
}

// LookupClients handles GET /api/v1/lookups/clients.
func (h *ActivityHandler) LookupClients(c *gin.Context) {
	h.respondOptions(c, "clients")(h.repo.ClientOptions(c.Request.Context()))
}

// LookupPoints handles GET /api/v1/lookups/points. An empty client_ids
// parameter means no restriction.
func (h *ActivityHandler) LookupPoints(c *gin.Context) {
	clientIDs := parseIDList(c.Query("client_ids"))
	h.respondOptions(c, "points")(h.repo.PointOptions(c.Request.Context(), clientIDs))
}

// LookupContracts handles GET /api/v1/lookups/contracts. Empty id-set
// parameters mean no restriction.
func (h *ActivityHandler) LookupContracts(c *gin.Context) {
	pointIDs := parseIDList(c.Query("point_ids"))
	clientIDs := parseIDList(c.Query("client_ids"))
	h.respondOptions(c, "contracts")(h.repo.ContractOptions(c.Request.Context(), pointIDs, clientIDs))
}

// respondOptions returns a closure that writes a lookup response or a 500.
func (h *ActivityHandler) respondOptions(c *gin.Context, kind string) func([]models.LookupOption, error) {
	return func(options []models.LookupOption, err error) {
		if err != nil {
			h.log.WithError(err).WithField("lookup", kind).Error("loading lookup options")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

			return
		}

		if options == nil {
			options = []models.LookupOption{}
		}

		c.JSON(http.StatusOK, gin.H{"options": options})
	}
}

// parseIDList splits a comma-separated id list, dropping empty elements so
// "?client_ids=" behaves as no restriction.
func parseIDList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}

	if len(ids) == 0 {
		return nil
	}

	return ids
}
