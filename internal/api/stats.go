package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/dbpool"
)

// StatsHandler serves the CRM statistics endpoint.
type StatsHandler struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given dependencies.
func NewStatsHandler(pool *dbpool.Pool, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{pool: pool, log: log}
}

// statsResponse is the JSON payload returned by the stats endpoint.
type statsResponse struct {
	Clients         int `json:"clients"`
	SupplyPoints    int `json:"supply_points"`
	Contracts       int `json:"contracts"`
	ActiveContracts int `json:"active_contracts"`
	Invoices        int `json:"invoices"`
	UnpaidInvoices  int `json:"unpaid_invoices"`
	ActivityEntries int `json:"activity_entries"`
}

// GetStats handles GET /api/v1/stats — returns aggregate CRM statistics.
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	// Read-only transaction so all counts come from one snapshot.
	tx, err := h.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		h.log.WithError(err).Error("stats: begin tx")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	var resp statsResponse

	// Single consolidated query for all counts.
	if err := tx.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM clients WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM supply_points WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM contracts WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM contracts WHERE deleted_at IS NULL AND state = 'active'),
			(SELECT COUNT(*) FROM invoices WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM invoices WHERE deleted_at IS NULL AND NOT paid),
			(SELECT COUNT(*) FROM activity_log)`,
	).Scan(
		&resp.Clients, &resp.SupplyPoints,
		&resp.Contracts, &resp.ActiveContracts,
		&resp.Invoices, &resp.UnpaidInvoices,
		&resp.ActivityEntries,
	); err != nil {
		h.log.WithError(err).Error("stats: consolidated query")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, resp)
}
