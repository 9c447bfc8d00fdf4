// Package store provides focused, single-concern data access stores for the
// enerlink CRM.
//
// Each store owns one domain (activity log, clients, supply points,
// contracts, invoices, users, geocode cache) and embeds shared helpers
// (Pool, logger) via the Base struct. Stores never import each other —
// shared logic lives in this file or in scan.go.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// notify sends a pg_notify on the crm_activity channel (best-effort, post-commit).
func (b *Base) notify(eventType string, fields map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	body := map[string]any{"type": eventType}
	for k, v := range fields {
		body[k] = v
	}

	payload, _ := json.Marshal(body) //nolint:errcheck // static keys, cannot fail.
	if _, err := b.Pool.Exec(ctx, "SELECT pg_notify('crm_activity', $1)", string(payload)); err != nil {
		b.Log.WithError(err).Warn("failed to send " + eventType + " notification")
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
