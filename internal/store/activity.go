package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/enerlink/enerlink/internal/models"
)

// ActivityStore provides data access for the append-only activity_log table.
type ActivityStore struct {
	Base
}

// NewActivityStore creates an ActivityStore.
func NewActivityStore(base Base) *ActivityStore {
	return &ActivityStore{Base: base}
}

// activityColumns lists the activity_log columns selected for page queries,
// plus the live-join display columns resolved from the related tables.
const activityColumns = `a.id, a.client_id, a.supply_point_id, a.contract_id,
	a.user_id, a.actor_name, a.actor_surname, a.actor_email,
	a.event_kind, a.entity_kind, a.entity_id, a.entity_label,
	a.diff, a.note, a.created_at,
	c.name, sp.cups, sp.address, ct.state`

// activityJoins resolves current display fields for linked rows. These
// enrich the response only; the snapshot columns on activity_log itself are
// never rewritten from them.
const activityJoins = ` LEFT JOIN clients c ON c.id = a.client_id
	LEFT JOIN supply_points sp ON sp.id = a.supply_point_id
	LEFT JOIN contracts ct ON ct.id = a.contract_id`

// buildActivityFilter translates a FilterSpec into a WHERE clause and
// positional args. It is a pure transformation: any combination of empty
// fields is valid, and an entirely empty spec yields no restriction.
//
// The subject id-sets combine with OR across the three axes — an entry
// linked to a requested supply point matches even when it is not linked to
// any requested client. Callers rely on that union semantics.
func buildActivityFilter(f models.FilterSpec) (where string, args []any, nextArg int) {
	var conditions []string
	argIdx := 1

	arg := func(v any) string {
		args = append(args, v)
		p := "$" + strconv.Itoa(argIdx)
		argIdx++

		return p
	}

	switch f.Subject.Mode {
	case models.SubjectModeLegacy:
		if f.Subject.ClientID != "" {
			conditions = append(conditions, "a.client_id = "+arg(f.Subject.ClientID))
		}
	default:
		var ors []string

		if len(f.Subject.ClientIDs) > 0 {
			ors = append(ors, "a.client_id = ANY("+arg(f.Subject.ClientIDs)+")")
		}
		if len(f.Subject.PointIDs) > 0 {
			ors = append(ors, "a.supply_point_id = ANY("+arg(f.Subject.PointIDs)+")")
		}
		if len(f.Subject.ContractIDs) > 0 {
			ors = append(ors, "a.contract_id = ANY("+arg(f.Subject.ContractIDs)+")")
		}

		if len(ors) > 0 {
			conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
		}
	}

	if len(f.EventKinds) > 0 {
		conditions = append(conditions, "a.event_kind = ANY("+arg(f.EventKinds)+")")
	}
	if len(f.EntityKinds) > 0 {
		conditions = append(conditions, "a.entity_kind = ANY("+arg(f.EntityKinds)+")")
	}
	if f.EntityID != "" {
		conditions = append(conditions, "a.entity_id = "+arg(f.EntityID))
	}
	if f.UserID != "" {
		conditions = append(conditions, "a.user_id = "+arg(f.UserID))
	}
	if f.From != nil {
		conditions = append(conditions, "a.created_at >= "+arg(*f.From))
	}
	if f.To != nil {
		conditions = append(conditions, "a.created_at <= "+arg(*f.To))
	}

	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	return where, args, argIdx
}

// QueryPage returns one page of activity entries matching the filter,
// ordered newest-first, together with the exact total match count.
func (s *ActivityStore) QueryPage(
	ctx context.Context, spec models.FilterSpec, page models.PageRequest,
) (*models.PageResult, error) {
	page = page.Normalize()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning activity read: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	where, args, argIdx := buildActivityFilter(spec)

	var total int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM activity_log a"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting activity entries: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM activity_log a%s%s ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d",
		activityColumns, activityJoins, where, argIdx, argIdx+1,
	)
	args = append(args, page.Size, page.Offset())

	entries, err := s.scanActivityRows(ctx, tx, query, args)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing activity read: %w", err)
	}

	return &models.PageResult{
		Entries:    entries,
		TotalCount: total,
		HasMore:    page.HasMore(total),
	}, nil
}

// scanActivityRows executes a page query and scans the result set.
func (s *ActivityStore) scanActivityRows(
	ctx context.Context, tx pgx.Tx, query string, args []any,
) ([]models.ActivityEntry, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity log: %w", err)
	}
	defer rows.Close()

	entries := make([]models.ActivityEntry, 0, 16)

	for rows.Next() {
		var (
			e          models.ActivityEntry
			diffJSON   []byte
			note       *string
			clientName *string
			pointCUPS  *string
			pointAddr  *string
			ctState    *string
		)

		if err := rows.Scan(
			&e.ID, &e.ClientID, &e.PointID, &e.ContractID,
			&e.UserID, &e.ActorName, &e.ActorSurname, &e.ActorEmail,
			&e.EventKind, &e.EntityKind, &e.EntityID, &e.EntityLabel,
			&diffJSON, &note, &e.CreatedAt,
			&clientName, &pointCUPS, &pointAddr, &ctState,
		); err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}

		if note != nil {
			e.Note = *note
		}
		if diffJSON != nil {
			if err := json.Unmarshal(diffJSON, &e.Diff); err != nil {
				s.Log.WithError(err).Warn("failed to unmarshal activity diff")
			}
		}
		if clientName != nil {
			e.ClientName = *clientName
		}
		if pointCUPS != nil {
			e.PointCUPS = *pointCUPS
		}
		if pointAddr != nil {
			e.PointAddress = *pointAddr
		}
		if ctState != nil {
			e.ContractState = *ctState
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity rows: %w", err)
	}

	return entries, nil
}

// Insert appends one entry to the activity log and returns it with the
// server-assigned id and timestamp. Entries are never updated or deleted.
func (s *ActivityStore) Insert(ctx context.Context, e models.ActivityEntry) (*models.ActivityEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var diffJSON []byte
	if e.Diff != nil {
		var err error
		if diffJSON, err = json.Marshal(e.Diff); err != nil {
			return nil, fmt.Errorf("marshaling activity diff: %w", err)
		}
	}

	var note *string
	if e.Note != "" {
		note = &e.Note
	}

	err := s.Pool.QueryRow(ctx, `
		INSERT INTO activity_log (
			client_id, supply_point_id, contract_id, user_id,
			actor_name, actor_surname, actor_email,
			event_kind, entity_kind, entity_id, entity_label, diff, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`,
		e.ClientID, e.PointID, e.ContractID, e.UserID,
		e.ActorName, e.ActorSurname, e.ActorEmail,
		e.EventKind, e.EntityKind, e.EntityID, e.EntityLabel, diffJSON, note,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting activity entry: %w", err)
	}

	s.notify("activity.created", map[string]any{
		"id":          e.ID,
		"event_kind":  e.EventKind,
		"entity_kind": e.EntityKind,
	})

	return &e, nil
}
