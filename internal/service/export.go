package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/enerlink/enerlink/internal/models"
)

// exportPageSize is the internal page size used when streaming an export.
const exportPageSize = models.MaxPageSize

// ExportCSV streams every entry matching the filter to w as CSV, walking the
// log page by page so exports never hold the full result set in memory.
func (s *ActivityService) ExportCSV(ctx context.Context, spec models.FilterSpec, w io.Writer) (int64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)

	header := []string{
		"id", "created_at", "event_kind", "entity_kind", "entity_id", "entity_label",
		"actor_name", "actor_surname", "actor_email",
		"client_id", "client_name", "supply_point_id", "point_cups", "contract_id", "note",
	}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing export header: %w", err)
	}

	var written int64

	for page := 0; ; page++ {
		res, err := s.store.QueryPage(ctx, spec, models.PageRequest{Page: page, Size: exportPageSize})
		if err != nil {
			return written, err
		}

		for _, e := range res.Entries {
			record := []string{
				strconv.FormatInt(e.ID, 10),
				e.CreatedAt.Format(time.RFC3339),
				e.EventKind,
				e.EntityKind,
				e.EntityID,
				e.EntityLabel,
				e.ActorName,
				e.ActorSurname,
				e.ActorEmail,
				deref(e.ClientID),
				e.ClientName,
				deref(e.PointID),
				e.PointCUPS,
				deref(e.ContractID),
				e.Note,
			}
			if err := cw.Write(record); err != nil {
				return written, fmt.Errorf("writing export record: %w", err)
			}

			written++
		}

		if !res.HasMore {
			break
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("flushing export: %w", err)
	}

	return written, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
