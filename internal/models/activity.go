package models

import "time"

// Event kinds recorded in the activity log.
const (
	EventCreation   = "creation"
	EventEdit       = "edit"
	EventDeletion   = "deletion"
	EventManualNote = "manual_note"
)

// Entity kinds an activity entry can describe.
const (
	EntityClient      = "client"
	EntitySupplyPoint = "supply_point"
	EntityContract    = "contract"
	EntityDocument    = "document"
	EntityInvoice     = "invoice"
)

// ActorContext identifies the authenticated user performing an operation.
// It is passed explicitly into every write path; nothing reads ambient
// session state.
type ActorContext struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// ActivityEntry is one immutable record in the activity log. Entries are
// append-only: the actor and entity label columns are snapshotted at write
// time so historical entries stay readable after the referenced rows change.
// The Client/Point/Contract display fields are resolved by a live join at
// read time and are never written back.
type ActivityEntry struct {
	ID           int64          `json:"id"`
	ClientID     *string        `json:"client_id,omitempty"`
	PointID      *string        `json:"supply_point_id,omitempty"`
	ContractID   *string        `json:"contract_id,omitempty"`
	UserID       string         `json:"user_id"`
	ActorName    string         `json:"actor_name"`
	ActorSurname string         `json:"actor_surname"`
	ActorEmail   string         `json:"actor_email"`
	EventKind    string         `json:"event_kind"`
	EntityKind   string         `json:"entity_kind"`
	EntityID     string         `json:"entity_id"`
	EntityLabel  string         `json:"entity_label,omitempty"`
	Diff         map[string]any `json:"diff,omitempty"`
	Note         string         `json:"note,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`

	ClientName    string `json:"client_name,omitempty"`
	PointCUPS     string `json:"point_cups,omitempty"`
	PointAddress  string `json:"point_address,omitempty"`
	ContractState string `json:"contract_state,omitempty"`
}

// Subject filter modes. The legacy single-client filter and the hierarchical
// id-set filter are mutually exclusive, so the union is tagged rather than
// inferred from field presence.
const (
	SubjectModeLegacy       = "legacy"
	SubjectModeHierarchical = "hierarchical"
)

// SubjectFilter restricts entries by the rows they are linked to.
// In hierarchical mode the three id-sets combine with OR: an entry matches
// if it satisfies ANY supplied set, not all of them.
type SubjectFilter struct {
	Mode        string   `json:"mode,omitempty"`
	ClientID    string   `json:"client_id,omitempty"`
	ClientIDs   []string `json:"client_ids,omitempty"`
	PointIDs    []string `json:"point_ids,omitempty"`
	ContractIDs []string `json:"contract_ids,omitempty"`
}

// FilterSpec describes one activity log query. Every field is optional; the
// zero value matches every entry.
type FilterSpec struct {
	Subject     SubjectFilter `json:"subject"`
	EventKinds  []string      `json:"event_kinds,omitempty"`
	EntityKinds []string      `json:"entity_kinds,omitempty"`
	EntityID    string        `json:"entity_id,omitempty"`
	UserID      string        `json:"user_id,omitempty"`
	From        *time.Time    `json:"from,omitempty"`
	To          *time.Time    `json:"to,omitempty"`
}

// Validate rejects subject filters that mix the legacy and hierarchical modes.
func (f FilterSpec) Validate() error {
	switch f.Subject.Mode {
	case "", SubjectModeHierarchical:
		if f.Subject.ClientID != "" {
			return ErrSubjectModeConflict
		}
	case SubjectModeLegacy:
		if len(f.Subject.ClientIDs) > 0 || len(f.Subject.PointIDs) > 0 || len(f.Subject.ContractIDs) > 0 {
			return ErrSubjectModeConflict
		}
	default:
		return ErrUnknownSubjectMode
	}

	return nil
}

// Pagination defaults and caps for activity queries.
const (
	DefaultPageSize = 30
	MaxPageSize     = 200
)

// PageRequest selects one zero-based page of results.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"page_size"`
}

// Normalize clamps the request to valid bounds: page >= 0, 1 <= size <= MaxPageSize.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}

	if p.Size < 1 {
		p.Size = DefaultPageSize
	}

	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}

	return p
}

// Offset returns the first row index covered by the page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// HasMore reports whether pages beyond this one exist for the given total.
func (p PageRequest) HasMore(total int64) bool {
	return int64(p.Page+1)*int64(p.Size) < total
}

// PageResult is one page of activity entries plus paging metadata.
type PageResult struct {
	Entries    []ActivityEntry `json:"entries"`
	TotalCount int64           `json:"total_count"`
	HasMore    bool            `json:"has_more"`
}

// LookupOption is one selectable value for the filter controls.
type LookupOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Subtitle string `json:"subtitle,omitempty"`
}

// CreateNoteRequest is the payload for adding a manual note to the log.
type CreateNoteRequest struct {
	ClientID *string `json:"client_id,omitempty"`
	Content  string  `json:"content"`
}

// SearchActivityRequest is the payload for querying the activity log.
type SearchActivityRequest struct {
	Filter FilterSpec  `json:"filter"`
	Page   PageRequest `json:"page"`
}
