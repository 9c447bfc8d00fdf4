// Package service implements the business logic of the enerlink CRM on top
// of the store layer: activity queries, manual notes, entity lifecycles, and
// the background activity recorder.
package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// ActivityStore is the data-access interface ActivityService depends on.
type ActivityStore interface {
	QueryPage(ctx context.Context, spec models.FilterSpec, page models.PageRequest) (*models.PageResult, error)
	Insert(ctx context.Context, e models.ActivityEntry) (*models.ActivityEntry, error)
}

// EmailResolver resolves a user id to an email, best-effort.
type EmailResolver interface {
	EmailByID(ctx context.Context, id string) string
}

// LookupStore serves the filter-control option lists.
type LookupStore interface {
	Users(ctx context.Context) ([]models.LookupOption, error)
	Clients(ctx context.Context) ([]models.LookupOption, error)
	SupplyPoints(ctx context.Context, clientIDs []string) ([]models.LookupOption, error)
	Contracts(ctx context.Context, pointIDs, clientIDs []string) ([]models.LookupOption, error)
}

// ActivityService answers activity log queries and writes manual notes.
type ActivityService struct {
	store   ActivityStore
	lookups LookupStore
	users   EmailResolver
	log     *logrus.Logger
}

// NewActivityService creates an ActivityService.
func NewActivityService(store ActivityStore, lookups LookupStore, users EmailResolver, log *logrus.Logger) *ActivityService {
	return &ActivityService{store: store, lookups: lookups, users: users, log: log}
}

// QueryPage validates the filter and returns one page of matching entries.
// Identical requests against an unchanged log return identical pages.
func (s *ActivityService) QueryPage(
	ctx context.Context, spec models.FilterSpec, page models.PageRequest,
) (*models.PageResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return s.store.QueryPage(ctx, spec, page.Normalize())
}

// AddNote validates and inserts a manually authored note.
//
// The entry's entity_kind is always "client", even when no client reference
// was supplied and the entry falls back to the acting user as its entity.
// TODO: decide whether a client-less note should carry a distinct entity
// kind; changing it means migrating historical rows first.
func (s *ActivityService) AddNote(
	ctx context.Context, actor models.ActorContext, req models.CreateNoteRequest,
) (*models.ActivityEntry, error) {
	if actor.UserID == "" {
		return nil, models.ErrNoActor
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, models.ErrEmptyNote
	}

	email := actor.Email
	if email == "" {
		email = s.users.EmailByID(ctx, actor.UserID)
	}

	entityID := actor.UserID
	if req.ClientID != nil && *req.ClientID != "" {
		entityID = *req.ClientID
	}

	entry := models.ActivityEntry{
		ClientID:     req.ClientID,
		UserID:       actor.UserID,
		ActorName:    actor.Name,
		ActorSurname: actor.Surname,
		ActorEmail:   email,
		EventKind:    models.EventManualNote,
		EntityKind:   models.EntityClient,
		EntityID:     entityID,
		Note:         req.Content,
	}

	created, err := s.store.Insert(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"entry_id": created.ID,
		"user_id":  actor.UserID,
	}).Info("activity.note")

	return created, nil
}

// UserOptions returns the user filter options.
func (s *ActivityService) UserOptions(ctx context.Context) ([]models.LookupOption, error) {
	return s.lookups.Users(ctx)
}

// ClientOptions returns the client filter options.
func (s *ActivityService) ClientOptions(ctx context.Context) ([]models.LookupOption, error) {
	return s.lookups.Clients(ctx)
}

// PointOptions returns the supply point filter options, optionally scoped to
// a set of client ids. An empty set means no restriction.
func (s *ActivityService) PointOptions(ctx context.Context, clientIDs []string) ([]models.LookupOption, error) {
	return s.lookups.SupplyPoints(ctx, clientIDs)
}

// ContractOptions returns the contract filter options, optionally scoped by
// point ids and/or client ids. Empty sets mean no restriction.
func (s *ActivityService) ContractOptions(ctx context.Context, pointIDs, clientIDs []string) ([]models.LookupOption, error) {
	return s.lookups.Contracts(ctx, pointIDs, clientIDs)
}
