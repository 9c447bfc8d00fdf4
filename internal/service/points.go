package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// PointStore is the data-access interface PointService depends on.
type PointStore interface {
	Create(ctx context.Context, req models.CreateSupplyPointRequest) (*models.SupplyPoint, error)
	Get(ctx context.Context, id string) (*models.SupplyPoint, error)
	ListByClient(ctx context.Context, clientID string) ([]models.SupplyPoint, error)
	Update(ctx context.Context, id string, req models.UpdateSupplyPointRequest) (*models.SupplyPoint, error)
	Delete(ctx context.Context, id string) (*models.SupplyPoint, error)
}

// PointService manages supply points and records every change.
type PointService struct {
	store    PointStore
	recorder *Recorder
	log      *logrus.Logger
}

// NewPointService creates a PointService.
func NewPointService(store PointStore, recorder *Recorder, log *logrus.Logger) *PointService {
	return &PointService{store: store, recorder: recorder, log: log}
}

// Create validates and registers a supply point, recording the creation.
func (s *PointService) Create(
	ctx context.Context, actor models.ActorContext, req models.CreateSupplyPointRequest,
) (*models.SupplyPoint, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &p.ClientID,
		PointID:     &p.ID,
		EventKind:   models.EventCreation,
		EntityKind:  models.EntitySupplyPoint,
		EntityID:    p.ID,
		EntityLabel: p.CUPS,
	})

	return p, nil
}

// Get returns one supply point by id.
func (s *PointService) Get(ctx context.Context, id string) (*models.SupplyPoint, error) {
	return s.store.Get(ctx, id)
}

// ListByClient returns a client's supply points.
func (s *PointService) ListByClient(ctx context.Context, clientID string) ([]models.SupplyPoint, error) {
	return s.store.ListByClient(ctx, clientID)
}

// Update applies a partial update and records the field-level diff.
func (s *PointService) Update(
	ctx context.Context, actor models.ActorContext, id string, req models.UpdateSupplyPointRequest,
) (*models.SupplyPoint, error) {
	before, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	after, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	diff := fieldDiff(map[string][2]any{
		"address": {before.Address, after.Address},
		"tariff":  {before.Tariff, after.Tariff},
	})

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &after.ClientID,
		PointID:     &after.ID,
		EventKind:   models.EventEdit,
		EntityKind:  models.EntitySupplyPoint,
		EntityID:    after.ID,
		EntityLabel: after.CUPS,
		Diff:        diff,
	})

	return after, nil
}

// Delete soft-deletes a supply point and records the deletion.
func (s *PointService) Delete(ctx context.Context, actor models.ActorContext, id string) error {
	p, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &p.ClientID,
		PointID:     &p.ID,
		EventKind:   models.EventDeletion,
		EntityKind:  models.EntitySupplyPoint,
		EntityID:    p.ID,
		EntityLabel: p.CUPS,
	})

	return nil
}
