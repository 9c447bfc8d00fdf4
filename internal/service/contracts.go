package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// ContractStore is the data-access interface ContractService depends on.
type ContractStore interface {
	Create(ctx context.Context, req models.CreateContractRequest) (*models.Contract, error)
	Get(ctx context.Context, id string) (*models.Contract, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Contract, error)
	Update(ctx context.Context, id string, req models.UpdateContractRequest) (*models.Contract, error)
	Delete(ctx context.Context, id string) (*models.Contract, error)
}

// ContractService manages contracts and records every change.
type ContractService struct {
	store    ContractStore
	recorder *Recorder
	log      *logrus.Logger
}

// NewContractService creates a ContractService.
func NewContractService(store ContractStore, recorder *Recorder, log *logrus.Logger) *ContractService {
	return &ContractService{store: store, recorder: recorder, log: log}
}

// Create validates and inserts a contract, recording the creation.
func (s *ContractService) Create(
	ctx context.Context, actor models.ActorContext, req models.CreateContractRequest,
) (*models.Contract, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &c.ClientID,
		PointID:     &c.PointID,
		ContractID:  &c.ID,
		EventKind:   models.EventCreation,
		EntityKind:  models.EntityContract,
		EntityID:    c.ID,
		EntityLabel: c.RateCode,
	})

	return c, nil
}

// Get returns one contract by id.
func (s *ContractService) Get(ctx context.Context, id string) (*models.Contract, error) {
	return s.store.Get(ctx, id)
}

// ListByClient returns a client's contracts.
func (s *ContractService) ListByClient(ctx context.Context, clientID string) ([]models.Contract, error) {
	return s.store.ListByClient(ctx, clientID)
}

// Update applies a partial update and records the field-level diff.
func (s *ContractService) Update(
	ctx context.Context, actor models.ActorContext, id string, req models.UpdateContractRequest,
) (*models.Contract, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	before, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	after, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	diff := fieldDiff(map[string][2]any{
		"rate_code": {before.RateCode, after.RateCode},
		"state":     {before.State, after.State},
	})

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &after.ClientID,
		PointID:     &after.PointID,
		ContractID:  &after.ID,
		EventKind:   models.EventEdit,
		EntityKind:  models.EntityContract,
		EntityID:    after.ID,
		EntityLabel: after.RateCode,
		Diff:        diff,
	})

	return after, nil
}

// Delete soft-deletes a contract and records the deletion.
func (s *ContractService) Delete(ctx context.Context, actor models.ActorContext, id string) error {
	c, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &c.ClientID,
		PointID:     &c.PointID,
		ContractID:  &c.ID,
		EventKind:   models.EventDeletion,
		EntityKind:  models.EntityContract,
		EntityID:    c.ID,
		EntityLabel: c.RateCode,
	})

	return nil
}
