package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// ClientStore is the data-access interface ClientService depends on.
type ClientStore interface {
	Create(ctx context.Context, req models.CreateClientRequest) (*models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	List(ctx context.Context, limit, offset int) ([]models.Client, error)
	Update(ctx context.Context, id string, req models.UpdateClientRequest) (*models.Client, error)
	SetCoordinates(ctx context.Context, id string, lat, lon float64) error
	Delete(ctx context.Context, id string) (*models.Client, error)
}

// AddressResolver resolves a free-text address to coordinates.
type AddressResolver interface {
	Resolve(ctx context.Context, query string) (*models.GeocodeResult, error)
}

// ClientService manages the client lifecycle and records every change to
// the activity log.
type ClientService struct {
	store    ClientStore
	recorder *Recorder
	geocoder AddressResolver
	log      *logrus.Logger
}

// NewClientService creates a ClientService. geocoder may be nil to disable
// address resolution.
func NewClientService(store ClientStore, recorder *Recorder, geocoder AddressResolver, log *logrus.Logger) *ClientService {
	return &ClientService{store: store, recorder: recorder, geocoder: geocoder, log: log}
}

// Create validates and inserts a new client, records the creation, and
// kicks off best-effort address resolution in the background.
func (s *ClientService) Create(
	ctx context.Context, actor models.ActorContext, req models.CreateClientRequest,
) (*models.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &c.ID,
		EventKind:   models.EventCreation,
		EntityKind:  models.EntityClient,
		EntityID:    c.ID,
		EntityLabel: c.Name,
	})

	s.resolveAddress(c.ID, c.Address)

	return c, nil
}

// Get returns one client by id.
func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	return s.store.Get(ctx, id)
}

// List returns a page of non-deleted clients.
func (s *ClientService) List(ctx context.Context, limit, offset int) ([]models.Client, error) {
	return s.store.List(ctx, limit, offset)
}

// Update applies a partial update, records the field-level diff, and
// re-resolves coordinates when the address changed.
func (s *ClientService) Update(
	ctx context.Context, actor models.ActorContext, id string, req models.UpdateClientRequest,
) (*models.Client, error) {
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
		"name":    {before.Name, after.Name},
		"tax_id":  {before.TaxID, after.TaxID},
		"email":   {before.Email, after.Email},
		"phone":   {before.Phone, after.Phone},
		"address": {before.Address, after.Address},
	})

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &after.ID,
		EventKind:   models.EventEdit,
		EntityKind:  models.EntityClient,
		EntityID:    after.ID,
		EntityLabel: after.Name,
		Diff:        diff,
	})

	if before.Address != after.Address {
		s.resolveAddress(after.ID, after.Address)
	}

	return after, nil
}

// Delete soft-deletes a client and records the deletion.
func (s *ClientService) Delete(ctx context.Context, actor models.ActorContext, id string) error {
	c, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &c.ID,
		EventKind:   models.EventDeletion,
		EntityKind:  models.EntityClient,
		EntityID:    c.ID,
		EntityLabel: c.Name,
	})

	return nil
}

// resolveAddress geocodes an address and stores the coordinates. Failures
// are logged, never surfaced; the client row simply keeps null coordinates.
func (s *ClientService) resolveAddress(clientID, address string) {
	if s.geocoder == nil || address == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		res, err := s.geocoder.Resolve(ctx, address)
		if err != nil {
			s.log.WithError(err).WithField("client_id", clientID).Debug("address resolution failed")
			return
		}

		if err := s.store.SetCoordinates(ctx, clientID, res.Latitude, res.Longitude); err != nil {
			s.log.WithError(err).WithField("client_id", clientID).Warn("failed to store coordinates")
		}
	}()
}

// fieldDiff builds a {field: {from, to}} map of the fields that changed.
// Returns nil when nothing changed.
func fieldDiff(fields map[string][2]any) map[string]any {
	var diff map[string]any

	for name, pair := range fields {
		if pair[0] == pair[1] {
			continue
		}

		if diff == nil {
			diff = make(map[string]any, len(fields))
		}

		diff[name] = map[string]any{"from": pair[0], "to": pair[1]}
	}

	return diff
}
