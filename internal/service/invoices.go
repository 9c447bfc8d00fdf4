package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/models"
)

// InvoiceStore is the data-access interface InvoiceService depends on.
type InvoiceStore interface {
	Create(ctx context.Context, req models.CreateInvoiceRequest) (*models.Invoice, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Invoice, error)
	MarkPaid(ctx context.Context, id string) (*models.Invoice, error)
	Delete(ctx context.Context, id string) (*models.Invoice, error)
}

// InvoiceService manages invoices and records every change.
type InvoiceService struct {
	store    InvoiceStore
	recorder *Recorder
	log      *logrus.Logger
}

// NewInvoiceService creates an InvoiceService.
func NewInvoiceService(store InvoiceStore, recorder *Recorder, log *logrus.Logger) *InvoiceService {
	return &InvoiceService{store: store, recorder: recorder, log: log}
}

// Create validates and registers an invoice, recording the creation.
func (s *InvoiceService) Create(
	ctx context.Context, actor models.ActorContext, req models.CreateInvoiceRequest,
) (*models.Invoice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	i, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &i.ClientID,
		ContractID:  i.ContractID,
		EventKind:   models.EventCreation,
		EntityKind:  models.EntityInvoice,
		EntityID:    i.ID,
		EntityLabel: i.Number,
	})

	return i, nil
}

// Get returns one invoice by id.
func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return s.store.Get(ctx, id)
}

// ListByClient returns a client's invoices.
func (s *InvoiceService) ListByClient(ctx context.Context, clientID string) ([]models.Invoice, error) {
	return s.store.ListByClient(ctx, clientID)
}

// MarkPaid flags an invoice as paid and records the edit.
func (s *InvoiceService) MarkPaid(
	ctx context.Context, actor models.ActorContext, id string,
) (*models.Invoice, error) {
	i, err := s.store.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &i.ClientID,
		ContractID:  i.ContractID,
		EventKind:   models.EventEdit,
		EntityKind:  models.EntityInvoice,
		EntityID:    i.ID,
		EntityLabel: i.Number,
		Diff:        map[string]any{"paid": map[string]any{"from": false, "to": true}},
	})

	return i, nil
}

// Delete soft-deletes an invoice and records the deletion.
func (s *InvoiceService) Delete(ctx context.Context, actor models.ActorContext, id string) error {
	i, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.recorder.Enqueue(&RecordJob{
		Actor:       actor,
		ClientID:    &i.ClientID,
		ContractID:  i.ContractID,
		EventKind:   models.EventDeletion,
		EntityKind:  models.EntityInvoice,
		EntityID:    i.ID,
		EntityLabel: i.Number,
	})

	return nil
}
