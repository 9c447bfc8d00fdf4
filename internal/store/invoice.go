package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/enerlink/enerlink/internal/models"
)

// InvoiceStore provides data access for invoices.
type InvoiceStore struct {
	Base
}

// NewInvoiceStore creates an InvoiceStore.
func NewInvoiceStore(base Base) *InvoiceStore {
	return &InvoiceStore{Base: base}
}

const invoiceColumns = `id, client_id, contract_id, number, amount_cents,
	issued_on, due_on, paid, deleted_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var i models.Invoice

	err := row.Scan(
		&i.ID, &i.ClientID, &i.ContractID, &i.Number, &i.AmountCents,
		&i.IssuedOn, &i.DueOn, &i.Paid, &i.DeletedAt, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrInvoiceNotFound
		}

		return nil, fmt.Errorf("scanning invoice: %w", err)
	}

	return &i, nil
}

// Create registers an invoice. The invoice number is globally unique.
func (s *InvoiceStore) Create(ctx context.Context, req models.CreateInvoiceRequest) (*models.Invoice, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO invoices (client_id, contract_id, number, amount_cents, issued_on, due_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, invoiceColumns),
		req.ClientID, req.ContractID, req.Number, req.AmountCents, req.IssuedOn, req.DueOn,
	)

	i, err := scanInvoice(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return i, nil
}

// Get returns one invoice by id, including soft-deleted rows.
func (s *InvoiceStore) Get(ctx context.Context, id string) (*models.Invoice, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM invoices WHERE id = $1", invoiceColumns), id)

	return scanInvoice(row)
}

// ListByClient returns a client's non-deleted invoices, newest first.
func (s *InvoiceStore) ListByClient(ctx context.Context, clientID string) ([]models.Invoice, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM invoices
		WHERE client_id = $1 AND deleted_at IS NULL
		ORDER BY issued_on DESC`, invoiceColumns), clientID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]models.Invoice, 0, 8)

	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, *i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return invoices, nil
}

// MarkPaid flags an invoice as paid and returns the updated row.
func (s *InvoiceStore) MarkPaid(ctx context.Context, id string) (*models.Invoice, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE invoices SET paid = true, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s`, invoiceColumns), id)

	return scanInvoice(row)
}

// Delete soft-deletes an invoice.
func (s *InvoiceStore) Delete(ctx context.Context, id string) (*models.Invoice, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE invoices SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s`, invoiceColumns), id)

	return scanInvoice(row)
}
