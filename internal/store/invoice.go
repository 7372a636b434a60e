package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

const sqlCreateInvoice = `
INSERT INTO invoices (client_id, description, tier, amount, currency, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, client_id, description, tier, amount, currency, status,
	stripe_session_id, created_at, paid_at`

func (s *Store) CreateInvoice(ctx context.Context, params CreateInvoiceParams) (Invoice, error) {
	var invoice Invoice
	err := s.db.GetContext(ctx, &invoice, sqlCreateInvoice,
		params.ClientID,
		params.Description,
		params.Tier,
		params.Amount,
		params.Currency,
		params.Status,
	)
	if err != nil {
		return Invoice{}, err
	}
	return invoice, nil
}

const sqlSelectInvoiceByID = `
SELECT id, client_id, description, tier, amount, currency, status,
	stripe_session_id, created_at, paid_at
FROM invoices
WHERE id = $1`

func (s *Store) GetInvoiceByID(ctx context.Context, invoiceID uuid.UUID) (Invoice, error) {
	var invoice Invoice
	err := s.db.GetContext(ctx, &invoice, sqlSelectInvoiceByID, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}
	return invoice, nil
}

const sqlSelectInvoiceByStripeSessionID = `
SELECT id, client_id, description, tier, amount, currency, status,
	stripe_session_id, created_at, paid_at
FROM invoices
WHERE stripe_session_id = $1`

func (s *Store) GetInvoiceByStripeSessionID(ctx context.Context, sessionID string) (Invoice, error) {
	var invoice Invoice
	err := s.db.GetContext(ctx, &invoice, sqlSelectInvoiceByStripeSessionID, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}
	return invoice, nil
}

const sqlListInvoicesByClient = `
SELECT id, client_id, description, tier, amount, currency, status,
	stripe_session_id, created_at, paid_at
FROM invoices
WHERE client_id = $1
ORDER BY created_at DESC`

func (s *Store) ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]Invoice, error) {
	invoices := []Invoice{}
	err := s.db.SelectContext(ctx, &invoices, sqlListInvoicesByClient, clientID)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

const sqlUpdateInvoiceStripeSessionID = `
UPDATE invoices
SET stripe_session_id = $2
WHERE id = $1`

func (s *Store) UpdateInvoiceStripeSessionID(ctx context.Context, invoiceID uuid.UUID, sessionID string) error {
	result, err := s.db.ExecContext(ctx, sqlUpdateInvoiceStripeSessionID, invoiceID, sessionID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const sqlMarkInvoicePaid = `
UPDATE invoices
SET status = 'paid', paid_at = $2
WHERE id = $1 AND status IN ('draft', 'sent')
RETURNING id, client_id, description, tier, amount, currency, status,
	stripe_session_id, created_at, paid_at`

// MarkInvoicePaid is the only write path that sets paid_at. The status guard
// makes webhook redelivery idempotent: a second completion event finds no
// matching row and returns ErrNotFound.
func (s *Store) MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID, paidAt time.Time) (Invoice, error) {
	var invoice Invoice
	err := s.db.GetContext(ctx, &invoice, sqlMarkInvoicePaid, invoiceID, paidAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}
	return invoice, nil
}

const sqlUpdateInvoiceStatus = `
UPDATE invoices
SET status = $2
WHERE id = $1
RETURNING id, client_id, description, tier, amount, currency, status,
	stripe_session_id, created_at, paid_at`

// UpdateInvoiceStatus sets a non-paid status (cancelled, refunded). paid_at
// is untouched: a refunded invoice keeps its historical payment time.
func (s *Store) UpdateInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string) (Invoice, error) {
	var invoice Invoice
	err := s.db.GetContext(ctx, &invoice, sqlUpdateInvoiceStatus, invoiceID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}
	return invoice, nil
}
