package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

const sqlCreateClient = `
INSERT INTO clients (name, email, phone, instagram, tier, status, source, lead_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, name, email, phone, instagram, tier, status, amount_paid, source,
	lead_id, stripe_customer_id, created_at, updated_at`

func (s *Store) CreateClient(ctx context.Context, params CreateClientParams) (Client, error) {
	var client Client
	err := s.db.GetContext(ctx, &client, sqlCreateClient,
		params.Name,
		params.Email,
		params.Phone,
		params.Instagram,
		params.Tier,
		params.Status,
		params.Source,
		params.LeadID,
	)
	if err != nil {
		return Client{}, err
	}
	return client, nil
}

const sqlSelectClientByID = `
SELECT id, name, email, phone, instagram, tier, status, amount_paid, source,
	lead_id, stripe_customer_id, created_at, updated_at
FROM clients
WHERE id = $1`

func (s *Store) GetClientByID(ctx context.Context, clientID uuid.UUID) (Client, error) {
	var client Client
	err := s.db.GetContext(ctx, &client, sqlSelectClientByID, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	return client, nil
}

const sqlListClients = `
SELECT id, name, email, phone, instagram, tier, status, amount_paid, source,
	lead_id, stripe_customer_id, created_at, updated_at
FROM clients
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

func (s *Store) ListClients(ctx context.Context, status *string, limit, offset int) ([]Client, error) {
	clients := []Client{}
	err := s.db.SelectContext(ctx, &clients, sqlListClients, status, limit, offset)
	if err != nil {
		return nil, err
	}
	return clients, nil
}

const sqlSelectClientByStripeCustomerID = `
SELECT id, name, email, phone, instagram, tier, status, amount_paid, source,
	lead_id, stripe_customer_id, created_at, updated_at
FROM clients
WHERE stripe_customer_id = $1`

func (s *Store) GetClientByStripeCustomerID(ctx context.Context, stripeCustomerID string) (Client, error) {
	var client Client
	err := s.db.GetContext(ctx, &client, sqlSelectClientByStripeCustomerID, stripeCustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	return client, nil
}

const sqlUpdateClientStatus = `
UPDATE clients
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, name, email, phone, instagram, tier, status, amount_paid, source,
	lead_id, stripe_customer_id, created_at, updated_at`

func (s *Store) UpdateClientStatus(ctx context.Context, clientID uuid.UUID, status string) (Client, error) {
	var client Client
	err := s.db.GetContext(ctx, &client, sqlUpdateClientStatus, clientID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	return client, nil
}

const sqlAddClientPayment = `
UPDATE clients
SET amount_paid = amount_paid + $2, updated_at = now()
WHERE id = $1
RETURNING id, name, email, phone, instagram, tier, status, amount_paid, source,
	lead_id, stripe_customer_id, created_at, updated_at`

// AddClientPayment accumulates a received payment onto the client record.
func (s *Store) AddClientPayment(ctx context.Context, clientID uuid.UUID, amount int64) (Client, error) {
	var client Client
	err := s.db.GetContext(ctx, &client, sqlAddClientPayment, clientID, amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	return client, nil
}

const sqlUpdateClientStripeCustomerID = `
UPDATE clients
SET stripe_customer_id = $2, updated_at = now()
WHERE id = $1`

func (s *Store) UpdateClientStripeCustomerID(ctx context.Context, clientID uuid.UUID, stripeCustomerID string) error {
	result, err := s.db.ExecContext(ctx, sqlUpdateClientStripeCustomerID, clientID, stripeCustomerID)
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
