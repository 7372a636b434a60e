package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

const sqlCreateLead = `
INSERT INTO leads (
	venue_name, instagram, contact_name, email, phone,
	event_type, attendee_count, budget, message
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, venue_name, instagram, contact_name, email, phone, event_type,
	attendee_count, budget, message, status, qualification_score, created_at, updated_at`

// CreateLead creates a new lead with status pending and score 0 (table defaults).
func (s *Store) CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error) {
	var lead Lead
	err := s.db.GetContext(ctx, &lead, sqlCreateLead,
		params.VenueName,
		params.Instagram,
		params.ContactName,
		params.Email,
		params.Phone,
		params.EventType,
		params.AttendeeCount,
		params.Budget,
		params.Message,
	)
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

const sqlSelectLeadByID = `
SELECT id, venue_name, instagram, contact_name, email, phone, event_type,
	attendee_count, budget, message, status, qualification_score, created_at, updated_at
FROM leads
WHERE id = $1`

func (s *Store) GetLeadByID(ctx context.Context, leadID uuid.UUID) (Lead, error) {
	var lead Lead
	err := s.db.GetContext(ctx, &lead, sqlSelectLeadByID, leadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

const sqlSelectOpenLeadByEmail = `
SELECT id, venue_name, instagram, contact_name, email, phone, event_type,
	attendee_count, budget, message, status, qualification_score, created_at, updated_at
FROM leads
WHERE email = $1 AND status NOT IN ('booked', 'declined')
ORDER BY created_at DESC
LIMIT 1`

// GetOpenLeadByEmail returns the most recent non-terminal lead for an email.
func (s *Store) GetOpenLeadByEmail(ctx context.Context, email string) (Lead, error) {
	var lead Lead
	err := s.db.GetContext(ctx, &lead, sqlSelectOpenLeadByEmail, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

const sqlListLeads = `
SELECT id, venue_name, instagram, contact_name, email, phone, event_type,
	attendee_count, budget, message, status, qualification_score, created_at, updated_at
FROM leads
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

func (s *Store) ListLeads(ctx context.Context, status *string, limit, offset int) ([]Lead, error) {
	leads := []Lead{}
	err := s.db.SelectContext(ctx, &leads, sqlListLeads, status, limit, offset)
	if err != nil {
		return nil, err
	}
	return leads, nil
}

const sqlUpdateLeadStatus = `
UPDATE leads
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, venue_name, instagram, contact_name, email, phone, event_type,
	attendee_count, budget, message, status, qualification_score, created_at, updated_at`

// UpdateLeadStatus sets a lead's status. Any of the five statuses is
// accepted here: staff may revert a mis-click, so transitions are not
// restricted for leads.
func (s *Store) UpdateLeadStatus(ctx context.Context, leadID uuid.UUID, status string) (Lead, error) {
	var lead Lead
	err := s.db.GetContext(ctx, &lead, sqlUpdateLeadStatus, leadID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

const sqlUpdateLeadScore = `
UPDATE leads
SET qualification_score = GREATEST($2, 0), updated_at = now()
WHERE id = $1
RETURNING id, venue_name, instagram, contact_name, email, phone, event_type,
	attendee_count, budget, message, status, qualification_score, created_at, updated_at`

// UpdateLeadScore sets the qualification score, clamped at zero.
func (s *Store) UpdateLeadScore(ctx context.Context, leadID uuid.UUID, score int) (Lead, error) {
	var lead Lead
	err := s.db.GetContext(ctx, &lead, sqlUpdateLeadScore, leadID, score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}
