package store

import (
	"time"

	"github.com/google/uuid"
)

// Lead is an inbound inquiry from a prospective venue.
type Lead struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	VenueName          string    `db:"venue_name" json:"venue_name"`
	Instagram          string    `db:"instagram" json:"instagram"`
	ContactName        string    `db:"contact_name" json:"contact_name"`
	Email              string    `db:"email" json:"email"`
	Phone              *string   `db:"phone" json:"phone,omitempty"`
	EventType          *string   `db:"event_type" json:"event_type,omitempty"`
	AttendeeCount      *int      `db:"attendee_count" json:"attendee_count,omitempty"`
	Budget             *string   `db:"budget" json:"budget,omitempty"`
	Message            *string   `db:"message" json:"message,omitempty"`
	Status             string    `db:"status" json:"status"`
	QualificationScore int       `db:"qualification_score" json:"qualification_score"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Client is a converted, billable customer record. LeadID is a weak
// back-reference to the originating lead, kept for audit only.
type Client struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	Instagram        *string    `db:"instagram" json:"instagram,omitempty"`
	Tier             string     `db:"tier" json:"tier"`
	Status           string     `db:"status" json:"status"`
	AmountPaid       int64      `db:"amount_paid" json:"amount_paid"`
	Source           string     `db:"source" json:"source"`
	LeadID           *uuid.UUID `db:"lead_id" json:"lead_id,omitempty"`
	StripeCustomerID *string    `db:"stripe_customer_id" json:"-"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// Shoot is one scheduled photography engagement, owned by exactly one client.
type Shoot struct {
	ID               uuid.UUID `db:"id" json:"id"`
	ClientID         uuid.UUID `db:"client_id" json:"client_id"`
	Type             string    `db:"type" json:"type"`
	Status           string    `db:"status" json:"status"`
	ScheduledAt      time.Time `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes  int       `db:"duration_minutes" json:"duration_minutes"`
	Location         *string   `db:"location" json:"location,omitempty"`
	PhotographerName *string   `db:"photographer_name" json:"photographer_name,omitempty"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	DeliveredImages  int       `db:"delivered_images" json:"delivered_images"`
	TotalImages      int       `db:"total_images" json:"total_images"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Invoice is a billing record tied to a client and a tier. PaidAt is set by
// the transition to paid and retained through a refund as the historical
// payment time.
type Invoice struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ClientID        uuid.UUID  `db:"client_id" json:"client_id"`
	Description     string     `db:"description" json:"description"`
	Tier            string     `db:"tier" json:"tier"`
	Amount          int64      `db:"amount" json:"amount"`
	Currency        string     `db:"currency" json:"currency"`
	Status          string     `db:"status" json:"status"`
	StripeSessionID *string    `db:"stripe_session_id" json:"-"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	PaidAt          *time.Time `db:"paid_at" json:"paid_at,omitempty"`
}

// Admin is a back-office staff account.
type Admin struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Name           string    `db:"name" json:"name"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// CreateLeadParams represents parameters for creating a lead
type CreateLeadParams struct {
	VenueName     string
	Instagram     string
	ContactName   string
	Email         string
	Phone         *string
	EventType     *string
	AttendeeCount *int
	Budget        *string
	Message       *string
}

// CreateClientParams represents parameters for creating a client
type CreateClientParams struct {
	Name      string
	Email     string
	Phone     *string
	Instagram *string
	Tier      string
	Status    string
	Source    string
	LeadID    *uuid.UUID
}

// CreateShootParams represents parameters for creating a shoot
type CreateShootParams struct {
	ClientID         uuid.UUID
	Type             string
	ScheduledAt      time.Time
	DurationMinutes  int
	Location         *string
	PhotographerName *string
	Notes            *string
	TotalImages      int
}

// CreateInvoiceParams represents parameters for creating an invoice
type CreateInvoiceParams struct {
	ClientID    uuid.UUID
	Description string
	Tier        string
	Amount      int64
	Currency    string
	Status      string
}
