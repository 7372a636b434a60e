package processor

import (
	"context"
	"errors"

	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"
	"gettupp-server/internal/tiers"

	"github.com/google/uuid"
)

// ClientStore defines the database operations required by ClientProcessor
type ClientStore interface {
	CreateClient(ctx context.Context, params store.CreateClientParams) (store.Client, error)
	GetClientByID(ctx context.Context, clientID uuid.UUID) (store.Client, error)
	ListClients(ctx context.Context, status *string, limit, offset int) ([]store.Client, error)
	UpdateClientStatus(ctx context.Context, clientID uuid.UUID, status string) (store.Client, error)
	ListShootsByClient(ctx context.Context, clientID uuid.UUID) ([]store.Shoot, error)
	ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]store.Invoice, error)
}

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrInvalidClientStatus = errors.New("invalid client status")
	ErrInvalidTier         = errors.New("invalid tier")
)

var validClientStatuses = map[string]bool{
	store.ClientStatusPending:   true,
	store.ClientStatusActive:    true,
	store.ClientStatusCompleted: true,
	store.ClientStatusCancelled: true,
	store.ClientStatusPastDue:   true,
}

type ClientProcessor struct {
	store  ClientStore
	logger *observability.Logger
}

func New(store ClientStore, logger *observability.Logger) ClientProcessor {
	return ClientProcessor{store: store, logger: logger}
}

// CreateClientRequest represents a direct admin-form client creation
type CreateClientRequest struct {
	Name      string
	Email     string
	Phone     *string
	Instagram *string
	Tier      string
}

// CreateClient creates a client directly, without a lead.
func (p *ClientProcessor) CreateClient(ctx context.Context, req CreateClientRequest) (store.Client, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_name", Value: req.Name},
		observability.Field{Key: "tier", Value: req.Tier},
	)

	if !tiers.IsValid(req.Tier) {
		return store.Client{}, ErrInvalidTier
	}

	client, err := p.store.CreateClient(ctx, store.CreateClientParams{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Instagram: req.Instagram,
		Tier:      req.Tier,
		Status:    store.ClientStatusPending,
		Source:    store.ClientSourceDirect,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create client", err)
		return store.Client{}, err
	}
	return client, nil
}

// ClientDetail is a client with its owned shoots and invoices.
type ClientDetail struct {
	Client   store.Client    `json:"client"`
	Shoots   []store.Shoot   `json:"shoots"`
	Invoices []store.Invoice `json:"invoices"`
}

// GetClient fetches a client with its owned records.
func (p *ClientProcessor) GetClient(ctx context.Context, clientID uuid.UUID) (ClientDetail, error) {
	client, err := p.store.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ClientDetail{}, ErrClientNotFound
		}
		p.logger.Error(ctx, "failed to get client", err)
		return ClientDetail{}, err
	}

	shoots, err := p.store.ListShootsByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to list client shoots", err)
		return ClientDetail{}, err
	}

	invoices, err := p.store.ListInvoicesByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to list client invoices", err)
		return ClientDetail{}, err
	}

	return ClientDetail{Client: client, Shoots: shoots, Invoices: invoices}, nil
}

// ListClients returns clients, optionally filtered by status.
func (p *ClientProcessor) ListClients(ctx context.Context, status *string, limit, offset int) ([]store.Client, error) {
	if status != nil && !validClientStatuses[*status] {
		return nil, ErrInvalidClientStatus
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	clients, err := p.store.ListClients(ctx, status, limit, offset)
	if err != nil {
		p.logger.Error(ctx, "failed to list clients", err)
		return nil, err
	}
	return clients, nil
}

// SetClientStatus sets a client's status from an admin action. Payment
// outcomes drive the same field through the invoice webhook path.
func (p *ClientProcessor) SetClientStatus(ctx context.Context, clientID uuid.UUID, status string) (store.Client, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: clientID.String()},
		observability.Field{Key: "status", Value: status},
	)

	if !validClientStatuses[status] {
		return store.Client{}, ErrInvalidClientStatus
	}

	client, err := p.store.UpdateClientStatus(ctx, clientID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Client{}, ErrClientNotFound
		}
		p.logger.Error(ctx, "failed to update client status", err)
		return store.Client{}, err
	}
	return client, nil
}
