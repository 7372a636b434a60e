package processor

import (
	"context"
	"errors"
	"time"

	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"
	"gettupp-server/internal/tiers"

	"github.com/google/uuid"
)

// ShootStore defines the database operations required by ShootProcessor
type ShootStore interface {
	GetClientByID(ctx context.Context, clientID uuid.UUID) (store.Client, error)
	CreateShoot(ctx context.Context, params store.CreateShootParams) (store.Shoot, error)
	GetShootByID(ctx context.Context, shootID uuid.UUID) (store.Shoot, error)
	ListShootsByClient(ctx context.Context, clientID uuid.UUID) ([]store.Shoot, error)
	ListUpcomingShoots(ctx context.Context, from time.Time, limit int) ([]store.Shoot, error)
	UpdateShootStatus(ctx context.Context, shootID uuid.UUID, fromStatus, toStatus string) (store.Shoot, error)
	UpdateShootDeliveredImages(ctx context.Context, shootID uuid.UUID, delivered int) (store.Shoot, error)
}

var (
	ErrShootNotFound      = errors.New("shoot not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrClientNotActive    = errors.New("client is not active")
	ErrInvalidShootType   = errors.New("invalid shoot type")
	ErrInvalidTransition  = errors.New("invalid shoot status transition")
	ErrInvariantViolation = errors.New("delivered images cannot exceed total images")
)

var validShootTypes = map[string]bool{
	store.ShootTypePilot:    true,
	store.ShootTypeStandard: true,
	store.ShootTypePremium:  true,
	store.ShootTypeVIP:      true,
}

// transitions is the authoritative state machine: current status to the set
// of statuses reachable from it. The happy path is strictly one step at a
// time; cancelled is reachable from every non-terminal state. delivered and
// cancelled are terminal.
var transitions = map[string]map[string]bool{
	store.ShootStatusScheduled: {
		store.ShootStatusConfirmed: true,
		store.ShootStatusCancelled: true,
	},
	store.ShootStatusConfirmed: {
		store.ShootStatusInProgress: true,
		store.ShootStatusCancelled:  true,
	},
	store.ShootStatusInProgress: {
		store.ShootStatusCompleted: true,
		store.ShootStatusCancelled: true,
	},
	store.ShootStatusCompleted: {
		store.ShootStatusDelivered: true,
		store.ShootStatusCancelled: true,
	},
	store.ShootStatusDelivered: {},
	store.ShootStatusCancelled: {},
}

// CanTransition reports whether a shoot may move from one status to another.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	return ok && allowed[to]
}

type ShootProcessor struct {
	store  ShootStore
	logger *observability.Logger
}

func New(store ShootStore, logger *observability.Logger) ShootProcessor {
	return ShootProcessor{store: store, logger: logger}
}

// CreateShootRequest represents an admin "Schedule Shoot" action
type CreateShootRequest struct {
	ClientID         uuid.UUID
	Type             string
	ScheduledAt      time.Time
	DurationMinutes  int
	Location         *string
	PhotographerName *string
	Notes            *string
}

// CreateShoot schedules a shoot for an active client. The total image count
// defaults to the client's tier envelope.
func (p *ShootProcessor) CreateShoot(ctx context.Context, req CreateShootRequest) (store.Shoot, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: req.ClientID.String()},
		observability.Field{Key: "shoot_type", Value: req.Type},
	)

	if !validShootTypes[req.Type] {
		return store.Shoot{}, ErrInvalidShootType
	}

	client, err := p.store.GetClientByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Shoot{}, ErrClientNotFound
		}
		p.logger.Error(ctx, "failed to get client for shoot", err)
		return store.Shoot{}, err
	}

	if client.Status != store.ClientStatusActive {
		return store.Shoot{}, ErrClientNotActive
	}

	totalImages := 0
	if tier, err := tiers.Lookup(client.Tier); err == nil {
		totalImages = tier.PhotosPerShoot
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 120
	}

	shoot, err := p.store.CreateShoot(ctx, store.CreateShootParams{
		ClientID:         req.ClientID,
		Type:             req.Type,
		ScheduledAt:      req.ScheduledAt,
		DurationMinutes:  duration,
		Location:         req.Location,
		PhotographerName: req.PhotographerName,
		Notes:            req.Notes,
		TotalImages:      totalImages,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create shoot", err)
		return store.Shoot{}, err
	}
	return shoot, nil
}

// GetShoot fetches a single shoot.
func (p *ShootProcessor) GetShoot(ctx context.Context, shootID uuid.UUID) (store.Shoot, error) {
	shoot, err := p.store.GetShootByID(ctx, shootID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Shoot{}, ErrShootNotFound
		}
		p.logger.Error(ctx, "failed to get shoot", err)
		return store.Shoot{}, err
	}
	return shoot, nil
}

// ListShootsByClient returns all of a client's shoots.
func (p *ShootProcessor) ListShootsByClient(ctx context.Context, clientID uuid.UUID) ([]store.Shoot, error) {
	shoots, err := p.store.ListShootsByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to list shoots", err)
		return nil, err
	}
	return shoots, nil
}

// ListUpcomingShoots returns the schedule from now forward.
func (p *ShootProcessor) ListUpcomingShoots(ctx context.Context, limit int) ([]store.Shoot, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	shoots, err := p.store.ListUpcomingShoots(ctx, time.Now(), limit)
	if err != nil {
		p.logger.Error(ctx, "failed to list upcoming shoots", err)
		return nil, err
	}
	return shoots, nil
}

// AdvanceShoot moves a shoot to the requested status if the transition table
// allows it. The store write is conditional on the status the decision was
// made against, so two concurrent advances cannot both apply: the loser's
// update matches no row and the request fails with ErrInvalidTransition.
func (p *ShootProcessor) AdvanceShoot(ctx context.Context, shootID uuid.UUID, targetStatus string) (store.Shoot, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "shoot_id", Value: shootID.String()},
		observability.Field{Key: "target_status", Value: targetStatus},
	)

	shoot, err := p.store.GetShootByID(ctx, shootID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Shoot{}, ErrShootNotFound
		}
		p.logger.Error(ctx, "failed to get shoot", err)
		return store.Shoot{}, err
	}

	if !CanTransition(shoot.Status, targetStatus) {
		return store.Shoot{}, ErrInvalidTransition
	}

	updated, err := p.store.UpdateShootStatus(ctx, shootID, shoot.Status, targetStatus)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The shoot moved between read and write.
			return store.Shoot{}, ErrInvalidTransition
		}
		p.logger.Error(ctx, "failed to update shoot status", err)
		return store.Shoot{}, err
	}
	return updated, nil
}

// SetDeliveredImages sets the delivered count, holding the invariant
// delivered <= total.
func (p *ShootProcessor) SetDeliveredImages(ctx context.Context, shootID uuid.UUID, delivered int) (store.Shoot, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "shoot_id", Value: shootID.String()},
		observability.Field{Key: "delivered_images", Value: delivered},
	)

	if delivered < 0 {
		return store.Shoot{}, ErrInvariantViolation
	}

	shoot, err := p.store.GetShootByID(ctx, shootID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Shoot{}, ErrShootNotFound
		}
		p.logger.Error(ctx, "failed to get shoot", err)
		return store.Shoot{}, err
	}

	if delivered > shoot.TotalImages {
		return store.Shoot{}, ErrInvariantViolation
	}

	updated, err := p.store.UpdateShootDeliveredImages(ctx, shootID, delivered)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The guarded update found no row: total shrank under us.
			return store.Shoot{}, ErrInvariantViolation
		}
		p.logger.Error(ctx, "failed to update delivered images", err)
		return store.Shoot{}, err
	}
	return updated, nil
}
