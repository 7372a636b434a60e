package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

const sqlCreateShoot = `
INSERT INTO shoots (
	client_id, type, scheduled_at, duration_minutes,
	location, photographer_name, notes, total_images
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, client_id, type, status, scheduled_at, duration_minutes, location,
	photographer_name, notes, delivered_images, total_images, created_at, updated_at`

func (s *Store) CreateShoot(ctx context.Context, params CreateShootParams) (Shoot, error) {
	var shoot Shoot
	err := s.db.GetContext(ctx, &shoot, sqlCreateShoot,
		params.ClientID,
		params.Type,
		params.ScheduledAt,
		params.DurationMinutes,
		params.Location,
		params.PhotographerName,
		params.Notes,
		params.TotalImages,
	)
	if err != nil {
		return Shoot{}, err
	}
	return shoot, nil
}

const sqlSelectShootByID = `
SELECT id, client_id, type, status, scheduled_at, duration_minutes, location,
	photographer_name, notes, delivered_images, total_images, created_at, updated_at
FROM shoots
WHERE id = $1`

func (s *Store) GetShootByID(ctx context.Context, shootID uuid.UUID) (Shoot, error) {
	var shoot Shoot
	err := s.db.GetContext(ctx, &shoot, sqlSelectShootByID, shootID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Shoot{}, ErrNotFound
		}
		return Shoot{}, err
	}
	return shoot, nil
}

const sqlListShootsByClient = `
SELECT id, client_id, type, status, scheduled_at, duration_minutes, location,
	photographer_name, notes, delivered_images, total_images, created_at, updated_at
FROM shoots
WHERE client_id = $1
ORDER BY scheduled_at DESC`

func (s *Store) ListShootsByClient(ctx context.Context, clientID uuid.UUID) ([]Shoot, error) {
	shoots := []Shoot{}
	err := s.db.SelectContext(ctx, &shoots, sqlListShootsByClient, clientID)
	if err != nil {
		return nil, err
	}
	return shoots, nil
}

const sqlListUpcomingShoots = `
SELECT id, client_id, type, status, scheduled_at, duration_minutes, location,
	photographer_name, notes, delivered_images, total_images, created_at, updated_at
FROM shoots
WHERE scheduled_at >= $1 AND status IN ('scheduled', 'confirmed')
ORDER BY scheduled_at ASC
LIMIT $2`

func (s *Store) ListUpcomingShoots(ctx context.Context, from time.Time, limit int) ([]Shoot, error) {
	shoots := []Shoot{}
	err := s.db.SelectContext(ctx, &shoots, sqlListUpcomingShoots, from, limit)
	if err != nil {
		return nil, err
	}
	return shoots, nil
}

const sqlUpdateShootStatus = `
UPDATE shoots
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2
RETURNING id, client_id, type, status, scheduled_at, duration_minutes, location,
	photographer_name, notes, delivered_images, total_images, created_at, updated_at`

// UpdateShootStatus advances a shoot's status conditionally on the current
// status. The guard makes concurrent staff actions safe: the second writer
// sees no matching row and gets ErrNotFound, which the processor turns into
// an invalid-transition failure.
func (s *Store) UpdateShootStatus(ctx context.Context, shootID uuid.UUID, fromStatus, toStatus string) (Shoot, error) {
	var shoot Shoot
	err := s.db.GetContext(ctx, &shoot, sqlUpdateShootStatus, shootID, fromStatus, toStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Shoot{}, ErrNotFound
		}
		return Shoot{}, err
	}
	return shoot, nil
}

const sqlUpdateShootDeliveredImages = `
UPDATE shoots
SET delivered_images = $2, updated_at = now()
WHERE id = $1 AND $2 <= total_images
RETURNING id, client_id, type, status, scheduled_at, duration_minutes, location,
	photographer_name, notes, delivered_images, total_images, created_at, updated_at`

// UpdateShootDeliveredImages sets the delivered count. The guard mirrors the
// delivered_images <= total_images CHECK constraint so a violation surfaces
// as ErrNotFound instead of a constraint error.
func (s *Store) UpdateShootDeliveredImages(ctx context.Context, shootID uuid.UUID, delivered int) (Shoot, error) {
	var shoot Shoot
	err := s.db.GetContext(ctx, &shoot, sqlUpdateShootDeliveredImages, shootID, delivered)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Shoot{}, ErrNotFound
		}
		return Shoot{}, err
	}
	return shoot, nil
}
