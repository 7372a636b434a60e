package store

import (
	"context"
	"database/sql"
	"errors"
)

const sqlCreateAdmin = `
INSERT INTO admins (email, name, hashed_password)
VALUES ($1, $2, $3)
RETURNING id, email, name, hashed_password, created_at`

func (s *Store) CreateAdmin(ctx context.Context, email, name, hashedPassword string) (Admin, error) {
	var admin Admin
	err := s.db.GetContext(ctx, &admin, sqlCreateAdmin, email, name, hashedPassword)
	if err != nil {
		return Admin{}, err
	}
	return admin, nil
}

const sqlSelectAdminByEmail = `
SELECT id, email, name, hashed_password, created_at
FROM admins
WHERE email = $1`

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (Admin, error) {
	var admin Admin
	err := s.db.GetContext(ctx, &admin, sqlSelectAdminByEmail, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, err
	}
	return admin, nil
}
