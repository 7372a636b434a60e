package processor

import (
	"context"
	"errors"

	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAdminNotFound     = errors.New("admin not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrFailedLogin       = errors.New("failed to log in")
)

// AuthStore defines the database operations required by AuthProcessor
type AuthStore interface {
	GetAdminByEmail(ctx context.Context, email string) (store.Admin, error)
	CreateAdmin(ctx context.Context, email, name, hashedPassword string) (store.Admin, error)
}

type AuthProcessor struct {
	store     AuthStore
	jwtSecret string
	logger    *observability.Logger
}

func New(store AuthStore, jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:     store,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// LoggedInAdmin is returned after a successful login
type LoggedInAdmin struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Login verifies admin credentials and issues a JWT.
func (p *AuthProcessor) Login(ctx context.Context, email, password string) (LoggedInAdmin, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	admin, err := p.store.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoggedInAdmin{}, ErrAdminNotFound
		}
		p.logger.Error(ctx, "failed to get admin by email", err)
		return LoggedInAdmin{}, ErrFailedLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte(password)); err != nil {
		return LoggedInAdmin{}, ErrIncorrectPassword
	}

	token, err := p.generateJWTToken(ctx, admin)
	if err != nil {
		return LoggedInAdmin{}, err
	}

	return LoggedInAdmin{
		ID:    admin.ID.String(),
		Email: admin.Email,
		Name:  admin.Name,
		Token: token,
	}, nil
}

// HashPassword hashes a password for storage. Used by the seed command.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
