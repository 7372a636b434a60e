package processor

import (
	"context"
	"testing"
	"time"

	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockAuthStore is a mock implementation of AuthStore
type MockAuthStore struct {
	mock.Mock
}

func (m *MockAuthStore) GetAdminByEmail(ctx context.Context, email string) (store.Admin, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(store.Admin), args.Error(1)
}

func (m *MockAuthStore) CreateAdmin(ctx context.Context, email, name, hashedPassword string) (store.Admin, error) {
	args := m.Called(ctx, email, name, hashedPassword)
	return args.Get(0).(store.Admin), args.Error(1)
}

func newTestProcessor(store AuthStore) AuthProcessor {
	return New(store, "test-secret", observability.NewLogger())
}

func TestGenerateAndValidateToken(t *testing.T) {
	proc := newTestProcessor(new(MockAuthStore))
	admin := store.Admin{
		ID:    uuid.New(),
		Email: "ops@gettupp.com",
		Name:  "Ops Admin",
	}

	token, err := proc.generateJWTToken(context.Background(), admin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := proc.ValidateJWTToken(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	proc := newTestProcessor(new(MockAuthStore))
	other := New(new(MockAuthStore), "another-secret", observability.NewLogger())

	token, err := other.generateJWTToken(context.Background(), store.Admin{ID: uuid.New()})
	assert.NoError(t, err)

	_, err = proc.ValidateJWTToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrParseJWTToken)
}

func TestValidateToken_Expired(t *testing.T) {
	proc := newTestProcessor(new(MockAuthStore))

	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = proc.ValidateJWTToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	proc := newTestProcessor(new(MockAuthStore))

	_, err := proc.ValidateJWTToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrParseJWTToken)
}

func TestLogin_Success(t *testing.T) {
	mockStore := new(MockAuthStore)
	proc := newTestProcessor(mockStore)

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)

	admin := store.Admin{
		ID:             uuid.New(),
		Email:          "ops@gettupp.com",
		Name:           "Ops Admin",
		HashedPassword: string(hashed),
	}
	mockStore.On("GetAdminByEmail", mock.Anything, "ops@gettupp.com").Return(admin, nil)

	loggedIn, err := proc.Login(context.Background(), "ops@gettupp.com", "hunter2")
	assert.NoError(t, err)
	assert.Equal(t, admin.ID.String(), loggedIn.ID)
	assert.Equal(t, admin.Email, loggedIn.Email)
	assert.NotEmpty(t, loggedIn.Token)

	claims, err := proc.ValidateJWTToken(context.Background(), loggedIn.Token)
	assert.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.Subject)
	mockStore.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockStore := new(MockAuthStore)
	proc := newTestProcessor(mockStore)

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)

	mockStore.On("GetAdminByEmail", mock.Anything, "ops@gettupp.com").
		Return(store.Admin{ID: uuid.New(), HashedPassword: string(hashed)}, nil)

	_, err = proc.Login(context.Background(), "ops@gettupp.com", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestLogin_UnknownAdmin(t *testing.T) {
	mockStore := new(MockAuthStore)
	proc := newTestProcessor(mockStore)

	mockStore.On("GetAdminByEmail", mock.Anything, "nobody@gettupp.com").
		Return(store.Admin{}, store.ErrNotFound)

	_, err := proc.Login(context.Background(), "nobody@gettupp.com", "hunter2")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
