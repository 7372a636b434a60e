package processor

import (
	"context"
	"testing"

	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockClientStore is a mock implementation of ClientStore
type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) CreateClient(ctx context.Context, params store.CreateClientParams) (store.Client, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockClientStore) GetClientByID(ctx context.Context, clientID uuid.UUID) (store.Client, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockClientStore) ListClients(ctx context.Context, status *string, limit, offset int) ([]store.Client, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]store.Client), args.Error(1)
}

func (m *MockClientStore) UpdateClientStatus(ctx context.Context, clientID uuid.UUID, status string) (store.Client, error) {
	args := m.Called(ctx, clientID, status)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockClientStore) ListShootsByClient(ctx context.Context, clientID uuid.UUID) ([]store.Shoot, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]store.Shoot), args.Error(1)
}

func (m *MockClientStore) ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]store.Invoice, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]store.Invoice), args.Error(1)
}

func TestCreateClient_DirectSource(t *testing.T) {
	mockStore := new(MockClientStore)
	proc := New(mockStore, observability.NewLogger())

	created := store.Client{
		ID:     uuid.New(),
		Name:   "Velvet Room",
		Tier:   store.ClientTierVIP,
		Status: store.ClientStatusPending,
		Source: store.ClientSourceDirect,
	}

	mockStore.On("CreateClient", mock.Anything, mock.MatchedBy(func(params store.CreateClientParams) bool {
		return params.Source == store.ClientSourceDirect &&
			params.Status == store.ClientStatusPending &&
			params.LeadID == nil
	})).Return(created, nil)

	client, err := proc.CreateClient(context.Background(), CreateClientRequest{
		Name:  "Velvet Room",
		Email: "owner@velvetroom.com",
		Tier:  store.ClientTierVIP,
	})

	assert.NoError(t, err)
	assert.Equal(t, store.ClientSourceDirect, client.Source)
	mockStore.AssertExpectations(t)
}

func TestCreateClient_UnknownTier(t *testing.T) {
	mockStore := new(MockClientStore)
	proc := New(mockStore, observability.NewLogger())

	_, err := proc.CreateClient(context.Background(), CreateClientRequest{
		Name:  "Velvet Room",
		Email: "owner@velvetroom.com",
		Tier:  "gold",
	})

	assert.ErrorIs(t, err, ErrInvalidTier)
	mockStore.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything)
}

func TestGetClient_IncludesOwnedRecords(t *testing.T) {
	mockStore := new(MockClientStore)
	proc := New(mockStore, observability.NewLogger())

	clientID := uuid.New()
	client := store.Client{ID: clientID, Name: "Velvet Room"}
	shoots := []store.Shoot{{ID: uuid.New(), ClientID: clientID}}
	invoices := []store.Invoice{{ID: uuid.New(), ClientID: clientID}}

	mockStore.On("GetClientByID", mock.Anything, clientID).Return(client, nil)
	mockStore.On("ListShootsByClient", mock.Anything, clientID).Return(shoots, nil)
	mockStore.On("ListInvoicesByClient", mock.Anything, clientID).Return(invoices, nil)

	detail, err := proc.GetClient(context.Background(), clientID)

	assert.NoError(t, err)
	assert.Equal(t, clientID, detail.Client.ID)
	assert.Len(t, detail.Shoots, 1)
	assert.Len(t, detail.Invoices, 1)
}

func TestGetClient_NotFound(t *testing.T) {
	mockStore := new(MockClientStore)
	proc := New(mockStore, observability.NewLogger())

	clientID := uuid.New()
	mockStore.On("GetClientByID", mock.Anything, clientID).Return(store.Client{}, store.ErrNotFound)

	_, err := proc.GetClient(context.Background(), clientID)

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestSetClientStatus_RejectsUnknownStatus(t *testing.T) {
	mockStore := new(MockClientStore)
	proc := New(mockStore, observability.NewLogger())

	_, err := proc.SetClientStatus(context.Background(), uuid.New(), "dormant")

	assert.ErrorIs(t, err, ErrInvalidClientStatus)
	mockStore.AssertNotCalled(t, "UpdateClientStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetClientStatus_PastDue(t *testing.T) {
	mockStore := new(MockClientStore)
	proc := New(mockStore, observability.NewLogger())

	clientID := uuid.New()
	mockStore.On("UpdateClientStatus", mock.Anything, clientID, store.ClientStatusPastDue).
		Return(store.Client{ID: clientID, Status: store.ClientStatusPastDue}, nil)

	client, err := proc.SetClientStatus(context.Background(), clientID, store.ClientStatusPastDue)

	assert.NoError(t, err)
	assert.Equal(t, store.ClientStatusPastDue, client.Status)
}
