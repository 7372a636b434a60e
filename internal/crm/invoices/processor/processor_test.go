package processor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v79"
)

// MockBillingStore is a mock implementation of BillingStore
type MockBillingStore struct {
	mock.Mock
}

func (m *MockBillingStore) GetClientByID(ctx context.Context, clientID uuid.UUID) (store.Client, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockBillingStore) GetClientByStripeCustomerID(ctx context.Context, stripeCustomerID string) (store.Client, error) {
	args := m.Called(ctx, stripeCustomerID)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockBillingStore) UpdateClientStatus(ctx context.Context, clientID uuid.UUID, status string) (store.Client, error) {
	args := m.Called(ctx, clientID, status)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockBillingStore) AddClientPayment(ctx context.Context, clientID uuid.UUID, amount int64) (store.Client, error) {
	args := m.Called(ctx, clientID, amount)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockBillingStore) UpdateClientStripeCustomerID(ctx context.Context, clientID uuid.UUID, stripeCustomerID string) error {
	args := m.Called(ctx, clientID, stripeCustomerID)
	return args.Error(0)
}

func (m *MockBillingStore) CreateInvoice(ctx context.Context, params store.CreateInvoiceParams) (store.Invoice, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Invoice), args.Error(1)
}

func (m *MockBillingStore) GetInvoiceByID(ctx context.Context, invoiceID uuid.UUID) (store.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(store.Invoice), args.Error(1)
}

func (m *MockBillingStore) GetInvoiceByStripeSessionID(ctx context.Context, sessionID string) (store.Invoice, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(store.Invoice), args.Error(1)
}

func (m *MockBillingStore) ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]store.Invoice, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]store.Invoice), args.Error(1)
}

func (m *MockBillingStore) UpdateInvoiceStripeSessionID(ctx context.Context, invoiceID uuid.UUID, sessionID string) error {
	args := m.Called(ctx, invoiceID, sessionID)
	return args.Error(0)
}

func (m *MockBillingStore) MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID, paidAt time.Time) (store.Invoice, error) {
	args := m.Called(ctx, invoiceID, paidAt)
	return args.Get(0).(store.Invoice), args.Error(1)
}

func (m *MockBillingStore) UpdateInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string) (store.Invoice, error) {
	args := m.Called(ctx, invoiceID, status)
	return args.Get(0).(store.Invoice), args.Error(1)
}

func newTestProcessor(s BillingStore) InvoiceProcessor {
	return New(s, "whsec_test", "https://admin.gettupp.com", observability.NewLogger())
}

func TestMarkInvoicePaid_SettlesClient(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	invoiceID := uuid.New()
	clientID := uuid.New()
	paid := store.Invoice{
		ID:       invoiceID,
		ClientID: clientID,
		Amount:   445,
		Status:   store.InvoiceStatusPaid,
	}
	pendingClient := store.Client{ID: clientID, Status: store.ClientStatusPending, AmountPaid: 445}

	mockStore.On("MarkInvoicePaid", mock.Anything, invoiceID, mock.Anything).Return(paid, nil)
	mockStore.On("AddClientPayment", mock.Anything, clientID, int64(445)).Return(pendingClient, nil)
	mockStore.On("UpdateClientStatus", mock.Anything, clientID, store.ClientStatusActive).
		Return(store.Client{ID: clientID, Status: store.ClientStatusActive}, nil)

	got, err := proc.MarkInvoicePaid(context.Background(), invoiceID)

	assert.NoError(t, err)
	assert.Equal(t, store.InvoiceStatusPaid, got.Status)
	mockStore.AssertExpectations(t)
}

func TestMarkInvoicePaid_AlreadyPaid(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	invoiceID := uuid.New()
	paidAt := time.Now().Add(-time.Hour)
	existing := store.Invoice{ID: invoiceID, Status: store.InvoiceStatusPaid, PaidAt: &paidAt}

	mockStore.On("MarkInvoicePaid", mock.Anything, invoiceID, mock.Anything).
		Return(store.Invoice{}, store.ErrNotFound)
	mockStore.On("GetInvoiceByID", mock.Anything, invoiceID).Return(existing, nil)

	_, err := proc.MarkInvoicePaid(context.Background(), invoiceID)

	assert.ErrorIs(t, err, ErrInvoiceAlreadyPaid)
	mockStore.AssertNotCalled(t, "AddClientPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkInvoicePaid_CancelledInvoice(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	invoiceID := uuid.New()
	existing := store.Invoice{ID: invoiceID, Status: store.InvoiceStatusCancelled}

	mockStore.On("MarkInvoicePaid", mock.Anything, invoiceID, mock.Anything).
		Return(store.Invoice{}, store.ErrNotFound)
	mockStore.On("GetInvoiceByID", mock.Anything, invoiceID).Return(existing, nil)

	_, err := proc.MarkInvoicePaid(context.Background(), invoiceID)

	assert.ErrorIs(t, err, ErrInvalidInvoiceTransition)
}

func TestSetInvoiceStatus_PaidToRefunded(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	invoiceID := uuid.New()
	paidAt := time.Now().Add(-24 * time.Hour)
	paid := store.Invoice{ID: invoiceID, Status: store.InvoiceStatusPaid, PaidAt: &paidAt}
	refunded := store.Invoice{ID: invoiceID, Status: store.InvoiceStatusRefunded, PaidAt: &paidAt}

	mockStore.On("GetInvoiceByID", mock.Anything, invoiceID).Return(paid, nil)
	mockStore.On("UpdateInvoiceStatus", mock.Anything, invoiceID, store.InvoiceStatusRefunded).
		Return(refunded, nil)

	got, err := proc.SetInvoiceStatus(context.Background(), invoiceID, store.InvoiceStatusRefunded)

	assert.NoError(t, err)
	assert.Equal(t, store.InvoiceStatusRefunded, got.Status)
	// The historical payment time survives the refund.
	assert.NotNil(t, got.PaidAt)
}

func TestSetInvoiceStatus_RejectsPaidViaStatusEndpoint(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	invoiceID := uuid.New()
	sent := store.Invoice{ID: invoiceID, Status: store.InvoiceStatusSent}

	mockStore.On("GetInvoiceByID", mock.Anything, invoiceID).Return(sent, nil)

	_, err := proc.SetInvoiceStatus(context.Background(), invoiceID, store.InvoiceStatusPaid)

	assert.ErrorIs(t, err, ErrInvalidInvoiceTransition)
	mockStore.AssertNotCalled(t, "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetInvoiceStatus_RefundRequiresPaid(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	invoiceID := uuid.New()
	sent := store.Invoice{ID: invoiceID, Status: store.InvoiceStatusSent}

	mockStore.On("GetInvoiceByID", mock.Anything, invoiceID).Return(sent, nil)

	_, err := proc.SetInvoiceStatus(context.Background(), invoiceID, store.InvoiceStatusRefunded)

	assert.ErrorIs(t, err, ErrInvalidInvoiceTransition)
}

func TestHandleWebhook_CheckoutCompleted(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	invoiceID := uuid.New()
	clientID := uuid.New()
	sessionID := "cs_test_123"
	invoice := store.Invoice{ID: invoiceID, ClientID: clientID, Amount: 995, Status: store.InvoiceStatusSent}
	paid := store.Invoice{ID: invoiceID, ClientID: clientID, Amount: 995, Status: store.InvoiceStatusPaid}

	mockStore.On("GetInvoiceByStripeSessionID", mock.Anything, sessionID).Return(invoice, nil)
	mockStore.On("MarkInvoicePaid", mock.Anything, invoiceID, mock.Anything).Return(paid, nil)
	mockStore.On("AddClientPayment", mock.Anything, clientID, int64(995)).
		Return(store.Client{ID: clientID, Status: store.ClientStatusPastDue}, nil)
	mockStore.On("UpdateClientStatus", mock.Anything, clientID, store.ClientStatusActive).
		Return(store.Client{ID: clientID, Status: store.ClientStatusActive}, nil)

	raw, _ := json.Marshal(map[string]string{"id": sessionID})
	event := stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}

	err := proc.HandleWebhook(context.Background(), event)

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestHandleWebhook_RedeliveryIsIdempotent(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	invoiceID := uuid.New()
	sessionID := "cs_test_123"
	invoice := store.Invoice{ID: invoiceID, Status: store.InvoiceStatusPaid}

	mockStore.On("GetInvoiceByStripeSessionID", mock.Anything, sessionID).Return(invoice, nil)
	mockStore.On("MarkInvoicePaid", mock.Anything, invoiceID, mock.Anything).
		Return(store.Invoice{}, store.ErrNotFound)

	raw, _ := json.Marshal(map[string]string{"id": sessionID})
	event := stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}

	err := proc.HandleWebhook(context.Background(), event)

	// Acknowledged without side effects so Stripe stops retrying.
	assert.NoError(t, err)
	mockStore.AssertNotCalled(t, "AddClientPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleWebhook_PaymentFailedMarksPastDue(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	clientID := uuid.New()
	client := store.Client{ID: clientID, Status: store.ClientStatusActive}

	mockStore.On("GetClientByStripeCustomerID", mock.Anything, "cus_42").Return(client, nil)
	mockStore.On("UpdateClientStatus", mock.Anything, clientID, store.ClientStatusPastDue).
		Return(store.Client{ID: clientID, Status: store.ClientStatusPastDue}, nil)

	raw, _ := json.Marshal(map[string]any{"customer": map[string]any{"id": "cus_42"}})
	event := stripe.Event{
		Type: "invoice.payment_failed",
		Data: &stripe.EventData{Raw: raw},
	}

	err := proc.HandleWebhook(context.Background(), event)

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestHandleWebhook_UnknownEventIgnored(t *testing.T) {
	mockStore := new(MockBillingStore)
	proc := newTestProcessor(mockStore)

	event := stripe.Event{
		Type: "customer.created",
		Data: &stripe.EventData{Raw: []byte(`{}`)},
	}

	err := proc.HandleWebhook(context.Background(), event)

	assert.NoError(t, err)
}
