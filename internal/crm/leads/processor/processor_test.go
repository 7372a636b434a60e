package processor

import (
	"context"
	"errors"
	"testing"

	"gettupp-server/internal/clients/mail"
	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLeadStore is a mock implementation of LeadStore
type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) CreateLead(ctx context.Context, params store.CreateLeadParams) (store.Lead, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Lead), args.Error(1)
}

func (m *MockLeadStore) GetLeadByID(ctx context.Context, leadID uuid.UUID) (store.Lead, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).(store.Lead), args.Error(1)
}

func (m *MockLeadStore) GetOpenLeadByEmail(ctx context.Context, email string) (store.Lead, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(store.Lead), args.Error(1)
}

func (m *MockLeadStore) ListLeads(ctx context.Context, status *string, limit, offset int) ([]store.Lead, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]store.Lead), args.Error(1)
}

func (m *MockLeadStore) UpdateLeadStatus(ctx context.Context, leadID uuid.UUID, status string) (store.Lead, error) {
	args := m.Called(ctx, leadID, status)
	return args.Get(0).(store.Lead), args.Error(1)
}

func (m *MockLeadStore) UpdateLeadScore(ctx context.Context, leadID uuid.UUID, score int) (store.Lead, error) {
	args := m.Called(ctx, leadID, score)
	return args.Get(0).(store.Lead), args.Error(1)
}

func (m *MockLeadStore) CreateClient(ctx context.Context, params store.CreateClientParams) (store.Client, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Client), args.Error(1)
}

// MockCaptchaVerifier is a mock implementation of CaptchaVerifier
type MockCaptchaVerifier struct {
	mock.Mock
}

func (m *MockCaptchaVerifier) Verify(ctx context.Context, token string, remoteIP string) error {
	args := m.Called(ctx, token, remoteIP)
	return args.Error(0)
}

func (m *MockCaptchaVerifier) IsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, msg mail.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func newTestProcessor(s LeadStore, captcha CaptchaVerifier, notifier Notifier) LeadProcessor {
	return New(s, observability.NewLogger(), notifier, captcha, NotifyConfig{
		Sender:      "noreply@gettupp.com",
		StudioInbox: "studio@gettupp.com",
	})
}

func TestSubmitLead_CreatesPendingLead(t *testing.T) {
	mockStore := new(MockLeadStore)
	mockNotifier := new(MockNotifier)
	proc := newTestProcessor(mockStore, nil, mockNotifier)

	created := store.Lead{
		ID:                 uuid.New(),
		VenueName:          "Club Nova",
		Instagram:          "@clubnova",
		ContactName:        "Riley Moss",
		Email:              "riley@clubnova.com",
		Status:             store.LeadStatusPending,
		QualificationScore: 0,
	}

	mockStore.On("GetOpenLeadByEmail", mock.Anything, "riley@clubnova.com").
		Return(store.Lead{}, store.ErrNotFound)
	mockStore.On("CreateLead", mock.Anything, mock.MatchedBy(func(params store.CreateLeadParams) bool {
		return params.VenueName == "Club Nova" && params.Email == "riley@clubnova.com"
	})).Return(created, nil)
	mockNotifier.On("Send", mock.Anything, mock.MatchedBy(func(msg mail.Message) bool {
		return msg.From == "noreply@gettupp.com" &&
			msg.To == "studio@gettupp.com" &&
			msg.ReplyTo == "riley@clubnova.com"
	})).Return("email-id", nil)

	resp, err := proc.SubmitLead(context.Background(), SubmitLeadRequest{
		VenueName:   "Club Nova",
		Instagram:   "@clubnova",
		ContactName: "Riley Moss",
		Email:       "riley@clubnova.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, store.LeadStatusPending, resp.Lead.Status)
	assert.Equal(t, 0, resp.Lead.QualificationScore)
	assert.False(t, resp.Existing)
	mockStore.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestSubmitLead_FlagsExistingOpenLead(t *testing.T) {
	mockStore := new(MockLeadStore)
	proc := newTestProcessor(mockStore, nil, nil)

	open := store.Lead{ID: uuid.New(), Email: "riley@clubnova.com", Status: store.LeadStatusContacted}
	created := store.Lead{ID: uuid.New(), Email: "riley@clubnova.com", Status: store.LeadStatusPending}

	mockStore.On("GetOpenLeadByEmail", mock.Anything, "riley@clubnova.com").Return(open, nil)
	mockStore.On("CreateLead", mock.Anything, mock.Anything).Return(created, nil)

	resp, err := proc.SubmitLead(context.Background(), SubmitLeadRequest{
		VenueName:   "Club Nova",
		Instagram:   "@clubnova",
		ContactName: "Riley Moss",
		Email:       "riley@clubnova.com",
	})

	// Duplicates are allowed; the flag tells the caller a merge may be needed.
	assert.NoError(t, err)
	assert.True(t, resp.Existing)
	mockStore.AssertExpectations(t)
}

func TestSubmitLead_SurvivesNotifierFailure(t *testing.T) {
	mockStore := new(MockLeadStore)
	mockNotifier := new(MockNotifier)
	proc := newTestProcessor(mockStore, nil, mockNotifier)

	created := store.Lead{ID: uuid.New(), Status: store.LeadStatusPending}

	mockStore.On("GetOpenLeadByEmail", mock.Anything, mock.Anything).
		Return(store.Lead{}, store.ErrNotFound)
	mockStore.On("CreateLead", mock.Anything, mock.Anything).Return(created, nil)
	mockNotifier.On("Send", mock.Anything, mock.Anything).
		Return("", errors.New("resend is down"))

	_, err := proc.SubmitLead(context.Background(), SubmitLeadRequest{
		VenueName:   "Club Nova",
		Instagram:   "@clubnova",
		ContactName: "Riley Moss",
		Email:       "riley@clubnova.com",
	})

	assert.NoError(t, err)
}

func TestSubmitLead_CaptchaRequired(t *testing.T) {
	mockStore := new(MockLeadStore)
	mockCaptcha := new(MockCaptchaVerifier)
	proc := newTestProcessor(mockStore, mockCaptcha, nil)

	mockCaptcha.On("IsEnabled").Return(true)

	_, err := proc.SubmitLead(context.Background(), SubmitLeadRequest{
		VenueName:   "Club Nova",
		Instagram:   "@clubnova",
		ContactName: "Riley Moss",
		Email:       "riley@clubnova.com",
	})

	assert.ErrorIs(t, err, ErrCaptchaRequired)
	mockStore.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestSubmitLead_CaptchaFailed(t *testing.T) {
	mockStore := new(MockLeadStore)
	mockCaptcha := new(MockCaptchaVerifier)
	proc := newTestProcessor(mockStore, mockCaptcha, nil)

	token := "bad-token"
	mockCaptcha.On("IsEnabled").Return(true)
	mockCaptcha.On("Verify", mock.Anything, token, "203.0.113.9").Return(errors.New("invalid token"))

	_, err := proc.SubmitLead(context.Background(), SubmitLeadRequest{
		VenueName:    "Club Nova",
		Instagram:    "@clubnova",
		ContactName:  "Riley Moss",
		Email:        "riley@clubnova.com",
		CaptchaToken: &token,
		RemoteIP:     "203.0.113.9",
	})

	assert.ErrorIs(t, err, ErrCaptchaFailed)
	mockStore.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestSetLeadStatus_RejectsUnknownStatus(t *testing.T) {
	mockStore := new(MockLeadStore)
	proc := newTestProcessor(mockStore, nil, nil)

	_, err := proc.SetLeadStatus(context.Background(), uuid.New(), "archived")

	assert.ErrorIs(t, err, ErrInvalidLeadStatus)
	mockStore.AssertNotCalled(t, "UpdateLeadStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetLeadStatus_AllowsBackwardsMove(t *testing.T) {
	// Lead transitions are unrestricted so staff can revert a mis-click.
	mockStore := new(MockLeadStore)
	proc := newTestProcessor(mockStore, nil, nil)

	leadID := uuid.New()
	reverted := store.Lead{ID: leadID, Status: store.LeadStatusPending}

	mockStore.On("UpdateLeadStatus", mock.Anything, leadID, store.LeadStatusPending).Return(reverted, nil)

	lead, err := proc.SetLeadStatus(context.Background(), leadID, store.LeadStatusPending)

	assert.NoError(t, err)
	assert.Equal(t, store.LeadStatusPending, lead.Status)
}

func TestConvertLead_Success(t *testing.T) {
	mockStore := new(MockLeadStore)
	proc := newTestProcessor(mockStore, nil, nil)

	leadID := uuid.New()
	lead := store.Lead{
		ID:          leadID,
		VenueName:   "Club Nova",
		Instagram:   "@clubnova",
		ContactName: "Riley Moss",
		Email:       "riley@clubnova.com",
		Status:      store.LeadStatusQualified,
	}
	client := store.Client{
		ID:     uuid.New(),
		Name:   "Club Nova",
		Tier:   store.ClientTierT2,
		Status: store.ClientStatusPending,
		Source: store.ClientSourceLeadConversion,
		LeadID: &leadID,
	}

	mockStore.On("GetLeadByID", mock.Anything, leadID).Return(lead, nil)
	mockStore.On("CreateClient", mock.Anything, mock.MatchedBy(func(params store.CreateClientParams) bool {
		return params.Name == "Club Nova" &&
			params.Tier == store.ClientTierT2 &&
			params.Status == store.ClientStatusPending &&
			params.Source == store.ClientSourceLeadConversion &&
			params.LeadID != nil && *params.LeadID == leadID
	})).Return(client, nil)
	mockStore.On("UpdateLeadStatus", mock.Anything, leadID, store.LeadStatusBooked).
		Return(store.Lead{ID: leadID, Status: store.LeadStatusBooked}, nil)

	got, err := proc.ConvertLead(context.Background(), leadID, store.ClientTierT2)

	assert.NoError(t, err)
	assert.Equal(t, store.ClientStatusPending, got.Status)
	mockStore.AssertExpectations(t)
}

func TestConvertLead_UnknownTier(t *testing.T) {
	mockStore := new(MockLeadStore)
	proc := newTestProcessor(mockStore, nil, nil)

	_, err := proc.ConvertLead(context.Background(), uuid.New(), "platinum")

	assert.ErrorIs(t, err, ErrInvalidTier)
	mockStore.AssertNotCalled(t, "GetLeadByID", mock.Anything, mock.Anything)
}

func TestConvertLead_MissingLeadWritesNothing(t *testing.T) {
	mockStore := new(MockLeadStore)
	proc := newTestProcessor(mockStore, nil, nil)

	leadID := uuid.New()
	mockStore.On("GetLeadByID", mock.Anything, leadID).Return(store.Lead{}, store.ErrNotFound)

	_, err := proc.ConvertLead(context.Background(), leadID, store.ClientTierT1)

	assert.ErrorIs(t, err, ErrLeadNotFound)
	mockStore.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything)
}

func TestConvertLead_SurvivesStatusFollowUpFailure(t *testing.T) {
	// The client exists once CreateClient commits; a failed lead status
	// follow-up must not fail the conversion.
	mockStore := new(MockLeadStore)
	proc := newTestProcessor(mockStore, nil, nil)

	leadID := uuid.New()
	lead := store.Lead{ID: leadID, VenueName: "Club Nova", Email: "riley@clubnova.com"}
	client := store.Client{ID: uuid.New(), Name: "Club Nova", Status: store.ClientStatusPending}

	mockStore.On("GetLeadByID", mock.Anything, leadID).Return(lead, nil)
	mockStore.On("CreateClient", mock.Anything, mock.Anything).Return(client, nil)
	mockStore.On("UpdateLeadStatus", mock.Anything, leadID, store.LeadStatusBooked).
		Return(store.Lead{}, errors.New("connection reset"))

	got, err := proc.ConvertLead(context.Background(), leadID, store.ClientTierT1)

	assert.NoError(t, err)
	assert.Equal(t, client.ID, got.ID)
}
