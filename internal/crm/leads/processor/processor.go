package processor

import (
	"context"
	"errors"
	"fmt"

	"gettupp-server/internal/clients/mail"
	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"
	"gettupp-server/internal/tiers"

	"github.com/google/uuid"
)

// LeadStore defines the database operations required by LeadProcessor
type LeadStore interface {
	CreateLead(ctx context.Context, params store.CreateLeadParams) (store.Lead, error)
	GetLeadByID(ctx context.Context, leadID uuid.UUID) (store.Lead, error)
	GetOpenLeadByEmail(ctx context.Context, email string) (store.Lead, error)
	ListLeads(ctx context.Context, status *string, limit, offset int) ([]store.Lead, error)
	UpdateLeadStatus(ctx context.Context, leadID uuid.UUID, status string) (store.Lead, error)
	UpdateLeadScore(ctx context.Context, leadID uuid.UUID, score int) (store.Lead, error)
	CreateClient(ctx context.Context, params store.CreateClientParams) (store.Client, error)
}

// Notifier sends staff notifications about new leads
type Notifier interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

// CaptchaVerifier defines the captcha verification operations
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string, remoteIP string) error
	IsEnabled() bool
}

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
	ErrInvalidTier       = errors.New("invalid tier")
	ErrCaptchaRequired   = errors.New("captcha verification required")
	ErrCaptchaFailed     = errors.New("captcha verification failed")
)

var validLeadStatuses = map[string]bool{
	store.LeadStatusPending:   true,
	store.LeadStatusContacted: true,
	store.LeadStatusQualified: true,
	store.LeadStatusBooked:    true,
	store.LeadStatusDeclined:  true,
}

// NotifyConfig holds the addresses used for intake notifications
type NotifyConfig struct {
	Sender      string
	StudioInbox string
}

type LeadProcessor struct {
	store           LeadStore
	logger          *observability.Logger
	notifier        Notifier
	captchaVerifier CaptchaVerifier
	notifyConfig    NotifyConfig
}

func New(store LeadStore, logger *observability.Logger, notifier Notifier,
	captchaVerifier CaptchaVerifier, notifyConfig NotifyConfig) LeadProcessor {
	return LeadProcessor{
		store:           store,
		logger:          logger,
		notifier:        notifier,
		captchaVerifier: captchaVerifier,
		notifyConfig:    notifyConfig,
	}
}

// SubmitLeadRequest represents a public intake form submission
type SubmitLeadRequest struct {
	VenueName     string
	Instagram     string
	ContactName   string
	Email         string
	Phone         *string
	EventType     *string
	AttendeeCount *int
	Budget        *string
	Message       *string
	CaptchaToken  *string
	RemoteIP      string
}

// SubmitLeadResponse carries the created lead plus a flag telling the form
// that an open lead already exists for the same email. Duplicates are
// allowed; staff merge by hand.
type SubmitLeadResponse struct {
	Lead     store.Lead `json:"lead"`
	Existing bool       `json:"existing"`
}

// SubmitLead accepts a public intake form submission. The created lead
// starts pending with a qualification score of zero.
func (p *LeadProcessor) SubmitLead(ctx context.Context, req SubmitLeadRequest) (SubmitLeadResponse, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "venue_name", Value: req.VenueName},
		observability.Field{Key: "email", Value: req.Email},
	)

	if p.captchaVerifier != nil && p.captchaVerifier.IsEnabled() {
		if req.CaptchaToken == nil || *req.CaptchaToken == "" {
			return SubmitLeadResponse{}, ErrCaptchaRequired
		}
		if err := p.captchaVerifier.Verify(ctx, *req.CaptchaToken, req.RemoteIP); err != nil {
			p.logger.InfoWithError(ctx, "captcha verification failed", err)
			return SubmitLeadResponse{}, ErrCaptchaFailed
		}
	}

	existing := false
	if _, err := p.store.GetOpenLeadByEmail(ctx, req.Email); err == nil {
		existing = true
	} else if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to check for existing lead", err)
		return SubmitLeadResponse{}, err
	}

	lead, err := p.store.CreateLead(ctx, store.CreateLeadParams{
		VenueName:     req.VenueName,
		Instagram:     req.Instagram,
		ContactName:   req.ContactName,
		Email:         req.Email,
		Phone:         req.Phone,
		EventType:     req.EventType,
		AttendeeCount: req.AttendeeCount,
		Budget:        req.Budget,
		Message:       req.Message,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create lead", err)
		return SubmitLeadResponse{}, err
	}

	p.notifyStaff(ctx, lead)

	return SubmitLeadResponse{Lead: lead, Existing: existing}, nil
}

// notifyStaff emails the studio inbox about a new lead. Best-effort: intake
// must not fail because the mail provider is down.
func (p *LeadProcessor) notifyStaff(ctx context.Context, lead store.Lead) {
	if p.notifier == nil || p.notifyConfig.StudioInbox == "" {
		return
	}

	msg := mail.Message{
		From:    p.notifyConfig.Sender,
		To:      p.notifyConfig.StudioInbox,
		ReplyTo: lead.Email,
		Subject: fmt.Sprintf("New lead: %s", lead.VenueName),
		HTML: fmt.Sprintf(
			"<p><strong>%s</strong> (%s) just submitted the intake form.</p>"+
				"<p>Contact: %s &lt;%s&gt;</p>",
			lead.VenueName, lead.Instagram, lead.ContactName, lead.Email,
		),
	}
	if _, err := p.notifier.Send(ctx, msg); err != nil {
		p.logger.InfoWithError(ctx, "failed to send intake notification", err)
	}
}

// GetLead fetches a single lead.
func (p *LeadProcessor) GetLead(ctx context.Context, leadID uuid.UUID) (store.Lead, error) {
	lead, err := p.store.GetLeadByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Lead{}, ErrLeadNotFound
		}
		p.logger.Error(ctx, "failed to get lead", err)
		return store.Lead{}, err
	}
	return lead, nil
}

// ListLeads returns leads, optionally filtered by status.
func (p *LeadProcessor) ListLeads(ctx context.Context, status *string, limit, offset int) ([]store.Lead, error) {
	if status != nil && !validLeadStatuses[*status] {
		return nil, ErrInvalidLeadStatus
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	leads, err := p.store.ListLeads(ctx, status, limit, offset)
	if err != nil {
		p.logger.Error(ctx, "failed to list leads", err)
		return nil, err
	}
	return leads, nil
}

// SetLeadStatus sets any of the five statuses. Transitions are deliberately
// unrestricted for leads: staff may need to revert a mis-click.
func (p *LeadProcessor) SetLeadStatus(ctx context.Context, leadID uuid.UUID, status string) (store.Lead, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "lead_id", Value: leadID.String()},
		observability.Field{Key: "status", Value: status},
	)

	if !validLeadStatuses[status] {
		return store.Lead{}, ErrInvalidLeadStatus
	}

	lead, err := p.store.UpdateLeadStatus(ctx, leadID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Lead{}, ErrLeadNotFound
		}
		p.logger.Error(ctx, "failed to update lead status", err)
		return store.Lead{}, err
	}
	return lead, nil
}

// SetLeadScore sets the qualification score. Negative input is clamped to zero.
func (p *LeadProcessor) SetLeadScore(ctx context.Context, leadID uuid.UUID, score int) (store.Lead, error) {
	lead, err := p.store.UpdateLeadScore(ctx, leadID, score)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Lead{}, ErrLeadNotFound
		}
		p.logger.Error(ctx, "failed to update lead score", err)
		return store.Lead{}, err
	}
	return lead, nil
}

// ConvertLead materializes a client from a lead. The client is written only
// after the lead resolves, so a missing lead produces no partial state. On
// success the lead is marked booked; that follow-up is best-effort because
// the client already exists.
func (p *LeadProcessor) ConvertLead(ctx context.Context, leadID uuid.UUID, tier string) (store.Client, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "lead_id", Value: leadID.String()},
		observability.Field{Key: "tier", Value: tier},
	)

	if !tiers.IsValid(tier) {
		return store.Client{}, ErrInvalidTier
	}

	lead, err := p.store.GetLeadByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Client{}, ErrLeadNotFound
		}
		p.logger.Error(ctx, "failed to get lead for conversion", err)
		return store.Client{}, err
	}

	var instagram *string
	if lead.Instagram != "" {
		instagram = &lead.Instagram
	}

	client, err := p.store.CreateClient(ctx, store.CreateClientParams{
		Name:      lead.VenueName,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Instagram: instagram,
		Tier:      tier,
		Status:    store.ClientStatusPending,
		Source:    store.ClientSourceLeadConversion,
		LeadID:    &lead.ID,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create client from lead", err)
		return store.Client{}, err
	}

	if _, err := p.store.UpdateLeadStatus(ctx, leadID, store.LeadStatusBooked); err != nil {
		p.logger.InfoWithError(ctx, "failed to mark converted lead as booked", err)
	}

	return client, nil
}
