package processor

import (
	"context"
	"errors"
	"time"

	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"

	"github.com/google/uuid"
)

// BillingStore defines the database operations required by InvoiceProcessor
type BillingStore interface {
	GetClientByID(ctx context.Context, clientID uuid.UUID) (store.Client, error)
	GetClientByStripeCustomerID(ctx context.Context, stripeCustomerID string) (store.Client, error)
	UpdateClientStatus(ctx context.Context, clientID uuid.UUID, status string) (store.Client, error)
	AddClientPayment(ctx context.Context, clientID uuid.UUID, amount int64) (store.Client, error)
	UpdateClientStripeCustomerID(ctx context.Context, clientID uuid.UUID, stripeCustomerID string) error
	CreateInvoice(ctx context.Context, params store.CreateInvoiceParams) (store.Invoice, error)
	GetInvoiceByID(ctx context.Context, invoiceID uuid.UUID) (store.Invoice, error)
	GetInvoiceByStripeSessionID(ctx context.Context, sessionID string) (store.Invoice, error)
	ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]store.Invoice, error)
	UpdateInvoiceStripeSessionID(ctx context.Context, invoiceID uuid.UUID, sessionID string) error
	MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID, paidAt time.Time) (store.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string) (store.Invoice, error)
}

var (
	ErrInvoiceNotFound          = errors.New("invoice not found")
	ErrClientNotFound           = errors.New("client not found")
	ErrInvalidTier              = errors.New("invalid tier")
	ErrInvalidInvoiceTransition = errors.New("invalid invoice status transition")
	ErrFailedToCreateCheckout   = errors.New("failed to create checkout session")
	ErrFailedToCreateCustomer   = errors.New("failed to create stripe customer")
	ErrWebhookProcessingFailed  = errors.New("failed to process webhook event")
	ErrInvoiceAlreadyPaid       = errors.New("invoice already paid")
)

// invoiceTransitions mirrors the billing lifecycle: an invoice starts as a
// draft, becomes sent once its checkout session attaches, can be cancelled
// before payment, and once paid can only be refunded. paid is reachable only
// through MarkInvoicePaid, never SetInvoiceStatus.
var invoiceTransitions = map[string]map[string]bool{
	store.InvoiceStatusDraft: {
		store.InvoiceStatusSent:      true,
		store.InvoiceStatusCancelled: true,
	},
	store.InvoiceStatusSent: {
		store.InvoiceStatusCancelled: true,
	},
	store.InvoiceStatusPaid: {
		store.InvoiceStatusRefunded: true,
	},
	store.InvoiceStatusCancelled: {},
	store.InvoiceStatusRefunded:  {},
}

type InvoiceProcessor struct {
	store         BillingStore
	webhookSecret string
	webappURL     string
	logger        *observability.Logger
}

func New(store BillingStore, webhookSecret, webappURL string, logger *observability.Logger) InvoiceProcessor {
	return InvoiceProcessor{
		store:         store,
		webhookSecret: webhookSecret,
		webappURL:     webappURL,
		logger:        logger,
	}
}

// WebhookSecret exposes the signing secret to the webhook handler.
func (p *InvoiceProcessor) WebhookSecret() string {
	return p.webhookSecret
}

// GetInvoice fetches a single invoice.
func (p *InvoiceProcessor) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (store.Invoice, error) {
	invoice, err := p.store.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Invoice{}, ErrInvoiceNotFound
		}
		p.logger.Error(ctx, "failed to get invoice", err)
		return store.Invoice{}, err
	}
	return invoice, nil
}

// ListInvoicesByClient returns a client's invoices, newest first.
func (p *InvoiceProcessor) ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]store.Invoice, error) {
	invoices, err := p.store.ListInvoicesByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to list invoices", err)
		return nil, err
	}
	return invoices, nil
}

// MarkInvoicePaid is the manual override for payments received outside
// Stripe, cash or wire. It shares the guarded store write with the webhook
// path, so a race between the two settles on exactly one winner.
func (p *InvoiceProcessor) MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID) (store.Invoice, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "invoice_id", Value: invoiceID.String()})

	invoice, err := p.store.MarkInvoicePaid(ctx, invoiceID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Either no such invoice or it is past sent already.
			existing, getErr := p.store.GetInvoiceByID(ctx, invoiceID)
			if getErr != nil {
				return store.Invoice{}, ErrInvoiceNotFound
			}
			if existing.Status == store.InvoiceStatusPaid {
				return store.Invoice{}, ErrInvoiceAlreadyPaid
			}
			return store.Invoice{}, ErrInvalidInvoiceTransition
		}
		p.logger.Error(ctx, "failed to mark invoice paid", err)
		return store.Invoice{}, err
	}

	p.settlePayment(ctx, invoice)
	return invoice, nil
}

// SetInvoiceStatus applies a non-paid transition (send, cancel, refund).
func (p *InvoiceProcessor) SetInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string) (store.Invoice, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "invoice_id", Value: invoiceID.String()},
		observability.Field{Key: "target_status", Value: status},
	)

	invoice, err := p.store.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Invoice{}, ErrInvoiceNotFound
		}
		p.logger.Error(ctx, "failed to get invoice", err)
		return store.Invoice{}, err
	}

	allowed, ok := invoiceTransitions[invoice.Status]
	if !ok || !allowed[status] {
		return store.Invoice{}, ErrInvalidInvoiceTransition
	}

	updated, err := p.store.UpdateInvoiceStatus(ctx, invoiceID, status)
	if err != nil {
		p.logger.Error(ctx, "failed to update invoice status", err)
		return store.Invoice{}, err
	}
	return updated, nil
}

// settlePayment applies the side effects of a successful payment: the amount
// lands on the client's running total and a pending or past_due client
// becomes active. Failures are logged, not returned; the invoice is already
// paid and the caller should see success.
func (p *InvoiceProcessor) settlePayment(ctx context.Context, invoice store.Invoice) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "client_id", Value: invoice.ClientID.String()})

	client, err := p.store.AddClientPayment(ctx, invoice.ClientID, invoice.Amount)
	if err != nil {
		p.logger.Error(ctx, "failed to record client payment", err)
		return
	}

	if client.Status == store.ClientStatusPending || client.Status == store.ClientStatusPastDue {
		if _, err := p.store.UpdateClientStatus(ctx, invoice.ClientID, store.ClientStatusActive); err != nil {
			p.logger.Error(ctx, "failed to activate client after payment", err)
			return
		}
	}
	p.logger.Info(ctx, "payment settled on client")
}
