package processor

import (
	"context"
	"errors"
	"fmt"

	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"
	"gettupp-server/internal/tiers"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
)

// GeneratedInvoice pairs a created invoice with its Stripe checkout handle.
type GeneratedInvoice struct {
	Invoice     store.Invoice `json:"invoice"`
	CheckoutURL string        `json:"checkout_url,omitempty"`
}

// GenerateInvoice creates an invoice for a tier and opens a Stripe checkout
// session for it. An empty tierName bills the client's stored tier; passing a
// different tier invoices an upgrade or downgrade without touching the client
// record. The pilot tier is a one-time payment; every other tier checks out
// as a monthly subscription.
//
// The invoice row starts as draft and is promoted to sent only once the
// checkout session is attached. If Stripe fails, the draft is cancelled so no
// payable invoice survives a failed generation.
func (p *InvoiceProcessor) GenerateInvoice(ctx context.Context, clientID uuid.UUID, tierName string) (GeneratedInvoice, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "client_id", Value: clientID.String()})

	client, err := p.store.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return GeneratedInvoice{}, ErrClientNotFound
		}
		p.logger.Error(ctx, "failed to get client", err)
		return GeneratedInvoice{}, err
	}

	if tierName == "" {
		tierName = client.Tier
	}
	tier, err := tiers.Lookup(tierName)
	if err != nil {
		return GeneratedInvoice{}, ErrInvalidTier
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "tier", Value: string(tier.Name)})

	invoice, err := p.store.CreateInvoice(ctx, store.CreateInvoiceParams{
		ClientID:    clientID,
		Description: fmt.Sprintf("%s - %s", tier.DisplayName, client.Name),
		Tier:        string(tier.Name),
		Amount:      tier.Price,
		Currency:    "usd",
		Status:      store.InvoiceStatusDraft,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create invoice", err)
		return GeneratedInvoice{}, err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "invoice_id", Value: invoice.ID.String()})

	checkoutSession, err := p.createCheckoutSession(ctx, client, tier, invoice)
	if err != nil {
		p.cancelDraft(ctx, invoice.ID)
		return GeneratedInvoice{}, err
	}

	if err := p.store.UpdateInvoiceStripeSessionID(ctx, invoice.ID, checkoutSession.ID); err != nil {
		p.logger.Error(ctx, "failed to attach checkout session to invoice", err)
		p.cancelDraft(ctx, invoice.ID)
		return GeneratedInvoice{}, err
	}

	sent, err := p.store.UpdateInvoiceStatus(ctx, invoice.ID, store.InvoiceStatusSent)
	if err != nil {
		p.logger.Error(ctx, "failed to promote invoice to sent", err)
		return GeneratedInvoice{}, err
	}

	p.logger.Info(ctx, "checkout session created for invoice")
	return GeneratedInvoice{
		Invoice:     sent,
		CheckoutURL: checkoutSession.URL,
	}, nil
}

func (p *InvoiceProcessor) createCheckoutSession(ctx context.Context, client store.Client, tier tiers.Tier, invoice store.Invoice) (*stripe.CheckoutSession, error) {
	stripeCustomerID, err := p.ensureStripeCustomer(ctx, client)
	if err != nil {
		return nil, err
	}

	mode := stripe.CheckoutSessionModeSubscription
	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String("usd"),
		UnitAmount: stripe.Int64(tier.Price * 100),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(tier.DisplayName),
		},
	}
	if tier.OneTime {
		mode = stripe.CheckoutSessionModePayment
	} else {
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String("month"),
		}
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(stripeCustomerID),
		Mode:     stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: priceData,
				Quantity:  stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/billing/payment_attempt?session_id={CHECKOUT_SESSION_ID}", p.webappURL)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/billing/cancelled", p.webappURL)),
	}
	params.AddMetadata("invoice_id", invoice.ID.String())

	checkoutSession, err := session.New(params)
	if err != nil {
		p.logger.Error(ctx, "failed to create checkout session", err)
		return nil, ErrFailedToCreateCheckout
	}
	return checkoutSession, nil
}

// cancelDraft compensates a failed generation. Best-effort: the draft is not
// payable through checkout anyway, it just should not linger on the client.
func (p *InvoiceProcessor) cancelDraft(ctx context.Context, invoiceID uuid.UUID) {
	if _, err := p.store.UpdateInvoiceStatus(ctx, invoiceID, store.InvoiceStatusCancelled); err != nil {
		p.logger.Error(ctx, "failed to cancel draft invoice", err)
	}
}

// ensureStripeCustomer returns the client's Stripe customer ID, creating the
// customer on first use.
func (p *InvoiceProcessor) ensureStripeCustomer(ctx context.Context, client store.Client) (string, error) {
	if client.StripeCustomerID != nil && *client.StripeCustomerID != "" {
		return *client.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(client.Email),
		Name:  stripe.String(client.Name),
	}
	params.AddMetadata("client_id", client.ID.String())

	created, err := customer.New(params)
	if err != nil {
		p.logger.Error(ctx, "failed to create stripe customer", err)
		return "", ErrFailedToCreateCustomer
	}

	if err := p.store.UpdateClientStripeCustomerID(ctx, client.ID, created.ID); err != nil {
		p.logger.Error(ctx, "failed to save stripe customer id", err)
		return "", err
	}
	return created.ID, nil
}
