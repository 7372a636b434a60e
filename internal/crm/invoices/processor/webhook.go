package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"

	"github.com/stripe/stripe-go/v79"
)

// HandleWebhook dispatches a verified Stripe event. Unknown event types are
// logged and acknowledged so Stripe does not retry them.
func (p *InvoiceProcessor) HandleWebhook(ctx context.Context, event stripe.Event) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "stripe_event_type", Value: string(event.Type)})

	switch event.Type {
	case "checkout.session.completed":
		var checkoutSession stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
			p.logger.Error(ctx, "failed to unmarshal checkout session", err)
			return ErrWebhookProcessingFailed
		}
		return p.checkoutSessionCompleted(ctx, checkoutSession)

	case "invoice.payment_failed":
		var stripeInvoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &stripeInvoice); err != nil {
			p.logger.Error(ctx, "failed to unmarshal stripe invoice", err)
			return ErrWebhookProcessingFailed
		}
		return p.paymentFailed(ctx, stripeInvoice)

	default:
		p.logger.Warn(ctx, fmt.Sprintf("unhandled event type: %s", event.Type))
	}
	return nil
}

// checkoutSessionCompleted marks the invoice behind the session as paid and
// settles the payment on the client. Redelivered events are acknowledged
// without effect: the guarded paid transition matches no row the second time.
func (p *InvoiceProcessor) checkoutSessionCompleted(ctx context.Context, checkoutSession stripe.CheckoutSession) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "session_id", Value: checkoutSession.ID})

	invoice, err := p.store.GetInvoiceByStripeSessionID(ctx, checkoutSession.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Warn(ctx, "completed session matches no invoice")
			return nil
		}
		p.logger.Error(ctx, "failed to look up invoice by session", err)
		return ErrWebhookProcessingFailed
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "invoice_id", Value: invoice.ID.String()})

	paid, err := p.store.MarkInvoicePaid(ctx, invoice.ID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Info(ctx, "invoice already settled, ignoring redelivery")
			return nil
		}
		p.logger.Error(ctx, "failed to mark invoice paid", err)
		return ErrWebhookProcessingFailed
	}

	p.settlePayment(ctx, paid)
	return nil
}

// paymentFailed marks the owning client past_due on a failed recurring
// charge.
func (p *InvoiceProcessor) paymentFailed(ctx context.Context, stripeInvoice stripe.Invoice) error {
	if stripeInvoice.Customer == nil {
		p.logger.Warn(ctx, "payment_failed event has no customer")
		return nil
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "stripe_customer_id", Value: stripeInvoice.Customer.ID})

	client, err := p.store.GetClientByStripeCustomerID(ctx, stripeInvoice.Customer.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Warn(ctx, "payment_failed customer matches no client")
			return nil
		}
		p.logger.Error(ctx, "failed to look up client by stripe customer", err)
		return ErrWebhookProcessingFailed
	}

	if client.Status == store.ClientStatusCancelled || client.Status == store.ClientStatusCompleted {
		p.logger.Info(ctx, "ignoring payment failure for inactive client")
		return nil
	}

	if _, err := p.store.UpdateClientStatus(ctx, client.ID, store.ClientStatusPastDue); err != nil {
		p.logger.Error(ctx, "failed to mark client past due", err)
		return ErrWebhookProcessingFailed
	}
	p.logger.Info(ctx, "client marked past due after failed payment")
	return nil
}
