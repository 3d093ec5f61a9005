package billing

import (
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Event is the decoded, signature-verified webhook payload, reduced to
// the fields this service acts on.
type Event struct {
	Type                  string
	InvoicePaid           *InvoicePaidEvent
	SubscriptionCancelled *SubscriptionCancelledEvent
}

const (
	EventInvoicePaid           = "invoice.paid"
	EventSubscriptionCancelled = "customer.subscription.deleted"
)

type InvoicePaidEvent struct {
	CustomerRef     string
	SubscriptionRef string
	Status          string
}

type SubscriptionCancelledEvent struct {
	CustomerRef     string
	SubscriptionRef string
	PriceRef        string
	Status          string
	RestaurantMeta  string
	UserMeta        string
}

// VerifyEvent checks the webhook signature against the endpoint secret
// and decodes the events this service handles. Unhandled event types come
// back with only Type set so the caller can acknowledge them.
func (s *Stripe) VerifyEvent(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	decoded := &Event{Type: string(event.Type)}
	switch decoded.Type {
	case EventInvoicePaid:
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return nil, fmt.Errorf("decoding invoice event: %w", err)
		}
		paid := &InvoicePaidEvent{
			Status: string(invoice.Status),
		}
		if invoice.Customer != nil {
			paid.CustomerRef = invoice.Customer.ID
		}
		if invoice.Subscription != nil {
			paid.SubscriptionRef = invoice.Subscription.ID
		}
		decoded.InvoicePaid = paid
	case EventSubscriptionCancelled:
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			return nil, fmt.Errorf("decoding subscription event: %w", err)
		}
		cancelled := &SubscriptionCancelledEvent{
			SubscriptionRef: subscription.ID,
			Status:          string(subscription.Status),
			RestaurantMeta:  subscription.Metadata["restaurant"],
			UserMeta:        subscription.Metadata["user"],
		}
		if subscription.Customer != nil {
			cancelled.CustomerRef = subscription.Customer.ID
		}
		if subscription.Items != nil && len(subscription.Items.Data) > 0 && subscription.Items.Data[0].Price != nil {
			cancelled.PriceRef = subscription.Items.Data[0].Price.ID
		}
		decoded.SubscriptionCancelled = cancelled
	}
	return decoded, nil
}
