package billing

import (
	"context"
	"fmt"
	"time"

	"restaurant-claims-api/lifecycle"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Stripe implements the engine's BillingProvider against the Stripe API.
type Stripe struct {
	api             *client.API
	webhookSecret   string
	portalReturnURL string
}

func NewStripe(secretKey, webhookSecret, portalReturnURL string) *Stripe {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Stripe{
		api:             api,
		webhookSecret:   webhookSecret,
		portalReturnURL: portalReturnURL,
	}
}

func (s *Stripe) CreateCustomer(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	customer, err := s.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe customer create: %w", err)
	}
	return customer.ID, nil
}

// CreateSubscription starts an incomplete subscription; the caller
// completes payment client-side with the returned client secret.
func (s *Stripe) CreateSubscription(ctx context.Context, customerRef, priceRef string, metadata map[string]string) (lifecycle.CheckoutIntent, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerRef),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceRef)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	subscription, err := s.api.Subscriptions.New(params)
	if err != nil {
		return lifecycle.CheckoutIntent{}, fmt.Errorf("stripe subscription create: %w", err)
	}
	if subscription.LatestInvoice == nil || subscription.LatestInvoice.PaymentIntent == nil {
		return lifecycle.CheckoutIntent{}, fmt.Errorf("stripe subscription %s missing payment intent", subscription.ID)
	}
	return lifecycle.CheckoutIntent{
		SubscriptionRef: subscription.ID,
		ClientSecret:    subscription.LatestInvoice.PaymentIntent.ClientSecret,
	}, nil
}

func (s *Stripe) RetrieveSubscription(ctx context.Context, subscriptionRef string) (lifecycle.SubscriptionDetails, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	subscription, err := s.api.Subscriptions.Get(subscriptionRef, params)
	if err != nil {
		return lifecycle.SubscriptionDetails{}, fmt.Errorf("stripe subscription get: %w", err)
	}

	details := lifecycle.SubscriptionDetails{
		Ref:              subscription.ID,
		Status:           string(subscription.Status),
		CurrentPeriodEnd: time.Unix(subscription.CurrentPeriodEnd, 0),
		Metadata:         subscription.Metadata,
	}
	if subscription.Items != nil && len(subscription.Items.Data) > 0 && subscription.Items.Data[0].Price != nil {
		details.PriceRef = subscription.Items.Data[0].Price.ID
	}
	return details, nil
}

func (s *Stripe) PortalSession(ctx context.Context, customerRef string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerRef),
		ReturnURL: stripe.String(s.portalReturnURL),
	}
	params.Context = ctx
	session, err := s.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe portal session: %w", err)
	}
	return session.URL, nil
}
