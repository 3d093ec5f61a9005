package lifecycle

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// UploadGrant is a single-use, time-bounded authorization to upload one
// file directly to object storage.
type UploadGrant struct {
	URL         string    `json:"url"`
	Method      string    `json:"method"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Presigner hands out upload grants against the object store.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string) (UploadGrant, error)
}

// CheckoutIntent is what the client needs to complete a subscription payment.
type CheckoutIntent struct {
	SubscriptionRef string `json:"subscription_id"`
	ClientSecret    string `json:"client_secret"`
}

// SubscriptionDetails is the provider-side view of a subscription.
type SubscriptionDetails struct {
	Ref              string
	Status           string
	PriceRef         string
	CurrentPeriodEnd time.Time
	Metadata         map[string]string
}

// BillingProvider is the payment processor boundary. Implemented by the
// billing package; mocked in tests.
type BillingProvider interface {
	CreateCustomer(ctx context.Context, email string) (string, error)
	CreateSubscription(ctx context.Context, customerRef, priceRef string, metadata map[string]string) (CheckoutIntent, error)
	RetrieveSubscription(ctx context.Context, subscriptionRef string) (SubscriptionDetails, error)
	PortalSession(ctx context.Context, customerRef string) (string, error)
}

// Engine owns the claim/registration lifecycle: validation, submission,
// listing and review. All collaborators are injected; the engine holds no
// package-level state.
type Engine struct {
	db        *gorm.DB
	presigner Presigner
	billing   BillingProvider
}

func NewEngine(db *gorm.DB, presigner Presigner, billing BillingProvider) *Engine {
	return &Engine{
		db:        db,
		presigner: presigner,
		billing:   billing,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
