package lifecycle_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"restaurant-claims-api/config"
	"restaurant-claims-api/lifecycle"
	"restaurant-claims-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func newTestEngine(t *testing.T) (*lifecycle.Engine, *gorm.DB, *fakePresigner, *fakeBilling) {
	t.Helper()
	db := newTestDB(t)
	presigner := &fakePresigner{}
	billing := &fakeBilling{subscriptions: map[string]lifecycle.SubscriptionDetails{}}
	return lifecycle.NewEngine(db, presigner, billing), db, presigner, billing
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", Role: models.RoleRestaurantOwner}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: name, City: "austin", State: "tx"}
	require.NoError(t, db.Create(&restaurant).Error)
	return restaurant
}

// fakePresigner counts calls and can fail a specific one (1-based).
type fakePresigner struct {
	mu     sync.Mutex
	calls  int
	failAt int
}

func (f *fakePresigner) PresignPut(ctx context.Context, key, contentType string) (lifecycle.UploadGrant, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	if f.failAt != 0 && call == f.failAt {
		return lifecycle.UploadGrant{}, fmt.Errorf("presign refused")
	}
	return lifecycle.UploadGrant{
		URL:         "https://uploads.example.com/" + key,
		Method:      "PUT",
		Key:         key,
		ContentType: contentType,
		ExpiresAt:   time.Now().Add(5 * time.Minute),
	}, nil
}

// fakeBilling is an in-memory BillingProvider.
type fakeBilling struct {
	mu             sync.Mutex
	subscriptions  map[string]lifecycle.SubscriptionDetails
	customersMade  int
	checkoutsMade  int
	portalSessions int
}

func (f *fakeBilling) CreateCustomer(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customersMade++
	return fmt.Sprintf("cus_%d", f.customersMade), nil
}

func (f *fakeBilling) CreateSubscription(ctx context.Context, customerRef, priceRef string, metadata map[string]string) (lifecycle.CheckoutIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkoutsMade++
	ref := fmt.Sprintf("sub_%d", f.checkoutsMade)
	return lifecycle.CheckoutIntent{SubscriptionRef: ref, ClientSecret: "secret_" + ref}, nil
}

func (f *fakeBilling) RetrieveSubscription(ctx context.Context, subscriptionRef string) (lifecycle.SubscriptionDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	details, ok := f.subscriptions[subscriptionRef]
	if !ok {
		return lifecycle.SubscriptionDetails{}, fmt.Errorf("unknown subscription %s", subscriptionRef)
	}
	return details, nil
}

func (f *fakeBilling) PortalSession(ctx context.Context, customerRef string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.portalSessions++
	return "https://billing.example.com/session/" + customerRef, nil
}
