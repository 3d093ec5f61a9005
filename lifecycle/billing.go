package lifecycle

import (
	"context"
	"fmt"
	"strconv"

	"restaurant-claims-api/models"
)

// StartSubscription sets up a payment-processor subscription for a
// (user, restaurant) pair. The processor customer is created lazily on
// first checkout and remembered on the user row. A paid subscription for
// the same restaurant and plan blocks a second checkout.
func (e *Engine) StartSubscription(ctx context.Context, userID, restaurantID uint, priceRef string) (CheckoutIntent, error) {
	if restaurantID == 0 || priceRef == "" {
		return CheckoutIntent{}, ErrMissingFields
	}

	var user models.User
	if err := e.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if isNotFound(err) {
			return CheckoutIntent{}, ErrUserNotFound
		}
		return CheckoutIntent{}, fmt.Errorf("fetching user: %w", err)
	}

	if user.CustomerRef == "" {
		customerRef, err := e.billing.CreateCustomer(ctx, user.Email)
		if err != nil {
			return CheckoutIntent{}, fmt.Errorf("creating billing customer: %w", err)
		}
		if err := e.db.WithContext(ctx).Model(&user).Update("customer_ref", customerRef).Error; err != nil {
			return CheckoutIntent{}, fmt.Errorf("storing billing customer: %w", err)
		}
		user.CustomerRef = customerRef
	}

	var paid int64
	err := e.db.WithContext(ctx).Model(&models.SubscriptionRecord{}).
		Where("user_id = ? AND restaurant_id = ? AND price_ref = ? AND status = ?",
			userID, restaurantID, priceRef, models.SubscriptionPaid).
		Count(&paid).Error
	if err != nil {
		return CheckoutIntent{}, fmt.Errorf("checking existing subscriptions: %w", err)
	}
	if paid > 0 {
		return CheckoutIntent{}, ErrDuplicateSubscription
	}

	intent, err := e.billing.CreateSubscription(ctx, user.CustomerRef, priceRef, map[string]string{
		"restaurant": strconv.FormatUint(uint64(restaurantID), 10),
		"user":       strconv.FormatUint(uint64(userID), 10),
	})
	if err != nil {
		return CheckoutIntent{}, fmt.Errorf("creating subscription: %w", err)
	}
	return intent, nil
}

// BillingDetails fetches the provider-side view of a subscription.
func (e *Engine) BillingDetails(ctx context.Context, subscriptionRef string) (SubscriptionDetails, error) {
	return e.billing.RetrieveSubscription(ctx, subscriptionRef)
}

// CreatePortalSession returns a billing-portal URL for a user who already
// has a processor customer.
func (e *Engine) CreatePortalSession(ctx context.Context, userID uint) (string, error) {
	var user models.User
	if err := e.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if isNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("fetching user: %w", err)
	}
	if user.CustomerRef == "" {
		return "", ErrNoBillingAccount
	}
	url, err := e.billing.PortalSession(ctx, user.CustomerRef)
	if err != nil {
		return "", fmt.Errorf("creating portal session: %w", err)
	}
	return url, nil
}
