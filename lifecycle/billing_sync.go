package lifecycle

import (
	"context"
	"fmt"

	"restaurant-claims-api/models"
)

// PaymentUpdate is the webhook-derived payload applied to the
// subscription ledger.
type PaymentUpdate struct {
	UserID          uint
	RestaurantID    uint
	CustomerRef     string
	SubscriptionRef string
	PriceRef        string
	Status          string
}

// ApplyInvoicePaid upserts the subscription record for the restaurant and
// promotes the pair: the user becomes verified and the restaurant premium.
func (e *Engine) ApplyInvoicePaid(ctx context.Context, update PaymentUpdate) error {
	record := models.SubscriptionRecord{RestaurantID: update.RestaurantID}
	err := e.db.WithContext(ctx).
		Where("restaurant_id = ?", update.RestaurantID).
		FirstOrCreate(&record).Error
	if err != nil {
		return fmt.Errorf("upserting subscription record: %w", err)
	}

	err = e.db.WithContext(ctx).Model(&record).Updates(map[string]interface{}{
		"user_id":          update.UserID,
		"customer_ref":     update.CustomerRef,
		"subscription_ref": update.SubscriptionRef,
		"price_ref":        update.PriceRef,
		"status":           update.Status,
	}).Error
	if err != nil {
		return fmt.Errorf("updating subscription record: %w", err)
	}

	err = e.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", update.UserID).
		Updates(map[string]interface{}{
			"verified":     true,
			"customer_ref": update.CustomerRef,
		}).Error
	if err != nil {
		return fmt.Errorf("marking user verified: %w", err)
	}

	err = e.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("id = ?", update.RestaurantID).
		Updates(map[string]interface{}{
			"premium":     true,
			"payment_ref": record.ID,
		}).Error
	if err != nil {
		return fmt.Errorf("marking restaurant premium: %w", err)
	}
	return nil
}

// ApplySubscriptionCancelled records the provider-side cancellation and
// drops the restaurant back to the free tier.
func (e *Engine) ApplySubscriptionCancelled(ctx context.Context, update PaymentUpdate) error {
	err := e.db.WithContext(ctx).Model(&models.SubscriptionRecord{}).
		Where("subscription_ref = ?", update.SubscriptionRef).
		Update("status", update.Status).Error
	if err != nil {
		return fmt.Errorf("updating subscription record: %w", err)
	}

	err = e.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("id = ?", update.RestaurantID).
		Updates(map[string]interface{}{
			"premium":     false,
			"payment_ref": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("downgrading restaurant: %w", err)
	}
	return nil
}
