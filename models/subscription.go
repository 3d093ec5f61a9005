package models

import "time"

// Provider-side subscription statuses this service branches on. The raw
// provider string is stored as-is; anything else is displayed untouched.
const (
	SubscriptionPaid      = "paid"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "canceled"
)

// SubscriptionRecord links a (user, restaurant) pair to its
// payment-processor subscription. Written only by the billing webhook;
// the lifecycle engine reads it to enrich approved claims.
type SubscriptionRecord struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	RestaurantID    uint      `json:"restaurant_id" gorm:"not null;index"`
	CustomerRef     string    `json:"-"`
	SubscriptionRef string    `json:"-" gorm:"index"`
	PriceRef        string    `json:"-"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
