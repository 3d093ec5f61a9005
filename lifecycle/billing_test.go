package lifecycle_test

import (
	"context"
	"testing"

	"restaurant-claims-api/lifecycle"
	"restaurant-claims-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("missing_fields", func(t *testing.T) {
		engine, _, _, _ := newTestEngine(t)
		_, err := engine.StartSubscription(ctx, 1, 0, "price_1")
		assert.ErrorIs(t, err, lifecycle.ErrMissingFields)
		_, err = engine.StartSubscription(ctx, 1, 2, "")
		assert.ErrorIs(t, err, lifecycle.ErrMissingFields)
	})

	t.Run("creates_customer_once", func(t *testing.T) {
		engine, db, _, billing := newTestEngine(t)
		user := seedUser(t, db, "a@example.com")
		restaurant := seedRestaurant(t, db, "main st diner")

		intent, err := engine.StartSubscription(ctx, user.ID, restaurant.ID, "price_1")
		require.NoError(t, err)
		assert.NotEmpty(t, intent.SubscriptionRef)
		assert.NotEmpty(t, intent.ClientSecret)
		assert.Equal(t, 1, billing.customersMade)

		// customer ref persisted; a second checkout reuses it
		var updated models.User
		require.NoError(t, db.First(&updated, user.ID).Error)
		assert.NotEmpty(t, updated.CustomerRef)

		other := seedRestaurant(t, db, "second diner")
		_, err = engine.StartSubscription(ctx, user.ID, other.ID, "price_1")
		require.NoError(t, err)
		assert.Equal(t, 1, billing.customersMade)
	})

	t.Run("paid_subscription_blocks_duplicate", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		user := seedUser(t, db, "a@example.com")
		restaurant := seedRestaurant(t, db, "main st diner")

		record := models.SubscriptionRecord{
			UserID: user.ID, RestaurantID: restaurant.ID,
			PriceRef: "price_1", Status: models.SubscriptionPaid,
		}
		require.NoError(t, db.Create(&record).Error)

		_, err := engine.StartSubscription(ctx, user.ID, restaurant.ID, "price_1")
		assert.ErrorIs(t, err, lifecycle.ErrDuplicateSubscription)

		// a different plan is allowed
		_, err = engine.StartSubscription(ctx, user.ID, restaurant.ID, "price_2")
		assert.NoError(t, err)
	})
}

func TestCreatePortalSession(t *testing.T) {
	ctx := context.Background()

	t.Run("requires_billing_account", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		user := seedUser(t, db, "a@example.com")

		_, err := engine.CreatePortalSession(ctx, user.ID)
		assert.ErrorIs(t, err, lifecycle.ErrNoBillingAccount)
	})

	t.Run("returns_portal_url", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		user := seedUser(t, db, "a@example.com")
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("customer_ref", "cus_9").Error)

		url, err := engine.CreatePortalSession(ctx, user.ID)
		require.NoError(t, err)
		assert.Contains(t, url, "cus_9")
	})
}

func TestApplyInvoicePaid(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes_user_and_restaurant", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		user := seedUser(t, db, "a@example.com")
		restaurant := seedRestaurant(t, db, "main st diner")

		err := engine.ApplyInvoicePaid(ctx, lifecycle.PaymentUpdate{
			UserID: user.ID, RestaurantID: restaurant.ID,
			CustomerRef: "cus_1", SubscriptionRef: "sub_1", PriceRef: "price_1",
			Status: models.SubscriptionPaid,
		})
		require.NoError(t, err)

		var record models.SubscriptionRecord
		require.NoError(t, db.Where("restaurant_id = ?", restaurant.ID).First(&record).Error)
		assert.Equal(t, models.SubscriptionPaid, record.Status)
		assert.Equal(t, "sub_1", record.SubscriptionRef)

		var updatedUser models.User
		require.NoError(t, db.First(&updatedUser, user.ID).Error)
		assert.True(t, updatedUser.Verified)
		assert.Equal(t, "cus_1", updatedUser.CustomerRef)

		var updatedRestaurant models.Restaurant
		require.NoError(t, db.First(&updatedRestaurant, restaurant.ID).Error)
		assert.True(t, updatedRestaurant.Premium)
		require.NotNil(t, updatedRestaurant.PaymentRef)
		assert.Equal(t, record.ID, *updatedRestaurant.PaymentRef)
	})

	t.Run("repeated_invoice_upserts_single_record", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		user := seedUser(t, db, "a@example.com")
		restaurant := seedRestaurant(t, db, "main st diner")

		update := lifecycle.PaymentUpdate{
			UserID: user.ID, RestaurantID: restaurant.ID,
			CustomerRef: "cus_1", SubscriptionRef: "sub_1", PriceRef: "price_1",
			Status: models.SubscriptionPaid,
		}
		require.NoError(t, engine.ApplyInvoicePaid(ctx, update))
		require.NoError(t, engine.ApplyInvoicePaid(ctx, update))

		var count int64
		require.NoError(t, db.Model(&models.SubscriptionRecord{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}

func TestApplySubscriptionCancelled(t *testing.T) {
	ctx := context.Background()

	t.Run("downgrades_restaurant", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		user := seedUser(t, db, "a@example.com")
		restaurant := seedRestaurant(t, db, "main st diner")

		require.NoError(t, engine.ApplyInvoicePaid(ctx, lifecycle.PaymentUpdate{
			UserID: user.ID, RestaurantID: restaurant.ID,
			CustomerRef: "cus_1", SubscriptionRef: "sub_1", PriceRef: "price_1",
			Status: models.SubscriptionPaid,
		}))

		require.NoError(t, engine.ApplySubscriptionCancelled(ctx, lifecycle.PaymentUpdate{
			UserID: user.ID, RestaurantID: restaurant.ID,
			SubscriptionRef: "sub_1", Status: models.SubscriptionCancelled,
		}))

		var record models.SubscriptionRecord
		require.NoError(t, db.Where("subscription_ref = ?", "sub_1").First(&record).Error)
		assert.Equal(t, models.SubscriptionCancelled, record.Status)

		var updatedRestaurant models.Restaurant
		require.NoError(t, db.First(&updatedRestaurant, restaurant.ID).Error)
		assert.False(t, updatedRestaurant.Premium)
		assert.Nil(t, updatedRestaurant.PaymentRef)
	})
}
