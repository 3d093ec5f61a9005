package lifecycle_test

import (
	"context"
	"testing"

	"restaurant-claims-api/lifecycle"
	"restaurant-claims-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown_request", func(t *testing.T) {
		engine, _, _, _ := newTestEngine(t)
		_, err := engine.ReviewRequest(ctx, 999, true, "")
		assert.ErrorIs(t, err, lifecycle.ErrRequestNotFound)
	})

	t.Run("approving_claim_marks_restaurant_claimed", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		restaurant := seedRestaurant(t, db, "main st diner")
		user := seedUser(t, db, "a@example.com")

		submitted, err := engine.SubmitClaim(ctx, user.ID, restaurant.ID, "12-3456789", []string{"doc1"})
		require.NoError(t, err)

		reviewed, err := engine.ReviewRequest(ctx, submitted.ID, true, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, reviewed.Status)

		var updated models.Restaurant
		require.NoError(t, db.First(&updated, restaurant.ID).Error)
		assert.True(t, updated.Claimed)
		require.NotNil(t, updated.OwnerID)
		assert.Equal(t, user.ID, *updated.OwnerID)
		assert.Equal(t, []string{"doc1"}, updated.Documents)
	})

	t.Run("approving_registration_creates_restaurant", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		user := seedUser(t, db, "a@example.com")

		submitted, err := engine.SubmitRegistration(ctx, user.ID, lifecycle.RegistrationInput{
			Name: "New Cafe", City: "Austin", State: "TX", PostalCode: "78701",
			Cuisines: "coffee,pastries", Documents: []string{"doc1"},
		})
		require.NoError(t, err)

		reviewed, err := engine.ReviewRequest(ctx, submitted.ID, true, "")
		require.NoError(t, err)
		require.NotNil(t, reviewed.RestaurantID)

		var created models.Restaurant
		require.NoError(t, db.First(&created, *reviewed.RestaurantID).Error)
		assert.Equal(t, "new cafe", created.Name)
		assert.True(t, created.Claimed)
		require.NotNil(t, created.OwnerID)
		assert.Equal(t, user.ID, *created.OwnerID)
		assert.Equal(t, []string{"coffee", "pastries"}, created.Cuisines)
	})

	t.Run("rejection_records_reason_and_creates_nothing", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		user := seedUser(t, db, "a@example.com")

		submitted, err := engine.SubmitRegistration(ctx, user.ID, lifecycle.RegistrationInput{
			Name: "New Cafe", PostalCode: "78701", Documents: []string{"doc1"},
		})
		require.NoError(t, err)

		reviewed, err := engine.ReviewRequest(ctx, submitted.ID, false, "illegible documents")
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, reviewed.Status)
		assert.Equal(t, "illegible documents", reviewed.Reason)

		var restaurants int64
		require.NoError(t, db.Model(&models.Restaurant{}).Count(&restaurants).Error)
		assert.Zero(t, restaurants)
	})

	t.Run("terminal_requests_cannot_be_reviewed_again", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		restaurant := seedRestaurant(t, db, "main st diner")
		user := seedUser(t, db, "a@example.com")

		submitted, err := engine.SubmitClaim(ctx, user.ID, restaurant.ID, "12-3456789", []string{"doc1"})
		require.NoError(t, err)

		_, err = engine.ReviewRequest(ctx, submitted.ID, false, "nope")
		require.NoError(t, err)

		_, err = engine.ReviewRequest(ctx, submitted.ID, true, "")
		assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	})

	t.Run("pending_queue_oldest_first", func(t *testing.T) {
		engine, db, _, _ := newTestEngine(t)
		restaurant := seedRestaurant(t, db, "main st diner")
		user := seedUser(t, db, "a@example.com")

		_, err := engine.SubmitClaim(ctx, user.ID, restaurant.ID, "12-3456789", []string{"doc1"})
		require.NoError(t, err)
		_, err = engine.SubmitRegistration(ctx, user.ID, lifecycle.RegistrationInput{
			Name: "new cafe", PostalCode: "78701", Documents: []string{"doc2"},
		})
		require.NoError(t, err)

		queue, err := engine.PendingRequests(ctx)
		require.NoError(t, err)
		assert.Len(t, queue, 2)
	})
}
