package lifecycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRestaurants(t *testing.T) {
	ctx := context.Background()

	engine, db, _, _ := newTestEngine(t)
	seedRestaurant(t, db, "main st diner")
	seedRestaurant(t, db, "main st pizzeria")
	seedRestaurant(t, db, "corner cafe")

	claimed := seedRestaurant(t, db, "main st bbq")
	require.NoError(t, db.Model(&claimed).Update("claimed", true).Error)

	t.Run("matches_name_excluding_claimed", func(t *testing.T) {
		results, err := engine.SearchRestaurants(ctx, "main st")
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			assert.Contains(t, r.Name, "main st")
			assert.NotEqual(t, claimed.ID, r.ID)
		}
	})

	t.Run("search_term_is_normalized", func(t *testing.T) {
		results, err := engine.SearchRestaurants(ctx, "  MAIN St ")
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("empty_term_lists_all_unclaimed", func(t *testing.T) {
		results, err := engine.SearchRestaurants(ctx, "")
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})
}
