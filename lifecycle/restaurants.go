package lifecycle

import (
	"context"
	"fmt"

	"restaurant-claims-api/models"
)

// SearchRestaurants matches restaurant names against the search text,
// excluding already-claimed listings. Names are stored normalized, so the
// search term is normalized the same way before matching.
func (e *Engine) SearchRestaurants(ctx context.Context, searchText string) ([]models.PublicRestaurant, error) {
	var restaurants []models.Restaurant
	query := e.db.WithContext(ctx).Where("claimed = ?", false)
	if term := NormalizeText(searchText); term != "" {
		query = query.Where("name LIKE ?", "%"+term+"%")
	}
	if err := query.Order("name").Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("searching restaurants: %w", err)
	}

	views := make([]models.PublicRestaurant, 0, len(restaurants))
	for i := range restaurants {
		views = append(views, restaurants[i].Public())
	}
	return views, nil
}
