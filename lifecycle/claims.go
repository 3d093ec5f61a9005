package lifecycle

import (
	"context"
	"fmt"

	"restaurant-claims-api/models"
)

// ValidateClaim decides whether a claim over the restaurant may proceed.
// An approved request anywhere blocks everyone (ErrAlreadyClaimed); a
// pending request blocks new claims until review resolves it
// (ErrReviewInProgress). The full result set is scanned before deciding so
// an approved row wins regardless of ordering.
func (e *Engine) ValidateClaim(ctx context.Context, restaurantID uint) error {
	var restaurant models.Restaurant
	if err := e.db.WithContext(ctx).First(&restaurant, restaurantID).Error; err != nil {
		if isNotFound(err) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("fetching restaurant: %w", err)
	}
	if restaurant.Claimed {
		return ErrAlreadyClaimed
	}

	var requests []models.VerificationRequest
	err := e.db.WithContext(ctx).
		Where("kind = ? AND restaurant_id = ? AND status IN ?",
			models.KindClaim, restaurantID,
			[]models.ReviewStatus{models.StatusUnclaimed, models.StatusApproved}).
		Find(&requests).Error
	if err != nil {
		return fmt.Errorf("fetching verification requests: %w", err)
	}

	hasPending := false
	for _, r := range requests {
		if r.Status == models.StatusApproved {
			return ErrAlreadyClaimed
		}
		if r.Status == models.StatusUnclaimed {
			hasPending = true
		}
	}
	if hasPending {
		return ErrReviewInProgress
	}
	return nil
}

// SubmitClaim validates and records a new ownership claim. The validate
// read and the insert are not transactional; a duplicate slipping through
// is resolved at review time, not merged here.
func (e *Engine) SubmitClaim(ctx context.Context, userID, restaurantID uint, einTaxID string, documents []string) (*models.VerificationRequest, error) {
	if restaurantID == 0 || einTaxID == "" || len(documents) == 0 {
		return nil, ErrMissingFields
	}

	if err := e.ValidateClaim(ctx, restaurantID); err != nil {
		return nil, err
	}

	request := models.VerificationRequest{
		Kind:         models.KindClaim,
		UserID:       userID,
		RestaurantID: &restaurantID,
		EinTaxID:     einTaxID,
		Documents:    documents,
		Status:       models.PendingStatus(models.KindClaim),
	}
	if err := e.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, fmt.Errorf("inserting claim request: %w", err)
	}
	return &request, nil
}
