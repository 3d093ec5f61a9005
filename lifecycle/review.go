package lifecycle

import (
	"context"
	"fmt"

	"restaurant-claims-api/models"
	"restaurant-claims-api/statemachine"
)

// ReviewRequest resolves a pending verification request. Approving a
// claim marks the restaurant claimed, attaches the submitted documents
// and sets the owner; approving a registration creates the restaurant
// row, already claimed by the submitter. Terminal requests never move
// again — the state machine rejects the transition.
func (e *Engine) ReviewRequest(ctx context.Context, requestID uint, approve bool, reason string) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	if err := e.db.WithContext(ctx).First(&request, requestID).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("fetching verification request: %w", err)
	}

	target := models.StatusApproved
	if !approve {
		target = models.StatusRejected
	}
	if err := statemachine.CanTransition(request.Status, target, statemachine.ActorReviewer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	if approve {
		if err := e.applyApproval(ctx, &request); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{"status": target, "reason": reason}
	if err := e.db.WithContext(ctx).Model(&request).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("updating verification request: %w", err)
	}
	request.Status = target
	request.Reason = reason
	return &request, nil
}

func (e *Engine) applyApproval(ctx context.Context, request *models.VerificationRequest) error {
	switch request.Kind {
	case models.KindClaim:
		if request.RestaurantID == nil {
			return ErrRestaurantNotFound
		}
		var restaurant models.Restaurant
		if err := e.db.WithContext(ctx).First(&restaurant, *request.RestaurantID).Error; err != nil {
			if isNotFound(err) {
				return ErrRestaurantNotFound
			}
			return fmt.Errorf("fetching restaurant: %w", err)
		}
		userID := request.UserID
		restaurant.Claimed = true
		restaurant.OwnerID = &userID
		restaurant.Documents = request.Documents
		if err := e.db.WithContext(ctx).Save(&restaurant).Error; err != nil {
			return fmt.Errorf("marking restaurant claimed: %w", err)
		}
	case models.KindRegistration:
		userID := request.UserID
		restaurant := models.Restaurant{
			OwnerID:    &userID,
			Name:       request.Name,
			Address:    request.Address,
			City:       request.City,
			State:      request.State,
			PostalCode: request.PostalCode,
			Contact:    request.Contact,
			Hours:      request.Hours,
			Cuisines:   request.Cuisines,
			Latitude:   request.Latitude,
			Longitude:  request.Longitude,
			Claimed:    true,
			Documents:  request.Documents,
		}
		if err := e.db.WithContext(ctx).Create(&restaurant).Error; err != nil {
			return fmt.Errorf("creating registered restaurant: %w", err)
		}
		request.RestaurantID = &restaurant.ID
		if err := e.db.WithContext(ctx).Model(request).Update("restaurant_id", restaurant.ID).Error; err != nil {
			return fmt.Errorf("linking registration to restaurant: %w", err)
		}
	}
	return nil
}

// PendingRequests lists every non-terminal request, oldest first, for the
// review queue.
func (e *Engine) PendingRequests(ctx context.Context) ([]models.VerificationRequest, error) {
	var requests []models.VerificationRequest
	err := e.db.WithContext(ctx).
		Where("status IN ?", []models.ReviewStatus{models.StatusUnclaimed, models.StatusUnregistered}).
		Order("created_at").Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("fetching pending requests: %w", err)
	}
	return requests, nil
}
