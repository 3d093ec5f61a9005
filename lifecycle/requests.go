package lifecycle

import (
	"context"
	"fmt"
	"time"

	"restaurant-claims-api/models"

	"golang.org/x/sync/errgroup"
)

// RequestView is the uniform projection of a claim or registration
// request returned to the requesting user. Billing fields are populated
// only when the billing view is requested.
type RequestView struct {
	ID           uint                `json:"id"`
	Type         models.RequestKind  `json:"type"`
	Status       models.ReviewStatus `json:"status"`
	Name         string              `json:"name"`
	Address      string              `json:"address"`
	City         string              `json:"city"`
	State        string              `json:"state"`
	PostalCode   string              `json:"postal_code"`
	Reason       string              `json:"reason,omitempty"`
	RestaurantID *uint               `json:"restaurant_id,omitempty"`

	SubscriptionStatus string     `json:"subscription_status,omitempty"`
	SubscriptionRef    string     `json:"subscription_id,omitempty"`
	EndDate            *time.Time `json:"end_date,omitempty"`
}

// ListRequests returns the user's claim requests followed by their
// registration requests. With includeBilling set, the result narrows to
// APPROVED requests only and each entry with a subscription record gets
// the provider-side status joined in. endDate is populated only for
// active subscriptions.
func (e *Engine) ListRequests(ctx context.Context, userID uint, includeBilling bool) ([]RequestView, error) {
	var claims, registrations []models.VerificationRequest

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.db.WithContext(gctx).
			Where("kind = ? AND user_id = ?", models.KindClaim, userID).
			Order("id").Find(&claims).Error
	})
	g.Go(func() error {
		return e.db.WithContext(gctx).
			Where("kind = ? AND user_id = ?", models.KindRegistration, userID).
			Order("id").Find(&registrations).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching verification requests: %w", err)
	}

	restaurants, err := e.restaurantsFor(ctx, claims)
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, 0, len(claims)+len(registrations))
	for _, r := range claims {
		view := RequestView{
			ID:           r.ID,
			Type:         models.KindClaim,
			Status:       r.Status,
			Reason:       r.Reason,
			RestaurantID: r.RestaurantID,
		}
		if r.RestaurantID != nil {
			if restaurant, ok := restaurants[*r.RestaurantID]; ok {
				view.Name = restaurant.Name
				view.Address = restaurant.Address
				view.City = restaurant.City
				view.State = restaurant.State
				view.PostalCode = restaurant.PostalCode
			}
		}
		views = append(views, view)
	}
	for _, r := range registrations {
		views = append(views, RequestView{
			ID:           r.ID,
			Type:         models.KindRegistration,
			Status:       r.Status,
			Name:         r.Name,
			Address:      r.Address,
			City:         r.City,
			State:        r.State,
			PostalCode:   r.PostalCode,
			Reason:       r.Reason,
			RestaurantID: r.RestaurantID,
		})
	}

	if !includeBilling {
		return views, nil
	}
	return e.enrichBilling(ctx, userID, views)
}

func (e *Engine) restaurantsFor(ctx context.Context, claims []models.VerificationRequest) (map[uint]models.Restaurant, error) {
	var ids []uint
	for _, r := range claims {
		if r.RestaurantID != nil {
			ids = append(ids, *r.RestaurantID)
		}
	}
	result := make(map[uint]models.Restaurant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var restaurants []models.Restaurant
	if err := e.db.WithContext(ctx).Where("id IN ?", ids).Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("fetching claimed restaurants: %w", err)
	}
	for _, r := range restaurants {
		result[r.ID] = r
	}
	return result, nil
}

// enrichBilling filters to approved requests and joins the subscription
// ledger plus the live provider status. Billing only makes sense for a
// claimed restaurant, so pending and rejected entries are suppressed.
func (e *Engine) enrichBilling(ctx context.Context, userID uint, views []RequestView) ([]RequestView, error) {
	var records []models.SubscriptionRecord
	if err := e.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("fetching subscription records: %w", err)
	}

	details := make([]SubscriptionDetails, len(records))
	g, gctx := errgroup.WithContext(ctx)
	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			d, err := e.billing.RetrieveSubscription(gctx, record.SubscriptionRef)
			if err != nil {
				return fmt.Errorf("retrieving subscription %s: %w", record.SubscriptionRef, err)
			}
			details[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byRestaurant := make(map[uint]SubscriptionDetails, len(records))
	for i, record := range records {
		byRestaurant[record.RestaurantID] = details[i]
	}

	approved := make([]RequestView, 0, len(views))
	for _, view := range views {
		if view.Status != models.StatusApproved {
			continue
		}
		if view.RestaurantID != nil {
			if d, ok := byRestaurant[*view.RestaurantID]; ok {
				view.SubscriptionStatus = d.Status
				view.SubscriptionRef = d.Ref
				if d.Status == models.SubscriptionActive {
					end := d.CurrentPeriodEnd
					view.EndDate = &end
				}
			}
		}
		approved = append(approved, view)
	}
	return approved, nil
}
