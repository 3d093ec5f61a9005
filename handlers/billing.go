package handlers

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"restaurant-claims-api/billing"
	"restaurant-claims-api/lifecycle"
	"restaurant-claims-api/middleware"
	"restaurant-claims-api/models"

	"github.com/gin-gonic/gin"
)

type CreateSubscriptionRequest struct {
	PriceID      string `json:"price_id" binding:"required"`
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
}

// CreateSubscription starts a subscription checkout for a restaurant
func (h *Handler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	userID := middleware.GetUserID(c)
	intent, err := h.engine.StartSubscription(c.Request.Context(), userID, req.RestaurantID, req.PriceID)
	if err != nil {
		engineError(c, err)
		return
	}

	respond(c, http.StatusOK, "Subscription started successfully!", gin.H{
		"subscription_id": intent.SubscriptionRef,
		"client_secret":   intent.ClientSecret,
	})
}

// CreatePortalSession returns a billing-portal URL for the caller
func (h *Handler) CreatePortalSession(c *gin.Context) {
	userID := middleware.GetUserID(c)
	url, err := h.engine.CreatePortalSession(c.Request.Context(), userID)
	if err != nil {
		engineError(c, err)
		return
	}

	respond(c, http.StatusOK, "Customer portal session created successfully.", gin.H{
		"url": url,
	})
}

// StripeWebhook applies signature-verified payment events to the
// subscription ledger. Unhandled event types are acknowledged and dropped.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := h.webhooks.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case billing.EventInvoicePaid:
		if event.InvoicePaid.Status != models.SubscriptionPaid {
			break
		}
		// The invoice carries no restaurant linkage; the subscription's
		// metadata does.
		details, err := h.engine.BillingDetails(c.Request.Context(), event.InvoicePaid.SubscriptionRef)
		if err != nil {
			log.Printf("webhook: retrieving subscription: %v", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		update, ok := paymentUpdateFromMeta(details.Metadata)
		if !ok {
			log.Printf("webhook: subscription %s missing metadata", event.InvoicePaid.SubscriptionRef)
			break
		}
		update.CustomerRef = event.InvoicePaid.CustomerRef
		update.SubscriptionRef = event.InvoicePaid.SubscriptionRef
		update.PriceRef = details.PriceRef
		update.Status = event.InvoicePaid.Status
		if err := h.engine.ApplyInvoicePaid(c.Request.Context(), update); err != nil {
			log.Printf("webhook: applying invoice.paid: %v", err)
			c.Status(http.StatusInternalServerError)
			return
		}
	case billing.EventSubscriptionCancelled:
		cancelled := event.SubscriptionCancelled
		update, ok := paymentUpdateFromMeta(map[string]string{
			"restaurant": cancelled.RestaurantMeta,
			"user":       cancelled.UserMeta,
		})
		if !ok {
			log.Printf("webhook: cancellation %s missing metadata", cancelled.SubscriptionRef)
			break
		}
		update.CustomerRef = cancelled.CustomerRef
		update.SubscriptionRef = cancelled.SubscriptionRef
		update.PriceRef = cancelled.PriceRef
		update.Status = cancelled.Status
		if err := h.engine.ApplySubscriptionCancelled(c.Request.Context(), update); err != nil {
			log.Printf("webhook: applying cancellation: %v", err)
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	c.Status(http.StatusOK)
}

func paymentUpdateFromMeta(metadata map[string]string) (lifecycle.PaymentUpdate, bool) {
	restaurantID, err := strconv.ParseUint(metadata["restaurant"], 10, 32)
	if err != nil {
		return lifecycle.PaymentUpdate{}, false
	}
	userID, err := strconv.ParseUint(metadata["user"], 10, 32)
	if err != nil {
		return lifecycle.PaymentUpdate{}, false
	}
	return lifecycle.PaymentUpdate{
		UserID:       uint(userID),
		RestaurantID: uint(restaurantID),
	}, true
}
