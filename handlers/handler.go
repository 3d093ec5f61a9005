package handlers

import (
	"context"
	"errors"
	"net/http"

	"restaurant-claims-api/billing"
	"restaurant-claims-api/config"
	"restaurant-claims-api/lifecycle"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Mailer sends transactional email. Satisfied by email.SendGrid.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// WebhookVerifier checks and decodes payment-processor webhook payloads.
type WebhookVerifier interface {
	VerifyEvent(payload []byte, signature string) (*billing.Event, error)
}

// Handler is the gateway layer: it binds input, calls the engine and
// translates engine errors into the uniform {code, message} contract.
type Handler struct {
	db       *gorm.DB
	engine   *lifecycle.Engine
	mailer   Mailer
	webhooks WebhookVerifier
	cfg      *config.Config
}

func New(db *gorm.DB, engine *lifecycle.Engine, mailer Mailer, webhooks WebhookVerifier, cfg *config.Config) *Handler {
	return &Handler{
		db:       db,
		engine:   engine,
		mailer:   mailer,
		webhooks: webhooks,
		cfg:      cfg,
	}
}

func respond(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"code": status, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	respond(c, status, message, nil)
}

// engineError maps engine sentinels onto transport codes. Anything
// unrecognized is an internal failure and stays generic — collaborator
// detail never reaches the client.
func engineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrMissingFields):
		respondError(c, http.StatusBadRequest, "Missing or invalid fields")
	case errors.Is(err, lifecycle.ErrAlreadyClaimed):
		respondError(c, http.StatusConflict, "Restaurant has already been claimed")
	case errors.Is(err, lifecycle.ErrReviewInProgress):
		respondError(c, http.StatusConflict, "A claim for this restaurant is already under review")
	case errors.Is(err, lifecycle.ErrDuplicateRegistration):
		respondError(c, http.StatusConflict, "A registration for this restaurant is already pending")
	case errors.Is(err, lifecycle.ErrDuplicateSubscription):
		respondError(c, http.StatusConflict, "A paid subscription for this restaurant and plan already exists. Please reach out to support for more.")
	case errors.Is(err, lifecycle.ErrRestaurantNotFound):
		respondError(c, http.StatusNotFound, "Restaurant not found")
	case errors.Is(err, lifecycle.ErrRequestNotFound):
		respondError(c, http.StatusNotFound, "Verification request not found")
	case errors.Is(err, lifecycle.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, lifecycle.ErrNoBillingAccount):
		respondError(c, http.StatusBadRequest, "No billing account exists for this user")
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		respondError(c, http.StatusConflict, "Request is not in a reviewable state")
	default:
		respondError(c, http.StatusInternalServerError, "Something went wrong!")
	}
}
