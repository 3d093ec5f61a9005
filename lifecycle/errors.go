package lifecycle

import "errors"

// Sentinel errors returned by the engine. Handlers translate these into
// transport status codes; nothing else crosses the boundary.
var (
	ErrMissingFields         = errors.New("missing or invalid fields")
	ErrAlreadyClaimed        = errors.New("restaurant already claimed")
	ErrReviewInProgress      = errors.New("claim review already in progress")
	ErrDuplicateRegistration = errors.New("a registration for this restaurant is already pending")
	ErrDuplicateSubscription = errors.New("a paid subscription for this restaurant and plan already exists")
	ErrRestaurantNotFound    = errors.New("restaurant not found")
	ErrRequestNotFound       = errors.New("verification request not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrNoBillingAccount      = errors.New("no billing account for user")
	ErrInvalidTransition     = errors.New("invalid review transition")
)
