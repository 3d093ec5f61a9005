package models

import "time"

// RequestKind distinguishes the two flavours of verification request:
// a claim over an existing listing vs. a brand-new registration.
type RequestKind string

const (
	KindClaim        RequestKind = "claim"
	KindRegistration RequestKind = "registration"
)

// ReviewStatus is the closed status domain of a verification request.
// Claims start UNCLAIMED, registrations start UNREGISTERED; both end in
// APPROVED or REJECTED. Only a reviewer moves a request forward.
type ReviewStatus string

const (
	StatusUnclaimed    ReviewStatus = "unclaimed"
	StatusUnregistered ReviewStatus = "unregistered"
	StatusApproved     ReviewStatus = "approved"
	StatusRejected     ReviewStatus = "rejected"
)

// Terminal reports whether the status can never transition again.
func (s ReviewStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// PendingStatus returns the initial status for a request of the given kind.
func PendingStatus(kind RequestKind) ReviewStatus {
	if kind == KindRegistration {
		return StatusUnregistered
	}
	return StatusUnclaimed
}

// VerificationRequest is the ledger entry tracking a claim or a
// registration. Claim rows carry RestaurantID + EinTaxID + Documents;
// registration rows carry the full proposed restaurant payload instead.
type VerificationRequest struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Kind         RequestKind  `json:"kind" gorm:"not null;index"`
	UserID       uint         `json:"user_id" gorm:"not null;index"`
	RestaurantID *uint        `json:"restaurant_id" gorm:"index"`
	EinTaxID     string       `json:"-"`
	Status       ReviewStatus `json:"status" gorm:"not null;index"`
	Reason       string       `json:"reason"` // reviewer note, set on rejection
	Documents    []string     `json:"-" gorm:"serializer:json"`
	Images       []string     `json:"-" gorm:"serializer:json"`

	// Proposed restaurant payload, registration kind only. Free-text
	// fields are stored trimmed and lowercased.
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Contact    string   `json:"contact"`
	Hours      string   `json:"hours"`
	Cuisines   []string `json:"cuisines" gorm:"serializer:json"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
