package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"restaurant-claims-api/models"
)

// RegistrationInput is the raw user-submitted payload for a brand-new
// restaurant. Free-text fields are normalized before storage.
type RegistrationInput struct {
	Name       string
	Address    string
	City       string
	State      string
	PostalCode string
	Contact    string
	Hours      string
	Cuisines   string // comma-separated
	Latitude   float64
	Longitude  float64
	EinTaxID   string
	Documents  []string
	Images     []string
}

// NormalizeText canonicalizes a free-text field for consistent search and
// dedup: trimmed and lowercased.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitCuisines turns a comma-separated cuisine string into a trimmed,
// lowercased, deduplicated set, dropping empty entries. First-seen order
// is preserved.
func SplitCuisines(s string) []string {
	parts := strings.Split(s, ",")
	seen := make(map[string]bool, len(parts))
	var cuisines []string
	for _, p := range parts {
		cuisine := NormalizeText(p)
		if cuisine == "" || seen[cuisine] {
			continue
		}
		seen[cuisine] = true
		cuisines = append(cuisines, cuisine)
	}
	return cuisines
}

// SubmitRegistration records a pending registration request for a new
// restaurant. A pending registration by the same user with the same
// normalized name and postal code is treated as a duplicate.
func (e *Engine) SubmitRegistration(ctx context.Context, userID uint, input RegistrationInput) (*models.VerificationRequest, error) {
	name := NormalizeText(input.Name)
	if name == "" || len(input.Documents) == 0 {
		return nil, ErrMissingFields
	}

	postalCode := strings.TrimSpace(input.PostalCode)

	var pending int64
	err := e.db.WithContext(ctx).Model(&models.VerificationRequest{}).
		Where("kind = ? AND user_id = ? AND name = ? AND postal_code = ? AND status = ?",
			models.KindRegistration, userID, name, postalCode, models.StatusUnregistered).
		Count(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("checking pending registrations: %w", err)
	}
	if pending > 0 {
		return nil, ErrDuplicateRegistration
	}

	request := models.VerificationRequest{
		Kind:       models.KindRegistration,
		UserID:     userID,
		EinTaxID:   strings.TrimSpace(input.EinTaxID),
		Status:     models.PendingStatus(models.KindRegistration),
		Documents:  input.Documents,
		Images:     input.Images,
		Name:       name,
		Address:    NormalizeText(input.Address),
		City:       NormalizeText(input.City),
		State:      NormalizeText(input.State),
		PostalCode: postalCode,
		Contact:    strings.TrimSpace(input.Contact),
		Hours:      NormalizeText(input.Hours),
		Cuisines:   SplitCuisines(input.Cuisines),
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
	}
	if err := e.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, fmt.Errorf("inserting registration request: %w", err)
	}
	return &request, nil
}
