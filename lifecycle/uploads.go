package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// UploadCategory scopes an upload grant to a storage prefix and a
// content-type policy.
type UploadCategory string

const (
	CategoryClaim          UploadCategory = "claim"          // ownership documents for an existing restaurant
	CategoryImages         UploadCategory = "images"         // restaurant photos
	CategoryNewRestaurants UploadCategory = "newRestaurants" // documents for a registration
)

func (c UploadCategory) valid() bool {
	switch c {
	case CategoryClaim, CategoryImages, CategoryNewRestaurants:
		return true
	}
	return false
}

const (
	contentTypePDF         = "application/pdf"
	contentTypeImagePrefix = "image/"
	defaultImageType       = "image/jpeg"
	maxGrantsPerRequest    = 10
)

// resolveContentType applies the category policy to an optional
// caller-supplied content type. Document categories only ever accept PDF;
// image categories accept anything under image/.
func resolveContentType(category UploadCategory, requested string) (string, error) {
	if category == CategoryImages {
		if requested == "" {
			return defaultImageType, nil
		}
		if !strings.HasPrefix(requested, contentTypeImagePrefix) {
			return "", ErrMissingFields
		}
		return requested, nil
	}
	if requested != "" && requested != contentTypePDF {
		return "", ErrMissingFields
	}
	return contentTypePDF, nil
}

// AuthorizeUploads issues count upload grants, one per file, in request
// order. For the claim category the claim validator runs first so a grant
// is never handed out for a restaurant that is already claimed or under
// review. The batch is all-or-nothing: one failed grant fails the call.
func (e *Engine) AuthorizeUploads(ctx context.Context, restaurantID *uint, category UploadCategory, count int, contentTypes []string) ([]UploadGrant, error) {
	if !category.valid() || count < 1 || count > maxGrantsPerRequest {
		return nil, ErrMissingFields
	}
	if len(contentTypes) != 0 && len(contentTypes) != count {
		return nil, ErrMissingFields
	}

	if category == CategoryClaim {
		if restaurantID == nil {
			return nil, ErrMissingFields
		}
		if err := e.ValidateClaim(ctx, *restaurantID); err != nil {
			return nil, err
		}
	}

	resolved := make([]string, count)
	for i := 0; i < count; i++ {
		requested := ""
		if len(contentTypes) == count {
			requested = contentTypes[i]
		}
		contentType, err := resolveContentType(category, requested)
		if err != nil {
			return nil, err
		}
		resolved[i] = contentType
	}

	grants := make([]UploadGrant, count)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			key := fmt.Sprintf("%s/%s", category, uuid.NewString())
			grant, err := e.presigner.PresignPut(gctx, key, resolved[i])
			if err != nil {
				return fmt.Errorf("presigning upload %d: %w", i, err)
			}
			grants[i] = grant
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grants, nil
}
