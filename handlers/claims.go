package handlers

import (
	"net/http"

	"restaurant-claims-api/lifecycle"
	"restaurant-claims-api/middleware"

	"github.com/gin-gonic/gin"
)

type SubmitClaimRequest struct {
	RestaurantID uint     `json:"restaurant_id" binding:"required"`
	EinTaxID     string   `json:"ein_tax_id" binding:"required"`
	Documents    []string `json:"documents" binding:"required,min=1"`
}

// SubmitClaim records an ownership claim over an existing restaurant
func (h *Handler) SubmitClaim(c *gin.Context) {
	var req SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	userID := middleware.GetUserID(c)
	request, err := h.engine.SubmitClaim(c.Request.Context(), userID, req.RestaurantID, req.EinTaxID, req.Documents)
	if err != nil {
		engineError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Claim submitted for review", gin.H{
		"request_id": request.ID,
	})
}

type UploadURLRequest struct {
	RestaurantID *uint                    `json:"restaurant_id"`
	Category     lifecycle.UploadCategory `json:"category" binding:"required"`
	Count        int                      `json:"count" binding:"required,gte=1"`
	ContentTypes []string                 `json:"content_types"`
}

// CreateUploadURLs issues presigned upload grants, gated by the claim
// validator for claim-category uploads
func (h *Handler) CreateUploadURLs(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	grants, err := h.engine.AuthorizeUploads(c.Request.Context(), req.RestaurantID, req.Category, req.Count, req.ContentTypes)
	if err != nil {
		engineError(c, err)
		return
	}

	respond(c, http.StatusOK, "Upload URLs created", gin.H{
		"uploads": grants,
	})
}

// ListRequests returns the caller's verification requests; with
// ?billing=true the view narrows to approved requests with subscription
// status attached
func (h *Handler) ListRequests(c *gin.Context) {
	includeBilling := c.Query("billing") == "true"
	userID := middleware.GetUserID(c)

	views, err := h.engine.ListRequests(c.Request.Context(), userID, includeBilling)
	if err != nil {
		engineError(c, err)
		return
	}

	respond(c, http.StatusOK, "OK", gin.H{
		"count":    len(views),
		"requests": views,
	})
}
