package handlers

import (
	"net/http"

	"restaurant-claims-api/lifecycle"
	"restaurant-claims-api/middleware"

	"github.com/gin-gonic/gin"
)

// SearchRestaurants returns unclaimed restaurants matching the search text
func (h *Handler) SearchRestaurants(c *gin.Context) {
	restaurants, err := h.engine.SearchRestaurants(c.Request.Context(), c.Query("search"))
	if err != nil {
		engineError(c, err)
		return
	}

	respond(c, http.StatusOK, "OK", gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

type RegisterRestaurantRequest struct {
	Name       string   `json:"name" binding:"required"`
	Address    string   `json:"address" binding:"required"`
	City       string   `json:"city" binding:"required"`
	State      string   `json:"state" binding:"required"`
	PostalCode string   `json:"postal_code" binding:"required"`
	Contact    string   `json:"contact"`
	Hours      string   `json:"hours"`
	Cuisines   string   `json:"cuisines"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	EinTaxID   string   `json:"ein_tax_id"`
	Documents  []string `json:"documents" binding:"required,min=1"`
	Images     []string `json:"images"`
}

// RegisterRestaurant submits a brand-new restaurant for review
func (h *Handler) RegisterRestaurant(c *gin.Context) {
	var req RegisterRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	userID := middleware.GetUserID(c)
	request, err := h.engine.SubmitRegistration(c.Request.Context(), userID, lifecycle.RegistrationInput{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Contact:    req.Contact,
		Hours:      req.Hours,
		Cuisines:   req.Cuisines,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		EinTaxID:   req.EinTaxID,
		Documents:  req.Documents,
		Images:     req.Images,
	})
	if err != nil {
		engineError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Registration submitted for review", gin.H{
		"request_id": request.ID,
	})
}
