package handlers

import (
	"net/http"
	"strconv"

	"restaurant-claims-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AdminListRequests returns the review queue, oldest first
func (h *Handler) AdminListRequests(c *gin.Context) {
	requests, err := h.engine.PendingRequests(c.Request.Context())
	if err != nil {
		engineError(c, err)
		return
	}

	respond(c, http.StatusOK, "OK", gin.H{
		"count":    len(requests),
		"requests": requests,
	})
}

// ReviewTransitions documents the review lifecycle for operators
func (h *Handler) ReviewTransitions(c *gin.Context) {
	respond(c, http.StatusOK, "OK", gin.H{
		"transitions": statemachine.GetAllTransitions(),
	})
}

type ReviewRequestInput struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// ReviewRequest approves or rejects a pending verification request
func (h *Handler) ReviewRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request id")
		return
	}

	var input ReviewRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	request, err := h.engine.ReviewRequest(c.Request.Context(), uint(requestID), input.Approve, input.Reason)
	if err != nil {
		engineError(c, err)
		return
	}

	respond(c, http.StatusOK, "Request reviewed", gin.H{
		"request": request,
	})
}
