package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"restaurant-claims-api/lifecycle"
	"restaurant-claims-api/middleware"
	"restaurant-claims-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=10"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation Failed")
		return
	}
	if !models.RegistrableRoles[req.Role] {
		respondError(c, http.StatusBadRequest, "Invalid role. Must be: customer or restaurant_owner")
		return
	}

	email := lifecycle.NormalizeText(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	// Uniqueness rides on the email index; a concurrent duplicate lands
	// here instead of on a pre-read.
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
			respondError(c, http.StatusConflict, "User with same email already exists!")
			return
		}
		respondError(c, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	respond(c, http.StatusCreated, "User created successfully!", nil)
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation Failed")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", lifecycle.NormalizeText(req.Email)).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Wrong credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Wrong credentials")
		return
	}

	token, err := middleware.GenerateToken(&user, h.cfg.JWTSecret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	respond(c, http.StatusOK, "Authentication successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"role":     user.Role,
			"verified": user.Verified,
		},
	})
}

// Me returns the authenticated user's profile with billing status
// flattened in. The password hash never serializes.
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	var subscriptions []models.SubscriptionRecord
	if err := h.db.Where("user_id = ?", userID).Find(&subscriptions).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	billingView := make([]gin.H, 0, len(subscriptions))
	for _, s := range subscriptions {
		billingView = append(billingView, gin.H{
			"restaurant_id": s.RestaurantID,
			"status":        s.Status,
		})
	}

	respond(c, http.StatusOK, "OK", gin.H{
		"user":    user,
		"billing": billingView,
	})
}

type PasswordResetLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendPasswordResetLink emails a short-lived reset token. Authenticated
// callers are rejected; unknown emails get the same response as known
// ones so accounts cannot be enumerated.
func (h *Handler) SendPasswordResetLink(c *gin.Context) {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		if _, err := middleware.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), h.cfg.JWTSecret); err == nil {
			respondError(c, http.StatusBadRequest, "Already logged in")
			return
		}
	}

	var req PasswordResetLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation Failed")
		return
	}

	genericOK := func() {
		respond(c, http.StatusOK, "If the account exists, a reset link has been sent.", nil)
	}

	var user models.User
	if err := h.db.Where("email = ?", lifecycle.NormalizeText(req.Email)).First(&user).Error; err != nil {
		genericOK()
		return
	}

	token, err := middleware.GenerateResetToken(&user, h.cfg.JWTSecret, h.cfg.ResetTokenTTL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", h.cfg.AppBaseURL, token)
	if err := h.mailer.SendPasswordReset(c.Request.Context(), user.Email, resetURL); err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong!")
		return
	}
	genericOK()
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=10"`
}

// ResetPassword verifies the reset token and stores a new password hash.
// Malformed and expired tokens get the same generic rejection.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation Failed")
		return
	}

	userID, err := middleware.ParseResetToken(req.Token, h.cfg.JWTSecret)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Reset link is invalid or has expired")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusBadRequest, "Reset link is invalid or has expired")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong!")
		return
	}
	if err := h.db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	respond(c, http.StatusOK, "Password updated successfully", nil)
}
