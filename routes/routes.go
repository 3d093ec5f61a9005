package routes

import (
	"restaurant-claims-api/handlers"
	"restaurant-claims-api/middleware"
	"restaurant-claims-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, jwtSecret []byte) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
		public.POST("/auth/password-reset", h.SendPasswordResetLink)
		public.PUT("/auth/password", h.ResetPassword)

		// Payment processor callback, verified by signature
		public.POST("/webhooks/stripe", h.StripeWebhook)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(jwtSecret))
	{
		auth.GET("/me", h.Me)
		auth.GET("/restaurants", h.SearchRestaurants)
		auth.POST("/restaurants/register", h.RegisterRestaurant)
		auth.POST("/claims", h.SubmitClaim)
		auth.POST("/uploads", h.CreateUploadURLs)
		auth.GET("/requests", h.ListRequests)
		auth.POST("/billing/subscriptions", h.CreateSubscription)
		auth.POST("/billing/portal", h.CreatePortalSession)
	}

	// ── Reviewer routes ────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/requests", h.AdminListRequests)
		admin.PUT("/requests/:id/review", h.ReviewRequest)
		admin.GET("/transitions", h.ReviewTransitions)
	}
}
