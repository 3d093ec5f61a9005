package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"restaurant-claims-api/billing"
	"restaurant-claims-api/config"
	"restaurant-claims-api/email"
	"restaurant-claims-api/handlers"
	"restaurant-claims-api/lifecycle"
	"restaurant-claims-api/routes"
	"restaurant-claims-api/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("Database connected and migrated")

	presigner, err := storage.NewS3Presigner(context.Background(), storage.S3Config{
		Bucket:   cfg.S3Bucket,
		Region:   cfg.S3Region,
		Endpoint: cfg.S3Endpoint,
		Expiry:   cfg.UploadURLTTL,
	})
	if err != nil {
		log.Fatal("Failed to set up object storage:", err)
	}

	stripeClient := billing.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.StripePortalReturnURL)
	mailer := email.NewSendGrid(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)

	engine := lifecycle.NewEngine(db, presigner, stripeClient)
	handler := handlers.New(db, engine, mailer, stripeClient, cfg)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.AppBaseURL)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Claims API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r, handler, cfg.JWTSecret)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
