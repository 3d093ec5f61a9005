package config

import (
	"errors"
	"os"
	"time"

	"restaurant-claims-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config carries everything the process needs, loaded once in main and
// injected from there. Secrets live in the environment, never in source.
type Config struct {
	Port   string
	DBPath string

	JWTSecret     []byte
	ResetTokenTTL time.Duration

	AppBaseURL string // frontend origin used in reset links

	S3Bucket     string
	S3Region     string
	S3Endpoint   string // optional, for MinIO/LocalStack
	UploadURLTTL time.Duration

	StripeSecretKey       string
	StripeWebhookSecret   string
	StripePortalReturnURL string

	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		DBPath:                getEnv("DB_PATH", "restaurant_claims.db"),
		JWTSecret:             []byte(os.Getenv("JWT_SECRET")),
		ResetTokenTTL:         15 * time.Minute,
		AppBaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
		S3Bucket:              os.Getenv("S3_BUCKET"),
		S3Region:              getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint:            os.Getenv("S3_ENDPOINT"),
		UploadURLTTL:          5 * time.Minute,
		StripeSecretKey:       os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:   os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripePortalReturnURL: getEnv("STRIPE_PORTAL_RETURN_URL", "http://localhost:3000/dashboard/billing"),
		SendGridAPIKey:        os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:             os.Getenv("EMAIL_FROM"),
		EmailFromName:         getEnv("EMAIL_FROM_NAME", "Restaurant Claims"),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the sqlite database and migrates all models
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.VerificationRequest{},
		&models.SubscriptionRecord{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
