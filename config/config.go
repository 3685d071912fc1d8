package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything supplied externally at process start.
type Config struct {
	Port      string
	MongoURI  string
	Database  string
	JWTSecret string

	BraintreeEnv        string
	BraintreeMerchantID string
	BraintreePublicKey  string
	BraintreePrivateKey string

	PostmarkToken string
	EmailSender   string
}

// Load reads configuration from a .env file when present, then from the
// environment. Values without a safe default are required.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Proceeding with environment variables.")
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		MongoURI:            getEnv("MONGO_URL", "mongodb://localhost:27017"),
		Database:            getEnv("MONGO_DB", "storefront"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		BraintreeEnv:        getEnv("BRAINTREE_ENV", "sandbox"),
		BraintreeMerchantID: getEnv("BRAINTREE_MERCHANT_ID", ""),
		BraintreePublicKey:  getEnv("BRAINTREE_PUBLIC_KEY", ""),
		BraintreePrivateKey: getEnv("BRAINTREE_PRIVATE_KEY", ""),
		PostmarkToken:       getEnv("POSTMARK_API_TOKEN", ""),
		EmailSender:         getEnv("EMAIL_SENDER", ""),
	}

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}
	if cfg.BraintreeMerchantID == "" || cfg.BraintreePublicKey == "" || cfg.BraintreePrivateKey == "" {
		logrus.Fatal("Braintree credentials (BRAINTREE_MERCHANT_ID, BRAINTREE_PUBLIC_KEY, BRAINTREE_PRIVATE_KEY) are required")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
