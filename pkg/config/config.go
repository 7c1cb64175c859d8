package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Payment gateway
	PaymentGatewayURL     string
	PaymentGatewayAPIKey  string
	PaymentGatewayTimeout time.Duration

	// Notification broker
	AMQPURL           string
	CoverageQueueName string

	// Analytics
	PosthogAPIKey  string
	PosthogHostURL string

	// Rate limiting, e.g. "100-M" for 100 requests per minute per client
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("PAYMENT_GATEWAY_URL", "")
	viper.SetDefault("PAYMENT_GATEWAY_API_KEY", "")
	viper.SetDefault("PAYMENT_GATEWAY_TIMEOUT", "5s")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("COVERAGE_QUEUE_NAME", "coverage.request")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_HOST_URL", "https://app.posthog.com")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.PaymentGatewayURL = viper.GetString("PAYMENT_GATEWAY_URL")
	if cfg.PaymentGatewayURL == "" {
		log.Println("Warning: PAYMENT_GATEWAY_URL not set. Payment operations will fail.")
	}
	cfg.PaymentGatewayAPIKey = viper.GetString("PAYMENT_GATEWAY_API_KEY")

	timeoutStr := viper.GetString("PAYMENT_GATEWAY_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 5 * time.Second
		if timeoutStr != "" {
			log.Printf("Warning: Invalid value for PAYMENT_GATEWAY_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
		}
	}
	cfg.PaymentGatewayTimeout = timeout

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Coverage broadcast notifications will fail.")
	}
	cfg.CoverageQueueName = viper.GetString("COVERAGE_QUEUE_NAME")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogHostURL = viper.GetString("POSTHOG_HOST_URL")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
