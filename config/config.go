package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
)

// Config is read from the environment, with a .env file loaded first when
// one exists.
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	DBDriver      string
	SQLitePath    string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	Auth0Audience      string
	Auth0IssuerBaseURL string
	AuthHMACSecret     string

	StripeAPIKey        string
	StripeWebhookSecret string
	StripeCurrency      string
	FrontendURL         string

	CloudinaryURL string

	KafkaBroker     string
	KafkaOrderTopic string

	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("SQLITE_PATH", "food_ordering.db")
	v.SetDefault("MONGODB_DATABASE", "food_ordering")
	v.SetDefault("STRIPE_CURRENCY", "php")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("KAFKA_ORDER_TOPIC", "orders")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	return &Config{
		Port:      v.GetString("PORT"),
		GinMode:   v.GetString("GIN_MODE"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		MongoURI:      v.GetString("MONGODB_CONNECTION_STRING"),
		MongoDatabase: v.GetString("MONGODB_DATABASE"),

		Auth0Audience:      v.GetString("AUTH0_AUDIENCE"),
		Auth0IssuerBaseURL: v.GetString("AUTH0_ISSUER_BASE_URL"),
		AuthHMACSecret:     v.GetString("AUTH_HMAC_SECRET"),

		StripeAPIKey:        v.GetString("STRIPE_API_KEY"),
		StripeWebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
		StripeCurrency:      strings.ToLower(v.GetString("STRIPE_CURRENCY")),
		FrontendURL:         v.GetString("FRONTEND_URL"),

		CloudinaryURL: v.GetString("CLOUDINARY_URL"),

		KafkaBroker:     v.GetString("KAFKA_BROKER"),
		KafkaOrderTopic: v.GetString("KAFKA_ORDER_TOPIC"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}, nil
}

// ValidateStore checks the settings needed to open the database.
func (c *Config) ValidateStore() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case DriverMongoDB:
		if c.MongoURI == "" {
			return errors.New("MONGODB_CONNECTION_STRING is required for the mongodb driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// Validate checks everything the API server needs.
func (c *Config) Validate() error {
	if err := c.ValidateStore(); err != nil {
		return err
	}
	if c.Auth0IssuerBaseURL == "" && c.AuthHMACSecret == "" {
		return errors.New("AUTH0_ISSUER_BASE_URL or AUTH_HMAC_SECRET is required")
	}
	if c.StripeAPIKey == "" || c.StripeWebhookSecret == "" {
		return errors.New("STRIPE_API_KEY and STRIPE_WEBHOOK_SECRET are required")
	}
	if c.CloudinaryURL == "" {
		return errors.New("CLOUDINARY_URL is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
