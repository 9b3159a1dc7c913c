package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Directory
	PlaceholderImageURL string
	CaptchaSecret       string
	CaptchaTTL          time.Duration

	// Email relays
	EmailProvider          string
	EmailFrom              string
	AdminNotificationEmail string
	ResendAPIKey           string
	ResendAPIBaseURL       string
	SMTPHost               string
	SMTPPort               int
	SMTPUsername           string
	SMTPPassword           string

	// Billing
	CheckoutEndpoint     string
	PaymentWebhookSecret string

	// Telemetry
	OTLPEndpoint string
	ServiceName  string

	// Server
	Port               string
	Environment        string
	BaseURL            string
	CORSAllowedOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "profile-images"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", "/placeholder.svg"),
		CaptchaSecret:       getEnv("CAPTCHA_SECRET", ""),
		CaptchaTTL:          getDuration("CAPTCHA_TTL", 10*time.Minute),

		EmailProvider:          getEnv("EMAIL_PROVIDER", "resend"),
		EmailFrom:              getEnv("EMAIL_FROM", "Performer Directory <noreply@example.com>"),
		AdminNotificationEmail: getEnv("ADMIN_NOTIFICATION_EMAIL", ""),
		ResendAPIKey:           getEnv("RESEND_API_KEY", ""),
		ResendAPIBaseURL:       getEnv("RESEND_API_BASE_URL", "https://api.resend.com"),
		SMTPHost:               getEnv("SMTP_HOST", ""),
		SMTPPort:               getInt("SMTP_PORT", 587),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),

		CheckoutEndpoint:     getEnv("CHECKOUT_ENDPOINT", ""),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "performer-directory-backend"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if cfg.CheckoutEndpoint == "" && cfg.SupabaseURL != "" {
		cfg.CheckoutEndpoint = cfg.SupabaseURL + "/functions/v1/create-checkout"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.CaptchaSecret == "" {
		return fmt.Errorf("CAPTCHA_SECRET is required")
	}
	switch c.EmailProvider {
	case "resend":
		if c.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required when EMAIL_PROVIDER=resend")
		}
	case "smtp":
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required when EMAIL_PROVIDER=smtp")
		}
	default:
		return fmt.Errorf("EMAIL_PROVIDER must be resend or smtp, got %q", c.EmailProvider)
	}
	return nil
}

// StorageKey prefers the service role key so uploads bypass RLS.
func (c *Config) StorageKey() string {
	if c.SupabaseServiceRoleKey != "" {
		return c.SupabaseServiceRoleKey
	}
	return c.SupabasePublishableKey
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
