package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// JWT configuration
	JWT JWTConfig

	// Exchange rate configuration
	Exchange ExchangeConfig

	// Booking configuration
	Booking BookingConfig

	// Mail configuration
	Mail MailConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// CORS configuration
	CORS CORSConfig

	// Security configuration
	Security SecurityConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret             string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// ExchangeConfig holds exchange rate service configuration
type ExchangeConfig struct {
	APIURL   string        // Base URL of the exchange rate API
	Timeout  time.Duration // Live fetch timeout
	CacheTTL time.Duration // How long a fetched rate table is reused
	Strict   bool          // Reject unknown currency codes instead of degrading to rate 1
}

// BookingConfig holds booking-related configuration
type BookingConfig struct {
	TaxRate float64 // Tax fraction applied to booking subtotals, e.g. 0.10
}

// MailConfig holds verification mail configuration
type MailConfig struct {
	Mode      string // "dev" logs verification links, "production" sends via SMTP
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	From      string
	FromName  string
	VerifyURL string        // Base URL for verification links, token is appended
	TokenTTL  time.Duration // Verification token lifetime
}

// RateLimitConfig holds rate limiting configuration for verification mail
type RateLimitConfig struct {
	MailRequests      int // Max verification mails per email per window
	MailWindowMinutes int
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	BcryptCost       int
	EnableRequestLog bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", ""),
			RefreshSecret:      getEnv("JWT_REFRESH_SECRET", ""),
			AccessTokenExpiry:  time.Duration(getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRY", 3600)) * time.Second,
			RefreshTokenExpiry: time.Duration(getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRY", 604800)) * time.Second,
		},
		Exchange: ExchangeConfig{
			APIURL:   getEnv("EXCHANGE_API_URL", "https://api.exchangerate.host"),
			Timeout:  time.Duration(getEnvAsInt("EXCHANGE_TIMEOUT_SECONDS", 5)) * time.Second,
			CacheTTL: time.Duration(getEnvAsInt("EXCHANGE_CACHE_TTL_SECONDS", 300)) * time.Second,
			Strict:   getEnvAsBool("CURRENCY_STRICT", false),
		},
		Booking: BookingConfig{
			TaxRate: getEnvAsFloat("BOOKING_TAX_RATE", 0.10),
		},
		Mail: MailConfig{
			Mode:      getEnv("MAIL_MODE", "dev"), // "dev" or "production"
			SMTPHost:  getEnv("SMTP_HOST", ""),
			SMTPPort:  getEnvAsInt("SMTP_PORT", 587),
			Username:  getEnv("SMTP_USERNAME", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			From:      getEnv("MAIL_FROM", "no-reply@afrostay.example"),
			FromName:  getEnv("MAIL_FROM_NAME", "AfroStay"),
			VerifyURL: getEnv("MAIL_VERIFY_URL", "http://localhost:8080/api/v1/auth/verify-email"),
			TokenTTL:  time.Duration(getEnvAsInt("MAIL_TOKEN_TTL_HOURS", 24)) * time.Hour,
		},
		RateLimit: RateLimitConfig{
			MailRequests:      getEnvAsInt("MAIL_RATE_LIMIT", 3),
			MailWindowMinutes: getEnvAsInt("MAIL_RATE_WINDOW_MINUTES", 15),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
		Security: SecurityConfig{
			BcryptCost:       getEnvAsInt("BCRYPT_COST", 12),
			EnableRequestLog: getEnvAsBool("ENABLE_REQUEST_LOGGING", true),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.JWT.RefreshSecret == "" {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}

	if c.Booking.TaxRate < 0 || c.Booking.TaxRate >= 1 {
		return fmt.Errorf("BOOKING_TAX_RATE must be a fraction in [0, 1)")
	}

	// Validate mail configuration only in production mode
	if c.Mail.Mode == "production" {
		if c.Mail.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required in production mail mode")
		}
		if c.Mail.Username == "" || c.Mail.Password == "" {
			return fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD are required in production mail mode")
		}
	}

	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsFloat gets an environment variable as a float with a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid float value for %s, using default %v", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s, using default %v", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsSlice gets an environment variable as a comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
