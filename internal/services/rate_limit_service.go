package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/afrostay/hotel-booking-backend/internal/database"
)

// RateLimitError carries enough detail for the handler to build a
// 429 response
type RateLimitError struct {
	Message    string
	RetryAfter time.Time
	Type       string
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// RateLimitConfig bounds how often verification mail can be requested
type RateLimitConfig struct {
	MailRequests int
	MailWindow   time.Duration
}

// DefaultRateLimitConfig returns the default limits
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MailRequests: 3,
		MailWindow:   15 * time.Minute,
	}
}

// RateLimitService throttles verification mail per user using the token
// issue history already in the database
type RateLimitService struct {
	tokens *database.VerificationTokenRepository
	config RateLimitConfig
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(tokens *database.VerificationTokenRepository, config RateLimitConfig) *RateLimitService {
	return &RateLimitService{tokens: tokens, config: config}
}

// CheckMailRateLimit returns a RateLimitError when the user has already
// requested the maximum number of verification mails within the window
func (s *RateLimitService) CheckMailRateLimit(userID uuid.UUID) error {
	count, err := s.tokens.CountRecentByUser(userID, s.config.MailWindow)
	if err != nil {
		return fmt.Errorf("failed to check mail rate limit: %w", err)
	}

	if count >= s.config.MailRequests {
		return &RateLimitError{
			Message:    fmt.Sprintf("too many verification emails requested, try again in %d minutes", int(s.config.MailWindow.Minutes())),
			RetryAfter: time.Now().Add(s.config.MailWindow),
			Type:       "mail_rate_limit",
		}
	}

	return nil
}
