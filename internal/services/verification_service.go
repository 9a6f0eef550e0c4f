package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/afrostay/hotel-booking-backend/internal/database"
	"github.com/afrostay/hotel-booking-backend/internal/models"
	"github.com/afrostay/hotel-booking-backend/pkg/mailer"
)

var (
	// ErrTokenExpired indicates the verification token has expired
	ErrTokenExpired = fmt.Errorf("verification token has expired")

	// ErrTokenAlreadyUsed indicates the token was already consumed
	ErrTokenAlreadyUsed = fmt.Errorf("verification token has already been used")
)

// VerificationService handles the email verification flow: it issues
// tokens at signup and consumes them when the user opens the link.
type VerificationService struct {
	tokens    *database.VerificationTokenRepository
	users     *database.UserRepository
	mail      mailer.Mailer
	verifyURL string
	tokenTTL  time.Duration
}

// NewVerificationService creates a new verification service
func NewVerificationService(
	tokens *database.VerificationTokenRepository,
	users *database.UserRepository,
	mail mailer.Mailer,
	verifyURL string,
	tokenTTL time.Duration,
) *VerificationService {
	return &VerificationService{
		tokens:    tokens,
		users:     users,
		mail:      mail,
		verifyURL: verifyURL,
		tokenTTL:  tokenTTL,
	}
}

// SendVerification issues a fresh token for the user and mails the link
func (s *VerificationService) SendVerification(user *models.User) error {
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.tokenTTL)

	if _, err := s.tokens.Create(user.ID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}

	name := user.FirstName.String
	if name == "" {
		name = user.Email
	}
	link := fmt.Sprintf("%s?token=%s", s.verifyURL, token)

	if err := s.mail.SendVerification(user.Email, name, link); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}

	return nil
}

// VerifyEmail consumes a verification token and marks the user's email
// verified. Expired and reused tokens are rejected.
func (s *VerificationService) VerifyEmail(token string) (*models.User, error) {
	record, err := s.tokens.GetByToken(token)
	if err != nil {
		return nil, err
	}

	if record.UsedAt.Valid {
		return nil, ErrTokenAlreadyUsed
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	if err := s.tokens.MarkUsed(record.ID); err != nil {
		return nil, err
	}
	if err := s.users.MarkEmailVerified(record.UserID); err != nil {
		return nil, err
	}

	return s.users.GetByID(record.UserID)
}
