package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/afrostay/hotel-booking-backend/internal/models"
)

// VerificationTokenRepository handles database operations for email
// verification tokens
type VerificationTokenRepository struct {
	db DB
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository(db DB) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

// Create inserts a new verification token
func (r *VerificationTokenRepository) Create(userID uuid.UUID, token string, expiresAt time.Time) (*models.VerificationToken, error) {
	query := `
		INSERT INTO verification_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, token, expires_at, used_at, created_at
	`

	var vt models.VerificationToken
	if err := r.db.Get(&vt, query, userID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create verification token: %w", err)
	}

	return &vt, nil
}

// GetByToken retrieves a verification token
func (r *VerificationTokenRepository) GetByToken(token string) (*models.VerificationToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, used_at, created_at
		FROM verification_tokens
		WHERE token = $1
	`

	var vt models.VerificationToken
	if err := r.db.Get(&vt, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get verification token: %w", err)
	}

	return &vt, nil
}

// MarkUsed marks a token as consumed. Only unused tokens can be consumed.
func (r *VerificationTokenRepository) MarkUsed(id int64) error {
	query := `UPDATE verification_tokens SET used_at = NOW() WHERE id = $1 AND used_at IS NULL`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to mark token used: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// CountRecentByUser counts tokens issued to a user within the window.
// Used for rate limiting verification mail.
func (r *VerificationTokenRepository) CountRecentByUser(userID uuid.UUID, window time.Duration) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM verification_tokens
		WHERE user_id = $1 AND created_at > $2
	`

	var count int
	if err := r.db.Get(&count, query, userID, time.Now().Add(-window)); err != nil {
		return 0, fmt.Errorf("failed to count recent tokens: %w", err)
	}

	return count, nil
}
