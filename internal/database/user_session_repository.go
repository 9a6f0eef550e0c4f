package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/afrostay/hotel-booking-backend/internal/models"
)

// UserSessionRepository handles database operations for login sessions
type UserSessionRepository struct {
	db DB
}

// NewUserSessionRepository creates a new UserSessionRepository
func NewUserSessionRepository(db DB) *UserSessionRepository {
	return &UserSessionRepository{db: db}
}

// Create records a login session
func (r *UserSessionRepository) Create(session *models.UserSession) error {
	query := `
		INSERT INTO user_sessions (id, user_id, ip_address, user_agent, device_type, os, browser)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	err := r.db.QueryRow(
		query,
		session.ID, session.UserID, session.IPAddress, session.UserAgent,
		session.DeviceType, session.OS, session.Browser,
	).Scan(&session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's recent sessions, newest first
func (r *UserSessionRepository) ListByUser(userID uuid.UUID, limit int) ([]models.UserSession, error) {
	if limit < 1 {
		limit = 10
	}

	query := `
		SELECT id, user_id, ip_address, user_agent, device_type, os, browser, created_at
		FROM user_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	sessions := []models.UserSession{}
	if err := r.db.Select(&sessions, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}
