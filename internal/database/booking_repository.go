package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/afrostay/hotel-booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new booking. Price fields are fixed here and never
// updated afterwards.
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			user_id, hotel_id, check_in, check_out, nights,
			currency, subtotal, tax, total_price, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}

	err := r.db.QueryRow(
		query,
		booking.UserID, booking.HotelID, booking.CheckIn, booking.CheckOut, booking.Nights,
		booking.Currency, booking.Subtotal, booking.Tax, booking.TotalPrice, booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by id
func (r *BookingRepository) GetByID(id int64) (*models.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.hotel_id, b.check_in, b.check_out, b.nights,
			   b.currency, b.subtotal, b.tax, b.total_price, b.status,
			   b.created_at, b.updated_at,
			   h.name AS hotel_name, h.city AS hotel_city
		FROM bookings b
		JOIN hotels h ON b.hotel_id = h.id
		WHERE b.id = $1
	`

	var booking models.Booking
	if err := r.db.Get(&booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// ListByUser retrieves all bookings for a user, newest first
func (r *BookingRepository) ListByUser(userID uuid.UUID) ([]models.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.hotel_id, b.check_in, b.check_out, b.nights,
			   b.currency, b.subtotal, b.tax, b.total_price, b.status,
			   b.created_at, b.updated_at,
			   h.name AS hotel_name, h.city AS hotel_city
		FROM bookings b
		JOIN hotels h ON b.hotel_id = h.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatus transitions a booking's status
func (r *BookingRepository) UpdateStatus(id int64, status string) error {
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
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
