package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/afrostay/hotel-booking-backend/internal/models"
)

// hotelColumns is the canonical column list for hotel queries
const hotelColumns = `id, name, description, country, city, address, price, currency,
	rating, total_rooms, available_rooms, amenities, images, is_active, created_at, updated_at`

// HotelRepository handles database operations for the hotels table
type HotelRepository struct {
	db DB
}

// NewHotelRepository creates a new HotelRepository
func NewHotelRepository(db DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// Create inserts a new hotel
func (r *HotelRepository) Create(hotel *models.Hotel) error {
	query := `
		INSERT INTO hotels (
			name, description, country, city, address, price, currency,
			rating, total_rooms, available_rooms, amenities, images
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		hotel.Name, hotel.Description, hotel.Country, hotel.City, hotel.Address,
		hotel.BasePrice, hotel.BaseCurrency, hotel.Rating,
		hotel.TotalRooms, hotel.AvailableRooms, hotel.Amenities, hotel.Images,
	).Scan(&hotel.ID, &hotel.IsActive, &hotel.CreatedAt, &hotel.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}

	return nil
}

// ListActive retrieves all active hotels. Filtering, sorting, and
// pagination happen in memory in the catalog service.
func (r *HotelRepository) ListActive() ([]models.Hotel, error) {
	query := fmt.Sprintf(`SELECT %s FROM hotels WHERE is_active = TRUE`, hotelColumns)

	hotels := []models.Hotel{}
	if err := r.db.Select(&hotels, query); err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}

	return hotels, nil
}

// GetByID retrieves an active hotel by id
func (r *HotelRepository) GetByID(id int64) (*models.Hotel, error) {
	query := fmt.Sprintf(`SELECT %s FROM hotels WHERE id = $1 AND is_active = TRUE`, hotelColumns)

	var hotel models.Hotel
	if err := r.db.Get(&hotel, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}

	return &hotel, nil
}

// Update updates an active hotel
func (r *HotelRepository) Update(hotel *models.Hotel) error {
	query := `
		UPDATE hotels
		SET name = $1, description = $2, country = $3, city = $4, address = $5,
			price = $6, currency = $7, rating = $8, total_rooms = $9,
			available_rooms = $10, amenities = $11, images = $12,
			updated_at = NOW()
		WHERE id = $13 AND is_active = TRUE
	`

	result, err := r.db.Exec(
		query,
		hotel.Name, hotel.Description, hotel.Country, hotel.City, hotel.Address,
		hotel.BasePrice, hotel.BaseCurrency, hotel.Rating,
		hotel.TotalRooms, hotel.AvailableRooms, hotel.Amenities, hotel.Images,
		hotel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
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

// SoftDelete marks a hotel inactive
func (r *HotelRepository) SoftDelete(id int64) error {
	query := `UPDATE hotels SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ReserveRoom decrements available_rooms for a booking. The guard on
// available_rooms prevents overbooking under concurrent requests.
func (r *HotelRepository) ReserveRoom(id int64) error {
	query := `
		UPDATE hotels
		SET available_rooms = available_rooms - 1, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE AND available_rooms > 0
	`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to reserve room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check reserve result: %w", err)
	}
	if rows == 0 {
		return ErrNoRoomsAvailable
	}

	return nil
}

// ReleaseRoom increments available_rooms after a cancellation
func (r *HotelRepository) ReleaseRoom(id int64) error {
	query := `
		UPDATE hotels
		SET available_rooms = LEAST(available_rooms + 1, total_rooms), updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to release room: %w", err)
	}

	return nil
}

// Countries returns the distinct countries of active hotels
func (r *HotelRepository) Countries() ([]string, error) {
	countries := []string{}
	query := `SELECT DISTINCT country FROM hotels WHERE is_active = TRUE ORDER BY country`
	if err := r.db.Select(&countries, query); err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// CitiesByCountry returns the distinct cities of active hotels in a country
func (r *HotelRepository) CitiesByCountry(country string) ([]string, error) {
	cities := []string{}
	query := `SELECT DISTINCT city FROM hotels WHERE is_active = TRUE AND LOWER(country) = LOWER($1) ORDER BY city`
	if err := r.db.Select(&cities, query, country); err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

// HotelStats summarizes the active catalog
type HotelStats struct {
	TotalHotels    int     `json:"total_hotels" db:"total_hotels"`
	TotalRooms     int     `json:"total_rooms" db:"total_rooms"`
	AvailableRooms int     `json:"available_rooms" db:"available_rooms"`
	AverageRating  float64 `json:"average_rating" db:"average_rating"`
}

// Stats returns aggregate statistics over active hotels
func (r *HotelRepository) Stats() (*HotelStats, error) {
	query := `
		SELECT COUNT(*) AS total_hotels,
			   COALESCE(SUM(total_rooms), 0) AS total_rooms,
			   COALESCE(SUM(available_rooms), 0) AS available_rooms,
			   COALESCE(AVG(rating), 0) AS average_rating
		FROM hotels
		WHERE is_active = TRUE
	`

	var stats HotelStats
	if err := r.db.Get(&stats, query); err != nil {
		return nil, fmt.Errorf("failed to get hotel stats: %w", err)
	}

	return &stats, nil
}
