package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a stay reservation. The price fields are fixed at
// creation time; a re-quote requires a new booking.
type Booking struct {
	ID         int64     `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	HotelID    int64     `json:"hotel_id" db:"hotel_id"`
	CheckIn    time.Time `json:"check_in" db:"check_in"`
	CheckOut   time.Time `json:"check_out" db:"check_out"`
	Nights     int       `json:"nights" db:"nights"`
	Currency   string    `json:"currency" db:"currency"`
	Subtotal   float64   `json:"subtotal" db:"subtotal"`
	Tax        float64   `json:"tax" db:"tax"`
	TotalPrice float64   `json:"total_price" db:"total_price"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	// Joined hotel fields for booking listings
	HotelName NullString `json:"hotel_name,omitempty" db:"hotel_name"`
	HotelCity NullString `json:"hotel_city,omitempty" db:"hotel_city"`
}
