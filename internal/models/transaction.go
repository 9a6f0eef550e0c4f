package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Transaction statuses. A transaction is created pending and moves to a
// terminal status exactly once.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// Transaction types
const (
	TransactionTypeBooking = "booking"
	TransactionTypeRefund  = "refund"
)

// Transaction records a monetary event tied to a user and a hotel.
// ReferenceID is globally unique and generated at creation time.
type Transaction struct {
	ID          int64         `json:"id" db:"id"`
	UserID      uuid.UUID     `json:"user_id" db:"user_id"`
	HotelID     int64         `json:"hotel_id" db:"hotel_id"`
	BookingID   sql.NullInt64 `json:"-" db:"booking_id"`
	Amount      float64       `json:"amount" db:"amount"`
	Currency    string        `json:"currency" db:"currency"`
	Type        string        `json:"transaction_type" db:"transaction_type"`
	Status      string        `json:"status" db:"status"`
	ReferenceID string        `json:"reference_id" db:"reference_id"`
	Metadata    JSONMap       `json:"metadata" db:"metadata"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`

	// Joined fields for transaction listings
	HotelName NullString `json:"hotel_name,omitempty" db:"hotel_name"`
	UserEmail NullString `json:"user_email,omitempty" db:"user_email"`
}

// IsTerminalTransactionStatus reports whether the status is a terminal one
func IsTerminalTransactionStatus(status string) bool {
	switch status {
	case TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}
