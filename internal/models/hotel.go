package models

import "time"

// Hotel represents a hotel in the catalog.
// BasePrice is the nightly rate in BaseCurrency, prior to any display-time
// conversion. IsActive is a soft-delete flag; inactive hotels never appear
// in listings.
type Hotel struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Description    NullString `json:"description,omitempty" db:"description"`
	Country        string     `json:"country" db:"country"`
	City           string     `json:"city" db:"city"`
	Address        NullString `json:"address,omitempty" db:"address"`
	BasePrice      float64    `json:"price" db:"price"`
	BaseCurrency   string     `json:"currency" db:"currency"`
	Rating         float64    `json:"rating" db:"rating"`
	TotalRooms     int        `json:"total_rooms" db:"total_rooms"`
	AvailableRooms int        `json:"available_rooms" db:"available_rooms"`
	Amenities      StringList `json:"amenities" db:"amenities"`
	Images         StringList `json:"images" db:"images"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
