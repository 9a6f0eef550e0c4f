package database

import "errors"

var (
	// ErrNotFound indicates the referenced row does not exist or is inactive
	ErrNotFound = errors.New("record not found")

	// ErrNoRoomsAvailable indicates a booking could not reserve a room
	ErrNoRoomsAvailable = errors.New("no rooms available")

	// ErrInvalidStatusTransition indicates a transaction was already moved
	// out of its pending state
	ErrInvalidStatusTransition = errors.New("transaction is not pending")
)
