package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/afrostay/hotel-booking-backend/internal/models"
)

// TransactionRepository handles database operations for the transactions table
type TransactionRepository struct {
	db DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// newReferenceID generates a globally unique, externally shareable
// transaction reference, e.g. TXN1717000000000A1B2C3
func newReferenceID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), suffix)
}

// Create inserts a new transaction in pending status and assigns its
// reference id
func (r *TransactionRepository) Create(tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			user_id, hotel_id, booking_id, amount, currency,
			transaction_type, status, reference_id, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	if tx.Status == "" {
		tx.Status = models.TransactionStatusPending
	}
	if tx.Type == "" {
		tx.Type = models.TransactionTypeBooking
	}
	tx.ReferenceID = newReferenceID()

	err := r.db.QueryRow(
		query,
		tx.UserID, tx.HotelID, tx.BookingID, tx.Amount, tx.Currency,
		tx.Type, tx.Status, tx.ReferenceID, tx.Metadata,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByReference retrieves a transaction by its reference id
func (r *TransactionRepository) GetByReference(referenceID string) (*models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.hotel_id, t.booking_id, t.amount, t.currency,
			   t.transaction_type, t.status, t.reference_id, t.metadata,
			   t.created_at, t.updated_at,
			   h.name AS hotel_name, u.email AS user_email
		FROM transactions t
		JOIN hotels h ON t.hotel_id = h.id
		JOIN users u ON t.user_id = u.id
		WHERE t.reference_id = $1
	`

	var tx models.Transaction
	if err := r.db.Get(&tx, query, referenceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &tx, nil
}

// ListByUser retrieves a page of a user's transactions, newest first,
// plus the total count
func (r *TransactionRepository) ListByUser(userID uuid.UUID, page, limit int) ([]models.Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := `
		SELECT t.id, t.user_id, t.hotel_id, t.booking_id, t.amount, t.currency,
			   t.transaction_type, t.status, t.reference_id, t.metadata,
			   t.created_at, t.updated_at,
			   h.name AS hotel_name
		FROM transactions t
		JOIN hotels h ON t.hotel_id = h.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	transactions := []models.Transaction{}
	if err := r.db.Select(&transactions, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions WHERE user_id = $1`
	if err := r.db.Get(&total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return transactions, total, nil
}

// UpdateStatus moves a pending transaction to a terminal status. The
// pending guard makes the transition happen at most once.
func (r *TransactionRepository) UpdateStatus(referenceID, status string) error {
	if !models.IsTerminalTransactionStatus(status) {
		return fmt.Errorf("invalid terminal status: %s", status)
	}

	query := `
		UPDATE transactions
		SET status = $1, updated_at = NOW()
		WHERE reference_id = $2 AND status = $3
	`

	result, err := r.db.Exec(query, status, referenceID, models.TransactionStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		// Either the reference does not exist or the transaction already
		// reached a terminal status
		if _, err := r.GetByReference(referenceID); err != nil {
			return ErrNotFound
		}
		return ErrInvalidStatusTransition
	}

	return nil
}
