package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/afrostay/hotel-booking-backend/internal/database"
	"github.com/afrostay/hotel-booking-backend/internal/middleware"
	"github.com/afrostay/hotel-booking-backend/internal/models"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionRepository *database.TransactionRepository
	bookingRepository     *database.BookingRepository
	logger                *logrus.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionRepository *database.TransactionRepository,
	bookingRepository *database.BookingRepository,
	logger *logrus.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionRepository: transactionRepository,
		bookingRepository:     bookingRepository,
		logger:                logger,
	}
}

// UpdateTransactionStatusRequest represents the status update payload
type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List handles GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	transactions, total, err := h.transactionRepository.ListByUser(userCtx.UserID, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list transactions")
		respondError(c, http.StatusInternalServerError, "transactions_failed", "Failed to list transactions")
		return
	}

	respondOK(c, "", gin.H{
		"transactions": transactions,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// Get handles GET /api/v1/transactions/:reference. Users can only see
// their own transactions; admins can see any.
func (h *TransactionHandler) Get(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	reference := c.Param("reference")
	tx, err := h.transactionRepository.GetByReference(reference)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "transaction_not_found", "Transaction not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get transaction")
		respondError(c, http.StatusInternalServerError, "transaction_failed", "Failed to load transaction")
		return
	}

	if tx.UserID != userCtx.UserID && userCtx.Role != models.RoleAdmin {
		respondError(c, http.StatusNotFound, "transaction_not_found", "Transaction not found")
		return
	}

	respondOK(c, "", tx)
}

// UpdateStatus handles PUT /api/v1/transactions/:reference/status
// (admin). A pending transaction moves to a terminal status exactly
// once; completing a booking transaction confirms its booking.
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	reference := c.Param("reference")

	var req UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "status is required")
		return
	}

	if !models.IsTerminalTransactionStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "invalid_status", "status must be completed, failed, or cancelled")
		return
	}

	if err := h.transactionRepository.UpdateStatus(reference, req.Status); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondError(c, http.StatusNotFound, "transaction_not_found", "Transaction not found")
		case errors.Is(err, database.ErrInvalidStatusTransition):
			respondError(c, http.StatusConflict, "invalid_transition", "Transaction has already reached a terminal status")
		default:
			h.logger.WithError(err).Error("Failed to update transaction status")
			respondError(c, http.StatusInternalServerError, "update_failed", "Failed to update transaction status")
		}
		return
	}

	tx, err := h.transactionRepository.GetByReference(reference)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "update_failed", "Failed to load updated transaction")
		return
	}

	if req.Status == models.TransactionStatusCompleted && tx.BookingID.Valid {
		if err := h.bookingRepository.UpdateStatus(tx.BookingID.Int64, models.BookingStatusConfirmed); err != nil {
			h.logger.WithError(err).WithField("booking_id", tx.BookingID.Int64).Error("Failed to confirm booking after payment")
		}
	}

	h.logger.WithFields(logrus.Fields{
		"reference_id": reference,
		"status":       req.Status,
	}).Info("Transaction status updated")

	respondOK(c, "Transaction status updated", tx)
}
