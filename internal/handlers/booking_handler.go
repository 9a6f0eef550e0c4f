package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/afrostay/hotel-booking-backend/internal/database"
	"github.com/afrostay/hotel-booking-backend/internal/middleware"
	"github.com/afrostay/hotel-booking-backend/internal/models"
	"github.com/afrostay/hotel-booking-backend/internal/services"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookingRepository     *database.BookingRepository
	hotelRepository       *database.HotelRepository
	transactionRepository *database.TransactionRepository
	pricingService        *services.PricingService
	logger                *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(
	bookingRepository *database.BookingRepository,
	hotelRepository *database.HotelRepository,
	transactionRepository *database.TransactionRepository,
	pricingService *services.PricingService,
	logger *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingRepository:     bookingRepository,
		hotelRepository:       hotelRepository,
		transactionRepository: transactionRepository,
		pricingService:        pricingService,
		logger:                logger,
	}
}

// CreateBookingRequest represents the booking creation payload
type CreateBookingRequest struct {
	HotelID  int64     `json:"hotel_id" binding:"required"`
	CheckIn  time.Time `json:"check_in" binding:"required"`
	CheckOut time.Time `json:"check_out" binding:"required"`
}

// BookingResponse pairs a booking with its payment transaction
type BookingResponse struct {
	Booking     *models.Booking     `json:"booking"`
	Transaction *models.Transaction `json:"transaction"`
}

// QuoteRequest represents a price quote request
type QuoteRequest struct {
	HotelID  int64     `json:"hotel_id" binding:"required"`
	CheckIn  time.Time `json:"check_in" binding:"required"`
	CheckOut time.Time `json:"check_out" binding:"required"`
}

// Quote handles POST /api/v1/bookings/quote. It prices a stay without
// reserving anything.
func (h *BookingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "hotel_id, check_in, and check_out are required")
		return
	}

	hotel, err := h.hotelRepository.GetByID(req.HotelID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "hotel_not_found", "Hotel not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load hotel for quote")
		respondError(c, http.StatusInternalServerError, "quote_failed", "Failed to compute quote")
		return
	}

	quote, err := h.pricingService.Quote(hotel.BasePrice, req.CheckIn, req.CheckOut)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			respondError(c, http.StatusBadRequest, "invalid_date_range", "check_out must be after check_in")
			return
		}
		respondError(c, http.StatusBadRequest, "quote_failed", err.Error())
		return
	}

	respondOK(c, "", gin.H{
		"hotel_id": hotel.ID,
		"currency": hotel.BaseCurrency,
		"quote":    quote,
	})
}

// Create handles POST /api/v1/bookings. A booking reserves a room,
// fixes the quoted price, and opens a pending payment transaction.
func (h *BookingHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "hotel_id, check_in, and check_out are required")
		return
	}

	hotel, err := h.hotelRepository.GetByID(req.HotelID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "hotel_not_found", "Hotel not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load hotel for booking")
		respondError(c, http.StatusInternalServerError, "booking_failed", "Failed to create booking")
		return
	}

	quote, err := h.pricingService.Quote(hotel.BasePrice, req.CheckIn, req.CheckOut)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			respondError(c, http.StatusBadRequest, "invalid_date_range", "check_out must be after check_in")
			return
		}
		respondError(c, http.StatusBadRequest, "booking_failed", err.Error())
		return
	}

	if err := h.hotelRepository.ReserveRoom(hotel.ID); err != nil {
		if errors.Is(err, database.ErrNoRoomsAvailable) {
			respondError(c, http.StatusConflict, "no_rooms_available", "No rooms available for this hotel")
			return
		}
		h.logger.WithError(err).Error("Failed to reserve room")
		respondError(c, http.StatusInternalServerError, "booking_failed", "Failed to create booking")
		return
	}

	booking := &models.Booking{
		UserID:     userCtx.UserID,
		HotelID:    hotel.ID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Nights:     quote.Nights,
		Currency:   hotel.BaseCurrency,
		Subtotal:   quote.Subtotal,
		Tax:        quote.Tax,
		TotalPrice: quote.Total,
	}

	if err := h.bookingRepository.Create(booking); err != nil {
		// Put the room back; the booking never existed
		if releaseErr := h.hotelRepository.ReleaseRoom(hotel.ID); releaseErr != nil {
			h.logger.WithError(releaseErr).WithField("hotel_id", hotel.ID).Error("Failed to release room after booking failure")
		}
		h.logger.WithError(err).Error("Failed to create booking")
		respondError(c, http.StatusInternalServerError, "booking_failed", "Failed to create booking")
		return
	}

	tx := &models.Transaction{
		UserID:    userCtx.UserID,
		HotelID:   hotel.ID,
		BookingID: sql.NullInt64{Int64: booking.ID, Valid: true},
		Amount:    quote.Total,
		Currency:  hotel.BaseCurrency,
		Type:      models.TransactionTypeBooking,
		Metadata: models.JSONMap{
			"nights":   quote.Nights,
			"tax_rate": quote.TaxRate,
		},
	}

	if err := h.transactionRepository.Create(tx); err != nil {
		h.logger.WithError(err).WithField("booking_id", booking.ID).Error("Failed to create booking transaction")
		respondError(c, http.StatusInternalServerError, "booking_failed", "Booking created but payment record failed")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"booking_id":   booking.ID,
		"user_id":      userCtx.UserID,
		"hotel_id":     hotel.ID,
		"reference_id": tx.ReferenceID,
		"total":        quote.Total,
		"currency":     hotel.BaseCurrency,
	}).Info("Booking created")

	respondCreated(c, "Booking created", BookingResponse{Booking: booking, Transaction: tx})
}

// List handles GET /api/v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	bookings, err := h.bookingRepository.ListByUser(userCtx.UserID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list bookings")
		respondError(c, http.StatusInternalServerError, "bookings_failed", "Failed to list bookings")
		return
	}

	respondOK(c, "", gin.H{"bookings": bookings})
}

// Get handles GET /api/v1/bookings/:id. Users can only see their own
// bookings; admins can see any.
func (h *BookingHandler) Get(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", "Booking id must be a number")
		return
	}

	booking, err := h.bookingRepository.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "booking_not_found", "Booking not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get booking")
		respondError(c, http.StatusInternalServerError, "booking_failed", "Failed to load booking")
		return
	}

	if booking.UserID != userCtx.UserID && userCtx.Role != models.RoleAdmin {
		respondError(c, http.StatusNotFound, "booking_not_found", "Booking not found")
		return
	}

	respondOK(c, "", booking)
}

// Cancel handles POST /api/v1/bookings/:id/cancel. Cancelling releases
// the room and voids the pending payment.
func (h *BookingHandler) Cancel(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", "Booking id must be a number")
		return
	}

	booking, err := h.bookingRepository.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "booking_not_found", "Booking not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get booking")
		respondError(c, http.StatusInternalServerError, "cancel_failed", "Failed to cancel booking")
		return
	}

	if booking.UserID != userCtx.UserID && userCtx.Role != models.RoleAdmin {
		respondError(c, http.StatusNotFound, "booking_not_found", "Booking not found")
		return
	}

	if booking.Status == models.BookingStatusCancelled {
		respondError(c, http.StatusBadRequest, "already_cancelled", "Booking is already cancelled")
		return
	}

	if err := h.bookingRepository.UpdateStatus(id, models.BookingStatusCancelled); err != nil {
		h.logger.WithError(err).Error("Failed to cancel booking")
		respondError(c, http.StatusInternalServerError, "cancel_failed", "Failed to cancel booking")
		return
	}

	if err := h.hotelRepository.ReleaseRoom(booking.HotelID); err != nil {
		h.logger.WithError(err).WithField("hotel_id", booking.HotelID).Error("Failed to release room after cancellation")
	}

	h.logger.WithFields(logrus.Fields{
		"booking_id": id,
		"user_id":    userCtx.UserID,
	}).Info("Booking cancelled")

	respondOK(c, "Booking cancelled", nil)
}
