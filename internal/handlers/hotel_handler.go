package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/afrostay/hotel-booking-backend/internal/database"
	"github.com/afrostay/hotel-booking-backend/internal/models"
	"github.com/afrostay/hotel-booking-backend/internal/services"
	"github.com/afrostay/hotel-booking-backend/pkg/validator"
)

// HotelHandler handles hotel catalog HTTP requests
type HotelHandler struct {
	hotelRepository   *database.HotelRepository
	catalogService    *services.CatalogService
	listingService    *services.ListingService
	currencyValidator *validator.CurrencyValidator
	logger            *logrus.Logger
}

// NewHotelHandler creates a new hotel handler
func NewHotelHandler(
	hotelRepository *database.HotelRepository,
	catalogService *services.CatalogService,
	listingService *services.ListingService,
	currencyValidator *validator.CurrencyValidator,
	logger *logrus.Logger,
) *HotelHandler {
	return &HotelHandler{
		hotelRepository:   hotelRepository,
		catalogService:    catalogService,
		listingService:    listingService,
		currencyValidator: currencyValidator,
		logger:            logger,
	}
}

// HotelRequest represents the create/update hotel payload
type HotelRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Country        string   `json:"country" binding:"required"`
	City           string   `json:"city" binding:"required"`
	Address        string   `json:"address"`
	Price          float64  `json:"price" binding:"required"`
	Currency       string   `json:"currency" binding:"required"`
	Rating         float64  `json:"rating"`
	TotalRooms     int      `json:"total_rooms" binding:"required"`
	AvailableRooms *int     `json:"available_rooms"`
	Amenities      []string `json:"amenities"`
	Images         []string `json:"images"`
}

// List handles GET /api/v1/hotels
func (h *HotelHandler) List(c *gin.Context) {
	var query models.ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid query parameters")
		return
	}

	if query.Currency != "" {
		code, err := h.currencyValidator.Validate(query.Currency)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_currency", err.Error())
			return
		}
		query.Currency = code
	}

	hotels, err := h.hotelRepository.ListActive()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load hotel catalog")
		respondError(c, http.StatusInternalServerError, "catalog_failed", "Failed to load hotels")
		return
	}

	result := h.catalogService.List(hotels, query)
	listing := h.listingService.Assemble(c.Request.Context(), result, query.Currency)

	respondOK(c, "", listing)
}

// Get handles GET /api/v1/hotels/:id
func (h *HotelHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", "Hotel id must be a number")
		return
	}

	targetCurrency := c.Query("currency")
	if targetCurrency != "" {
		code, err := h.currencyValidator.Validate(targetCurrency)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_currency", err.Error())
			return
		}
		targetCurrency = code
	}

	hotel, err := h.hotelRepository.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "hotel_not_found", "Hotel not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get hotel")
		respondError(c, http.StatusInternalServerError, "hotel_failed", "Failed to load hotel")
		return
	}

	// Reuse the listing assembler for the single-hotel conversion
	listing := h.listingService.Assemble(c.Request.Context(), models.ListingResult{
		Hotels: []models.Hotel{*hotel},
	}, targetCurrency)

	respondOK(c, "", listing.Hotels[0])
}

// Create handles POST /api/v1/hotels (admin)
func (h *HotelHandler) Create(c *gin.Context) {
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	hotel, err := h.hotelFromRequest(&req)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_hotel", err.Error())
		return
	}

	if err := h.hotelRepository.Create(hotel); err != nil {
		h.logger.WithError(err).Error("Failed to create hotel")
		respondError(c, http.StatusInternalServerError, "create_failed", "Failed to create hotel")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"hotel_id": hotel.ID,
		"name":     hotel.Name,
	}).Info("Hotel created")

	respondCreated(c, "Hotel created", hotel)
}

// Update handles PUT /api/v1/hotels/:id (admin)
func (h *HotelHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", "Hotel id must be a number")
		return
	}

	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	hotel, err := h.hotelFromRequest(&req)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_hotel", err.Error())
		return
	}
	hotel.ID = id

	if err := h.hotelRepository.Update(hotel); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "hotel_not_found", "Hotel not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update hotel")
		respondError(c, http.StatusInternalServerError, "update_failed", "Failed to update hotel")
		return
	}

	updated, err := h.hotelRepository.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "update_failed", "Failed to load updated hotel")
		return
	}

	respondOK(c, "Hotel updated", updated)
}

// Delete handles DELETE /api/v1/hotels/:id (admin). Hotels are soft
// deleted so existing bookings keep their join targets.
func (h *HotelHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", "Hotel id must be a number")
		return
	}

	if err := h.hotelRepository.SoftDelete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "hotel_not_found", "Hotel not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete hotel")
		respondError(c, http.StatusInternalServerError, "delete_failed", "Failed to delete hotel")
		return
	}

	respondOK(c, "Hotel deleted", nil)
}

// Countries handles GET /api/v1/hotels/countries
func (h *HotelHandler) Countries(c *gin.Context) {
	countries, err := h.hotelRepository.Countries()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list countries")
		respondError(c, http.StatusInternalServerError, "countries_failed", "Failed to list countries")
		return
	}

	respondOK(c, "", gin.H{"countries": countries})
}

// Cities handles GET /api/v1/hotels/countries/:country/cities
func (h *HotelHandler) Cities(c *gin.Context) {
	country := c.Param("country")
	cities, err := h.hotelRepository.CitiesByCountry(country)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list cities")
		respondError(c, http.StatusInternalServerError, "cities_failed", "Failed to list cities")
		return
	}

	respondOK(c, "", gin.H{"country": country, "cities": cities})
}

// Stats handles GET /api/v1/hotels/stats (admin)
func (h *HotelHandler) Stats(c *gin.Context) {
	stats, err := h.hotelRepository.Stats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get hotel stats")
		respondError(c, http.StatusInternalServerError, "stats_failed", "Failed to load stats")
		return
	}

	respondOK(c, "", stats)
}

// hotelFromRequest validates and maps the request payload to a model
func (h *HotelHandler) hotelFromRequest(req *HotelRequest) (*models.Hotel, error) {
	code, err := h.currencyValidator.Validate(req.Currency)
	if err != nil {
		return nil, err
	}
	if req.Price <= 0 {
		return nil, errors.New("price must be positive")
	}
	if req.Rating < 0 || req.Rating > 5 {
		return nil, errors.New("rating must be between 0 and 5")
	}
	if req.TotalRooms < 1 {
		return nil, errors.New("total_rooms must be at least 1")
	}

	available := req.TotalRooms
	if req.AvailableRooms != nil {
		available = *req.AvailableRooms
	}
	if available < 0 || available > req.TotalRooms {
		return nil, errors.New("available_rooms must be between 0 and total_rooms")
	}

	return &models.Hotel{
		Name:           req.Name,
		Description:    models.NewNullString(req.Description),
		Country:        req.Country,
		City:           req.City,
		Address:        models.NewNullString(req.Address),
		BasePrice:      req.Price,
		BaseCurrency:   code,
		Rating:         req.Rating,
		TotalRooms:     req.TotalRooms,
		AvailableRooms: available,
		Amenities:      models.StringList(req.Amenities),
		Images:         models.StringList(req.Images),
	}, nil
}
