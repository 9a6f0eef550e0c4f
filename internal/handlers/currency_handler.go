package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/afrostay/hotel-booking-backend/pkg/currency"
	"github.com/afrostay/hotel-booking-backend/pkg/validator"
)

// CurrencyHandler handles exchange rate HTTP requests
type CurrencyHandler struct {
	provider          *currency.Provider
	converter         *currency.Converter
	currencyValidator *validator.CurrencyValidator
	logger            *logrus.Logger
}

// NewCurrencyHandler creates a new currency handler. The converter's
// strict mode follows server configuration.
func NewCurrencyHandler(
	provider *currency.Provider,
	converter *currency.Converter,
	currencyValidator *validator.CurrencyValidator,
	logger *logrus.Logger,
) *CurrencyHandler {
	return &CurrencyHandler{
		provider:          provider,
		converter:         converter,
		currencyValidator: currencyValidator,
		logger:            logger,
	}
}

// ConvertRequest represents a currency conversion request
type ConvertRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	From   string  `json:"from" binding:"required"`
	To     string  `json:"to" binding:"required"`
}

// Convert handles POST /api/v1/currency/convert
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "amount, from, and to are required")
		return
	}

	from, err := h.currencyValidator.Validate(req.From)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_currency", err.Error())
		return
	}
	to, err := h.currencyValidator.Validate(req.To)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_currency", err.Error())
		return
	}

	table := h.provider.GetRates(c.Request.Context())

	converted, err := h.converter.Convert(req.Amount, from, to, table)
	if err != nil {
		switch {
		case errors.Is(err, currency.ErrInvalidAmount):
			respondError(c, http.StatusBadRequest, "invalid_amount", "Amount must be positive")
		case errors.Is(err, currency.ErrUnknownCurrency):
			respondError(c, http.StatusBadRequest, "unknown_currency", err.Error())
		default:
			h.logger.WithError(err).Error("Failed to convert currency")
			respondError(c, http.StatusInternalServerError, "conversion_failed", "Failed to convert currency")
		}
		return
	}

	rate, _ := h.converter.Rate(from, to, table)

	respondOK(c, "", gin.H{
		"amount":     req.Amount,
		"from":       from,
		"to":         to,
		"converted":  converted,
		"rate":       rate,
		"fallback":   table.Fallback,
		"fetched_at": table.FetchedAt,
	})
}

// Rates handles GET /api/v1/currency/rates
func (h *CurrencyHandler) Rates(c *gin.Context) {
	table := h.provider.GetRates(c.Request.Context())

	respondOK(c, "", gin.H{
		"base":       table.Base,
		"rates":      table.Rates,
		"fallback":   table.Fallback,
		"fetched_at": table.FetchedAt,
	})
}

// Supported handles GET /api/v1/currency/supported
func (h *CurrencyHandler) Supported(c *gin.Context) {
	respondOK(c, "", gin.H{"currencies": currency.SupportedCurrencies})
}
