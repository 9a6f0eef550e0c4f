package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDateRange is returned when check-out is not after check-in
	ErrInvalidDateRange = errors.New("check-out must be after check-in")

	// ErrInvalidUnitPrice is returned for a non-positive nightly rate
	ErrInvalidUnitPrice = errors.New("nightly rate must be positive")
)

// Quote is the price breakdown for a stay. All monetary fields are
// rounded to two decimal places in the unit price's currency.
type Quote struct {
	Nights   int     `json:"nights"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	TaxRate  float64 `json:"tax_rate"`
}

// PricingService computes booking price quotes. The tax rate is an
// explicit configuration value, not a hidden constant.
type PricingService struct {
	taxRate float64
}

// NewPricingService creates a pricing service with the given default tax
// rate (a fraction, e.g. 0.10)
func NewPricingService(taxRate float64) *PricingService {
	return &PricingService{taxRate: taxRate}
}

// Quote computes the price of a stay at the configured tax rate
func (s *PricingService) Quote(unitPrice float64, checkIn, checkOut time.Time) (*Quote, error) {
	return s.QuoteWithTaxRate(unitPrice, checkIn, checkOut, s.taxRate)
}

// QuoteWithTaxRate computes the price of a stay with an explicit tax rate.
// Nights is the stay duration in days rounded up, with a minimum of one:
// a two-hour stay spanning midnight still counts as one night.
func (s *PricingService) QuoteWithTaxRate(unitPrice float64, checkIn, checkOut time.Time, taxRate float64) (*Quote, error) {
	if unitPrice <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUnitPrice, unitPrice)
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		nights = 1
	}

	subtotal := decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(nights))).
		Round(2)
	tax := subtotal.
		Mul(decimal.NewFromFloat(taxRate)).
		Round(2)
	total := subtotal.Add(tax)

	return &Quote{
		Nights:   nights,
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
		TaxRate:  taxRate,
	}, nil
}
