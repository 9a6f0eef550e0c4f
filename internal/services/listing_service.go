package services

import (
	"context"
	"strings"

	"github.com/afrostay/hotel-booking-backend/internal/models"
	"github.com/afrostay/hotel-booking-backend/pkg/currency"
)

// RateSource supplies the current exchange rate table
type RateSource interface {
	GetRates(ctx context.Context) currency.RateTable
}

// ListingService enriches a filtered catalog page with display-time
// currency conversions. The original price and currency are always kept
// on each entry; conversion never overwrites ground truth.
type ListingService struct {
	rates     RateSource
	converter *currency.Converter
}

// NewListingService creates a new listing service. Conversion inside a
// listing is always lenient: one bad currency code must not fail a page,
// it degrades to an approximate value instead.
func NewListingService(rates RateSource) *ListingService {
	return &ListingService{
		rates:     rates,
		converter: currency.NewConverter(false),
	}
}

// Assemble converts the page's prices into targetCurrency when one is
// requested. An empty target returns the hotels unchanged.
func (s *ListingService) Assemble(ctx context.Context, result models.ListingResult, targetCurrency string) models.AssembledListing {
	entries := make([]models.ListingEntry, 0, len(result.Hotels))

	target := strings.ToUpper(strings.TrimSpace(targetCurrency))
	var table currency.RateTable
	if target != "" {
		table = s.rates.GetRates(ctx)
	}

	for _, hotel := range result.Hotels {
		entry := models.ListingEntry{Hotel: hotel}
		if target != "" && !strings.EqualFold(hotel.BaseCurrency, target) {
			converted, err := s.converter.Convert(hotel.BasePrice, hotel.BaseCurrency, target, table)
			if err == nil {
				entry.ConvertedPrice = &converted
				entry.ConvertedCurrency = target
			}
			// A failed conversion (bad stored price) leaves the entry
			// with its original price only
		}
		entries = append(entries, entry)
	}

	return models.AssembledListing{
		Hotels:     entries,
		Pagination: result.Pagination,
	}
}
