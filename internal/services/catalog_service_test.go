package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrostay/hotel-booking-backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func sampleHotels() []models.Hotel {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Hotel{
		{ID: 1, Name: "Savannah Lodge", Country: "Kenya", City: "Nairobi", BasePrice: 120, BaseCurrency: "USD", Rating: 4.5, CreatedAt: base},
		{ID: 2, Name: "Atlas View", Country: "Morocco", City: "Marrakech", BasePrice: 80, BaseCurrency: "MAD", Rating: 4.0, CreatedAt: base.Add(24 * time.Hour)},
		{ID: 3, Name: "Cape Breeze", Country: "South Africa", City: "Cape Town", BasePrice: 150, BaseCurrency: "ZAR", Rating: 4.8, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 4, Name: "Lagos Pearl", Country: "Nigeria", City: "Lagos", BasePrice: 95, BaseCurrency: "NGN", Rating: 3.9, CreatedAt: base.Add(72 * time.Hour)},
		{ID: 5, Name: "Nairobi Heights", Country: "Kenya", City: "Nairobi", BasePrice: 95, BaseCurrency: "KES", Rating: 4.2, CreatedAt: base.Add(96 * time.Hour)},
	}
}

func TestListFiltersByCountryAndCity(t *testing.T) {
	svc := NewCatalogService()

	result := svc.List(sampleHotels(), models.ListingQuery{Country: "kenya"})
	require.Len(t, result.Hotels, 2)
	for _, h := range result.Hotels {
		assert.Equal(t, "Kenya", h.Country)
	}

	result = svc.List(sampleHotels(), models.ListingQuery{Country: "Kenya", City: "NAIROBI"})
	assert.Len(t, result.Hotels, 2)

	result = svc.List(sampleHotels(), models.ListingQuery{Country: "Kenya", City: "Mombasa"})
	assert.Empty(t, result.Hotels)
	assert.Equal(t, 0, result.Pagination.Total)
}

func TestListPriceRangeIsInclusive(t *testing.T) {
	svc := NewCatalogService()

	result := svc.List(sampleHotels(), models.ListingQuery{
		MinPrice: floatPtr(95),
		MaxPrice: floatPtr(120),
	})

	require.Len(t, result.Hotels, 3)
	for _, h := range result.Hotels {
		assert.GreaterOrEqual(t, h.BasePrice, 95.0)
		assert.LessOrEqual(t, h.BasePrice, 120.0)
	}
}

func TestListSearchMatchesAcrossFields(t *testing.T) {
	svc := NewCatalogService()

	result := svc.List(sampleHotels(), models.ListingQuery{Search: "cape"})
	require.Len(t, result.Hotels, 1)
	assert.Equal(t, int64(3), result.Hotels[0].ID)

	result = svc.List(sampleHotels(), models.ListingQuery{Search: "NAIROBI"})
	assert.Len(t, result.Hotels, 2)
}

func TestListSortAscendingAndDescending(t *testing.T) {
	svc := NewCatalogService()

	asc := svc.List(sampleHotels(), models.ListingQuery{Sort: models.SortByPrice, Order: models.OrderAsc})
	desc := svc.List(sampleHotels(), models.ListingQuery{Sort: models.SortByPrice, Order: models.OrderDesc})

	require.Len(t, asc.Hotels, 5)
	for i := 1; i < len(asc.Hotels); i++ {
		assert.LessOrEqual(t, asc.Hotels[i-1].BasePrice, asc.Hotels[i].BasePrice)
	}
	for i := range desc.Hotels {
		assert.Equal(t, asc.Hotels[len(asc.Hotels)-1-i].BasePrice, desc.Hotels[i].BasePrice)
	}
}

func TestListSortTiesBreakByID(t *testing.T) {
	svc := NewCatalogService()

	// Hotels 4 and 5 share a price; ascending id wins the tie either way
	asc := svc.List(sampleHotels(), models.ListingQuery{Sort: models.SortByPrice, Order: models.OrderAsc})
	require.Len(t, asc.Hotels, 5)
	assert.Equal(t, int64(2), asc.Hotels[0].ID)
	assert.Equal(t, int64(4), asc.Hotels[1].ID)
	assert.Equal(t, int64(5), asc.Hotels[2].ID)
}

func TestListUnknownSortFallsBackToNewestFirst(t *testing.T) {
	svc := NewCatalogService()

	result := svc.List(sampleHotels(), models.ListingQuery{Sort: "bogus"})
	require.Len(t, result.Hotels, 5)
	assert.Equal(t, int64(5), result.Hotels[0].ID)
	assert.Equal(t, int64(1), result.Hotels[4].ID)
}

func TestListPaginationWindow(t *testing.T) {
	svc := NewCatalogService()

	page1 := svc.List(sampleHotels(), models.ListingQuery{Page: 1, Limit: 2, Sort: models.SortByName, Order: models.OrderAsc})
	page3 := svc.List(sampleHotels(), models.ListingQuery{Page: 3, Limit: 2, Sort: models.SortByName, Order: models.OrderAsc})

	assert.Len(t, page1.Hotels, 2)
	assert.Len(t, page3.Hotels, 1)

	// Total reflects the filtered set, not the page
	assert.Equal(t, 5, page1.Pagination.Total)
	assert.Equal(t, 5, page3.Pagination.Total)
	assert.Equal(t, 3, page1.Pagination.Pages)
}

func TestListPageBeyondLastIsEmpty(t *testing.T) {
	svc := NewCatalogService()

	result := svc.List(sampleHotels(), models.ListingQuery{Page: 99, Limit: 2})

	assert.Empty(t, result.Hotels)
	assert.Equal(t, 5, result.Pagination.Total)
	assert.Equal(t, 99, result.Pagination.Page)
}

func TestListDefaultsPageAndLimit(t *testing.T) {
	svc := NewCatalogService()

	result := svc.List(sampleHotels(), models.ListingQuery{Page: 0, Limit: -3})

	assert.Equal(t, DefaultPage, result.Pagination.Page)
	assert.Equal(t, DefaultLimit, result.Pagination.Limit)
	assert.Len(t, result.Hotels, 5)
}

func TestListDoesNotMutateInput(t *testing.T) {
	svc := NewCatalogService()

	hotels := sampleHotels()
	svc.List(hotels, models.ListingQuery{Sort: models.SortByPrice, Order: models.OrderDesc})

	// Input slice order is untouched; sorting happens on the filtered copy
	for i, h := range hotels {
		assert.Equal(t, int64(i+1), h.ID)
	}
}

func TestListMinRatingFilter(t *testing.T) {
	svc := NewCatalogService()

	result := svc.List(sampleHotels(), models.ListingQuery{MinRating: floatPtr(4.2)})

	require.Len(t, result.Hotels, 3)
	for _, h := range result.Hotels {
		assert.GreaterOrEqual(t, h.Rating, 4.2)
	}
}
