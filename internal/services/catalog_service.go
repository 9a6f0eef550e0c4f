package services

import (
	"sort"
	"strings"

	"github.com/afrostay/hotel-booking-backend/internal/models"
)

// Listing defaults
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// CatalogService filters, sorts, and paginates the hotel catalog. It is a
// pure computation over caller-supplied hotels: no I/O, no currency work.
type CatalogService struct{}

// NewCatalogService creates a new catalog service
func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// List applies the query's filters, sort order, and page window to the
// given hotels. Total is counted after filtering and before slicing; a
// page beyond the last yields an empty result, never an error.
func (s *CatalogService) List(hotels []models.Hotel, query models.ListingQuery) models.ListingResult {
	page := query.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	filtered := make([]models.Hotel, 0, len(hotels))
	for _, hotel := range hotels {
		if matches(hotel, query) {
			filtered = append(filtered, hotel)
		}
	}

	sortHotels(filtered, query.Sort, query.Order)

	total := len(filtered)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	return models.ListingResult{
		Hotels: filtered[start:end],
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}
}

// matches applies all provided criteria conjunctively
func matches(hotel models.Hotel, query models.ListingQuery) bool {
	if query.Country != "" && !strings.EqualFold(hotel.Country, query.Country) {
		return false
	}
	if query.City != "" && !strings.EqualFold(hotel.City, query.City) {
		return false
	}
	if query.MinPrice != nil && hotel.BasePrice < *query.MinPrice {
		return false
	}
	if query.MaxPrice != nil && hotel.BasePrice > *query.MaxPrice {
		return false
	}
	if query.MinRating != nil && hotel.Rating < *query.MinRating {
		return false
	}
	if query.Search != "" && !matchesSearch(hotel, query.Search) {
		return false
	}
	return true
}

// matchesSearch checks a case-insensitive substring match across name,
// description, city, and country
func matchesSearch(hotel models.Hotel, search string) bool {
	term := strings.ToLower(search)
	fields := []string{hotel.Name, hotel.Description.String, hotel.City, hotel.Country}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// sortHotels sorts in place by the requested field. Unsupported fields
// fall back to created_at descending. Ties break by ascending id so the
// same query always yields the same order.
func sortHotels(hotels []models.Hotel, field, order string) {
	switch field {
	case models.SortByName, models.SortByPrice, models.SortByRating,
		models.SortByCreatedAt, models.SortByCountry, models.SortByCity:
	default:
		field = models.SortByCreatedAt
		order = models.OrderDesc
	}
	desc := strings.EqualFold(order, models.OrderDesc)

	sort.SliceStable(hotels, func(i, j int) bool {
		a, b := hotels[i], hotels[j]
		cmp := compareByField(a, b, field)
		if cmp == 0 {
			return a.ID < b.ID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareByField compares two hotels on one sort field
func compareByField(a, b models.Hotel, field string) int {
	switch field {
	case models.SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case models.SortByPrice:
		return compareFloat(a.BasePrice, b.BasePrice)
	case models.SortByRating:
		return compareFloat(a.Rating, b.Rating)
	case models.SortByCountry:
		return strings.Compare(strings.ToLower(a.Country), strings.ToLower(b.Country))
	case models.SortByCity:
		return strings.Compare(strings.ToLower(a.City), strings.ToLower(b.City))
	default: // created_at
		if a.CreatedAt.Before(b.CreatedAt) {
			return -1
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return 1
		}
		return 0
	}
}

func compareFloat(a, b float64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
