package models

// Listing sort fields accepted by the catalog. Anything else falls back to
// created_at descending.
const (
	SortByName      = "name"
	SortByPrice     = "price"
	SortByRating    = "rating"
	SortByCreatedAt = "created_at"
	SortByCountry   = "country"
	SortByCity      = "city"
)

// Sort directions
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListingQuery carries the filter, sort, and pagination criteria for a
// catalog listing request. Nil numeric filters are not applied.
type ListingQuery struct {
	Country   string   `form:"country"`
	City      string   `form:"city"`
	MinPrice  *float64 `form:"min_price"`
	MaxPrice  *float64 `form:"max_price"`
	MinRating *float64 `form:"min_rating"`
	Search    string   `form:"search"`
	Page      int      `form:"page"`
	Limit     int      `form:"limit"`
	Sort      string   `form:"sort"`
	Order     string   `form:"order"`
	Currency  string   `form:"currency"`
}

// Pagination echoes the applied page window plus the total count of
// filtered results before slicing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListingResult is a filtered, sorted, paginated view over the catalog
type ListingResult struct {
	Hotels     []Hotel    `json:"hotels"`
	Pagination Pagination `json:"pagination"`
}

// ListingEntry is a hotel enriched with a display-time currency conversion.
// The embedded hotel keeps the original price and currency untouched so
// consumers always retain ground truth.
type ListingEntry struct {
	Hotel
	ConvertedPrice    *float64 `json:"converted_price,omitempty"`
	ConvertedCurrency string   `json:"converted_currency,omitempty"`
}

// AssembledListing is the response payload for a listing request
type AssembledListing struct {
	Hotels     []ListingEntry `json:"hotels"`
	Pagination Pagination     `json:"pagination"`
}
