package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateTable maps ISO 4217 currency codes to their rate relative to USD.
// The rate for "USD" is always 1.0.
type RateTable struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
	Fallback  bool               `json:"fallback"`
}

// Rate returns the rate for a currency code and whether it is present
func (t RateTable) Rate(code string) (float64, bool) {
	rate, ok := t.Rates[strings.ToUpper(code)]
	return rate, ok
}

// fallbackRates are static USD-relative rates used when the live rate
// service is unreachable. Approximate values, updated manually.
var fallbackRates = map[string]float64{
	"USD": 1.0,
	"NGN": 750.00,
	"ZAR": 18.50,
	"KES": 110.00,
	"GHS": 12.00,
	"EGP": 30.50,
	"MAD": 10.20,
	"ETB": 55.00,
	"TZS": 2300.00,
	"UGX": 3700.00,
	"RWF": 1050.00,
	"BWP": 13.60,
	"ZMW": 25.80,
	"NAD": 18.50,
	"XOF": 600.00,
	"XAF": 600.00,
	"TND": 3.10,
	"DZD": 134.00,
	"AOA": 830.00,
}

// SupportedCurrencies maps every fallback currency code to its display name
var SupportedCurrencies = map[string]string{
	"USD": "United States Dollar",
	"NGN": "Nigerian Naira",
	"ZAR": "South African Rand",
	"KES": "Kenyan Shilling",
	"GHS": "Ghanaian Cedi",
	"EGP": "Egyptian Pound",
	"MAD": "Moroccan Dirham",
	"ETB": "Ethiopian Birr",
	"TZS": "Tanzanian Shilling",
	"UGX": "Ugandan Shilling",
	"RWF": "Rwandan Franc",
	"BWP": "Botswana Pula",
	"ZMW": "Zambian Kwacha",
	"NAD": "Namibian Dollar",
	"XOF": "West African CFA Franc",
	"XAF": "Central African CFA Franc",
	"TND": "Tunisian Dinar",
	"DZD": "Algerian Dinar",
	"AOA": "Angolan Kwanza",
}

// FallbackTable returns a rate table built from the static fallback rates
func FallbackTable() RateTable {
	rates := make(map[string]float64, len(fallbackRates))
	for code, rate := range fallbackRates {
		rates[code] = rate
	}
	return RateTable{
		Base:      "USD",
		Rates:     rates,
		FetchedAt: time.Now(),
		Fallback:  true,
	}
}

// ProviderConfig holds configuration for the rate provider
type ProviderConfig struct {
	APIURL   string        // Exchange rate API base URL, e.g. https://api.exchangerate.host
	Timeout  time.Duration // Per-fetch timeout, defaults to 5s
	CacheTTL time.Duration // How long a fetched table is reused, defaults to 5m
}

// Provider fetches exchange rates from an external API and degrades to the
// static fallback table on any failure. GetRates never returns an error:
// conversion callers always receive a usable table.
type Provider struct {
	apiURL   string
	client   *http.Client
	cacheTTL time.Duration

	// Cached table, latest wins
	mu        sync.RWMutex
	cached    RateTable
	cachedAt  time.Time
	haveCache bool
}

// NewProvider creates a new rate provider
func NewProvider(cfg ProviderConfig) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Provider{
		apiURL:   strings.TrimRight(cfg.APIURL, "/"),
		cacheTTL: cacheTTL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// latestResponse is the /latest response shape of exchangerate.host-style APIs
type latestResponse struct {
	Success *bool              `json:"success"`
	Base    string             `json:"base"`
	Rates   map[string]float64 `json:"rates"`
}

// GetRates returns the current USD-based rate table. It serves from the
// in-process cache while fresh, otherwise attempts a live fetch and falls
// back to the static table when the fetch fails.
func (p *Provider) GetRates(ctx context.Context) RateTable {
	p.mu.RLock()
	if p.haveCache && time.Since(p.cachedAt) < p.cacheTTL {
		table := p.cached
		p.mu.RUnlock()
		return table
	}
	p.mu.RUnlock()

	table, err := p.fetchLive(ctx)
	if err != nil {
		// Keep serving a stale live table over static rates if we have one
		p.mu.RLock()
		if p.haveCache {
			stale := p.cached
			p.mu.RUnlock()
			return stale
		}
		p.mu.RUnlock()
		return FallbackTable()
	}

	p.mu.Lock()
	p.cached = table
	p.cachedAt = time.Now()
	p.haveCache = true
	p.mu.Unlock()

	return table
}

// fetchLive performs the external API call
func (p *Provider) fetchLive(ctx context.Context) (RateTable, error) {
	if p.apiURL == "" {
		return RateTable{}, fmt.Errorf("no exchange rate API configured")
	}

	url := fmt.Sprintf("%s/latest?base=USD", p.apiURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RateTable{}, fmt.Errorf("failed to create rates request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return RateTable{}, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RateTable{}, fmt.Errorf("rates request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RateTable{}, fmt.Errorf("failed to read rates response: %w", err)
	}

	var parsed latestResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return RateTable{}, fmt.Errorf("failed to parse rates response: %w", err)
	}
	if parsed.Success != nil && !*parsed.Success {
		return RateTable{}, fmt.Errorf("rate service reported failure")
	}
	if len(parsed.Rates) == 0 {
		return RateTable{}, fmt.Errorf("rate service returned no rates")
	}

	rates := make(map[string]float64, len(parsed.Rates))
	for code, rate := range parsed.Rates {
		if rate <= 0 {
			continue
		}
		rates[strings.ToUpper(code)] = rate
	}
	// The base rate must always be present and exact
	rates["USD"] = 1.0

	return RateTable{
		Base:      "USD",
		Rates:     rates,
		FetchedAt: time.Now(),
	}, nil
}
