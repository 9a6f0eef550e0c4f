package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackTable(t *testing.T) {
	table := FallbackTable()

	assert.True(t, table.Fallback)
	assert.Equal(t, "USD", table.Base)

	usd, ok := table.Rate("USD")
	require.True(t, ok)
	assert.Equal(t, 1.0, usd)

	for code := range SupportedCurrencies {
		rate, ok := table.Rate(code)
		assert.True(t, ok, "missing fallback rate for %s", code)
		assert.Greater(t, rate, 0.0, "non-positive fallback rate for %s", code)
	}
}

func TestGetRatesLiveFetch(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"base":"USD","rates":{"ngn":800.5,"KES":120}}`))
	}))
	defer server.Close()

	provider := NewProvider(ProviderConfig{APIURL: server.URL})
	table := provider.GetRates(context.Background())

	assert.False(t, table.Fallback)

	usd, ok := table.Rate("USD")
	require.True(t, ok)
	assert.Equal(t, 1.0, usd)

	ngn, ok := table.Rate("NGN")
	require.True(t, ok)
	assert.Equal(t, 800.5, ngn)

	t.Run("Second call served from cache", func(t *testing.T) {
		provider.GetRates(context.Background())
		assert.Equal(t, 1, requests)
	})
}

func TestGetRatesFallsBack(t *testing.T) {
	t.Run("Unreachable service", func(t *testing.T) {
		provider := NewProvider(ProviderConfig{
			APIURL:  "http://127.0.0.1:1",
			Timeout: 200 * time.Millisecond,
		})
		table := provider.GetRates(context.Background())
		assert.True(t, table.Fallback)

		usd, ok := table.Rate("USD")
		require.True(t, ok)
		assert.Equal(t, 1.0, usd)
	})

	t.Run("Malformed response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		provider := NewProvider(ProviderConfig{APIURL: server.URL})
		table := provider.GetRates(context.Background())
		assert.True(t, table.Fallback)
	})

	t.Run("Service reports failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false}`))
		}))
		defer server.Close()

		provider := NewProvider(ProviderConfig{APIURL: server.URL})
		table := provider.GetRates(context.Background())
		assert.True(t, table.Fallback)
	})

	t.Run("No API configured", func(t *testing.T) {
		provider := NewProvider(ProviderConfig{})
		table := provider.GetRates(context.Background())
		assert.True(t, table.Fallback)
	})
}

func TestGetRatesServesStaleOverFallback(t *testing.T) {
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"rates":{"NGN":800}}`))
	}))
	defer server.Close()

	provider := NewProvider(ProviderConfig{
		APIURL:   server.URL,
		CacheTTL: time.Nanosecond, // expire immediately
	})

	first := provider.GetRates(context.Background())
	require.False(t, first.Fallback)

	healthy = false
	time.Sleep(time.Millisecond)

	second := provider.GetRates(context.Background())
	assert.False(t, second.Fallback)
	ngn, ok := second.Rate("NGN")
	require.True(t, ok)
	assert.Equal(t, 800.0, ngn)
}
