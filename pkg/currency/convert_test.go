package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() RateTable {
	return RateTable{
		Base: "USD",
		Rates: map[string]float64{
			"USD": 1.0,
			"NGN": 750.00,
			"KES": 110.00,
			"ABC": 0.1235,
		},
	}
}

func TestConvert(t *testing.T) {
	converter := NewConverter(false)

	t.Run("Identity conversion returns amount unchanged", func(t *testing.T) {
		got, err := converter.Convert(123.456, "usd", "USD", testTable())
		require.NoError(t, err)
		assert.Equal(t, 123.456, got)
	})

	t.Run("USD to NGN", func(t *testing.T) {
		got, err := converter.Convert(100, "USD", "NGN", testTable())
		require.NoError(t, err)
		assert.Equal(t, 75000.00, got)
	})

	t.Run("Cross rate through USD", func(t *testing.T) {
		// 750 NGN is exactly 1 USD, which is exactly 110 KES
		got, err := converter.Convert(750, "NGN", "KES", testTable())
		require.NoError(t, err)
		assert.Equal(t, 110.00, got)
	})

	t.Run("Rounds half-up to two decimal places", func(t *testing.T) {
		// 10 * 0.1235 = 1.235 -> 1.24
		got, err := converter.Convert(10, "USD", "ABC", testTable())
		require.NoError(t, err)
		assert.Equal(t, 1.24, got)
	})

	t.Run("Zero amount rejected", func(t *testing.T) {
		_, err := converter.Convert(0, "USD", "NGN", testTable())
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Negative amount rejected", func(t *testing.T) {
		_, err := converter.Convert(-5, "USD", "NGN", testTable())
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Lenient mode treats missing code as rate 1", func(t *testing.T) {
		got, err := converter.Convert(50, "USD", "ZZZ", testTable())
		require.NoError(t, err)
		assert.Equal(t, 50.00, got)
	})

	t.Run("Strict mode rejects missing code", func(t *testing.T) {
		strict := NewConverter(true)
		_, err := strict.Convert(50, "USD", "ZZZ", testTable())
		assert.ErrorIs(t, err, ErrUnknownCurrency)
	})
}

func TestConvertFallbackTablePositive(t *testing.T) {
	converter := NewConverter(true)
	table := FallbackTable()

	for code := range SupportedCurrencies {
		got, err := converter.Convert(120.50, "USD", code, table)
		require.NoError(t, err, "conversion to %s", code)
		assert.Greater(t, got, 0.0, "conversion to %s", code)
	}
}

func TestRate(t *testing.T) {
	converter := NewConverter(false)

	t.Run("Same currency is always 1", func(t *testing.T) {
		rate, err := converter.Rate("NGN", "ngn", testTable())
		require.NoError(t, err)
		assert.Equal(t, 1.0, rate)
	})

	t.Run("Cross rate rounded to four decimals", func(t *testing.T) {
		// 110 / 750 = 0.14666... -> 0.1467
		rate, err := converter.Rate("NGN", "KES", testTable())
		require.NoError(t, err)
		assert.Equal(t, 0.1467, rate)
	})
}
