package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when a non-positive amount is passed to Convert
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrUnknownCurrency is returned in strict mode when a currency code is
	// missing from the rate table
	ErrUnknownCurrency = errors.New("unknown currency code")
)

// Converter converts monetary amounts between currencies using a RateTable.
//
// In the default lenient mode a code missing from the table behaves as rate
// 1.0, so a listing degrades to an approximate conversion instead of failing.
// Strict mode rejects missing codes with ErrUnknownCurrency.
type Converter struct {
	Strict bool
}

// NewConverter creates a converter with the given missing-code policy
func NewConverter(strict bool) *Converter {
	return &Converter{Strict: strict}
}

// Convert converts amount from one currency to another, rounded half-up to
// two decimal places. Identity conversions return the amount unchanged.
func (c *Converter) Convert(amount float64, from, to string, table RateTable) (float64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	fromCode := strings.ToUpper(strings.TrimSpace(from))
	toCode := strings.ToUpper(strings.TrimSpace(to))
	if fromCode == toCode {
		return amount, nil
	}

	fromRate, err := c.lookup(fromCode, table)
	if err != nil {
		return 0, err
	}
	toRate, err := c.lookup(toCode, table)
	if err != nil {
		return 0, err
	}

	converted := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(toRate)).
		Div(decimal.NewFromFloat(fromRate)).
		Round(2)

	return converted.InexactFloat64(), nil
}

// Rate returns the effective from->to rate, rounded to four decimal places
func (c *Converter) Rate(from, to string, table RateTable) (float64, error) {
	fromCode := strings.ToUpper(strings.TrimSpace(from))
	toCode := strings.ToUpper(strings.TrimSpace(to))
	if fromCode == toCode {
		return 1, nil
	}

	fromRate, err := c.lookup(fromCode, table)
	if err != nil {
		return 0, err
	}
	toRate, err := c.lookup(toCode, table)
	if err != nil {
		return 0, err
	}

	rate := decimal.NewFromFloat(toRate).
		Div(decimal.NewFromFloat(fromRate)).
		Round(4)
	return rate.InexactFloat64(), nil
}

// lookup resolves a code against the table, applying the missing-code policy
func (c *Converter) lookup(code string, table RateTable) (float64, error) {
	if rate, ok := table.Rate(code); ok {
		return rate, nil
	}
	if c.Strict {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return 1.0, nil
}
