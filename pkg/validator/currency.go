package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyCurrency indicates the currency code is empty
	ErrEmptyCurrency = errors.New("currency code cannot be empty")

	// ErrInvalidCurrencyFormat indicates the code is not three letters
	ErrInvalidCurrencyFormat = errors.New("currency code must be a three-letter ISO 4217 code")
)

// currencyRegex matches exactly three ASCII letters
var currencyRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)

// CurrencyValidator handles ISO 4217 currency code validation
type CurrencyValidator struct{}

// NewCurrencyValidator creates a new currency validator instance
func NewCurrencyValidator() *CurrencyValidator {
	return &CurrencyValidator{}
}

// Validate validates a currency code.
// Accepts any casing and surrounding whitespace, returns the normalized
// uppercase code and an error if invalid.
func (v *CurrencyValidator) Validate(code string) (string, error) {
	sanitized := strings.TrimSpace(code)
	if sanitized == "" {
		return "", ErrEmptyCurrency
	}

	if !currencyRegex.MatchString(sanitized) {
		return "", ErrInvalidCurrencyFormat
	}

	return strings.ToUpper(sanitized), nil
}
