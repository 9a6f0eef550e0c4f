package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyValidator(t *testing.T) {
	v := NewCurrencyValidator()

	tests := []struct {
		name        string
		input       string
		expected    string
		expectedErr error
	}{
		{
			name:     "Uppercase code",
			input:    "USD",
			expected: "USD",
		},
		{
			name:     "Lowercase code",
			input:    "ngn",
			expected: "NGN",
		},
		{
			name:     "Mixed case with whitespace",
			input:    " Zar ",
			expected: "ZAR",
		},
		{
			name:        "Empty",
			input:       "",
			expectedErr: ErrEmptyCurrency,
		},
		{
			name:        "Whitespace only",
			input:       "   ",
			expectedErr: ErrEmptyCurrency,
		},
		{
			name:        "Too short",
			input:       "US",
			expectedErr: ErrInvalidCurrencyFormat,
		},
		{
			name:        "Too long",
			input:       "USDT",
			expectedErr: ErrInvalidCurrencyFormat,
		},
		{
			name:        "Contains digits",
			input:       "U5D",
			expectedErr: ErrInvalidCurrencyFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.input)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
