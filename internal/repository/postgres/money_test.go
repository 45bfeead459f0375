package postgres

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericStringToCents(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"whole units", "100", 10000},
		{"units and cents", "125.50", 12550},
		{"cents only", "0.01", 1},
		{"single decimal digit", "10.5", 1050},
		{"zero", "0.00", 0},
		{"whitespace trimmed", "  50.25 ", 5025},
		{"negative", "-10.50", -1050},
		{"explicit plus", "+3.00", 300},
		// Exceeds float64's exact integer range; float parsing would
		// come back one cent off.
		{"beyond float precision", "92233720368547757.07", math.MaxInt64 - 100},
		{"max cents", "92233720368547758.07", math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := numericStringToCents(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNumericStringToCents_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"-",
		"abc",
		"10.5.5",
		"€100",
		"1,000.00",
		// Sub-cent digits are never rounded away.
		"99.999",
		// One cent past MaxInt64.
		"92233720368547758.08",
	}
	for _, input := range inputs {
		_, err := numericStringToCents(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestCentsToNumericString(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{10000, "100.00"},
		{12550, "125.50"},
		{1, "0.01"},
		{10, "0.10"},
		{0, "0.00"},
		{-1050, "-10.50"},
		{-1, "-0.01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, centsToNumericString(tt.input))
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 10000, 999999999999, math.MaxInt64 - 7, -12345} {
		str := centsToNumericString(cents)
		back, err := numericStringToCents(str)
		require.NoError(t, err)
		assert.Equal(t, cents, back, "via %s", str)
	}
}
