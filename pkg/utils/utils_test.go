package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "already cents", amount: "33.33", expected: "33.33"},
		{name: "half rounds up", amount: "0.125", expected: "0.13"},
		{name: "below half rounds down", amount: "33.3333", expected: "33.33"},
		{name: "whole number", amount: "800", expected: "800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundCurrency(decimal.RequireFromString(tt.amount))
			assert.True(t, result.Equal(decimal.RequireFromString(tt.expected)),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestHasCentPrecision(t *testing.T) {
	assert.True(t, HasCentPrecision(decimal.RequireFromString("100")))
	assert.True(t, HasCentPrecision(decimal.RequireFromString("100.1")))
	assert.True(t, HasCentPrecision(decimal.RequireFromString("100.99")))
	assert.True(t, HasCentPrecision(decimal.RequireFromString("100.100")))
	assert.False(t, HasCentPrecision(decimal.RequireFromString("100.001")))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "same month",
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "day of month ignored",
			start:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "across years",
			start:    time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			expected: 17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetween(tt.start, tt.end))
		})
	}
}

func TestCalculateDueDate(t *testing.T) {
	baseDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, baseDate, CalculateDueDate(baseDate, 0, 1))
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), CalculateDueDate(baseDate, 1, 1))
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), CalculateDueDate(baseDate, 2, 3))
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), CalculateDueDate(baseDate, 2, 12))
}

func TestParseDate(t *testing.T) {
	for _, value := range []string{"2024-03-01", "2024-03-01T10:30:00Z", "2024-03-01T10:30:00"} {
		parsed, err := ParseDate(value)
		require.NoError(t, err, value)
		assert.Equal(t, 2024, parsed.Year())
		assert.Equal(t, time.March, parsed.Month())
		assert.Equal(t, 1, parsed.Day())
	}

	_, err := ParseDate("first of march")
	assert.Error(t, err)
}

func TestIsDateOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	assert.True(t, IsDateOverdue(time.Date(2024, 5, 9, 23, 59, 0, 0, time.UTC), now))
	assert.False(t, IsDateOverdue(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDateOverdue(time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), now))
}

func TestDecimalFromString(t *testing.T) {
	value, err := DecimalFromString(" 1000.50\n")
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("1000.50")))

	_, err = DecimalFromString("ten")
	assert.Error(t, err)
}
