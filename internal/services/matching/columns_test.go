package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindColumn(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		fallback int
		rules    []Rule
		expected int
	}{
		{
			name:     "exact candidate wins",
			headers:  []string{"Store", "Date / Time", "Total Sales"},
			fallback: 0,
			rules:    []Rule{Exact("datetime", "date / time"), Contains("time", "date")},
			expected: 1,
		},
		{
			name:     "substring match when no exact candidate",
			headers:  []string{"Store", "Sale Timestamp Local"},
			fallback: 0,
			rules:    []Rule{Exact("datetime"), Contains("time", "date")},
			expected: 1,
		},
		{
			name:     "case and whitespace folded",
			headers:  []string{"  TOTAL  "},
			fallback: 0,
			rules:    []Rule{Exact("total")},
			expected: 0,
		},
		{
			name:     "first matching header wins even if a later one is a better name",
			headers:  []string{"created_time", "datetime"},
			fallback: 0,
			rules:    []Rule{Exact("datetime", "created_time")},
			expected: 0,
		},
		{
			name:     "positional fallback",
			headers:  []string{"A", "B"},
			fallback: 1,
			rules:    []Rule{Exact("total"), Contains("total", "sales")},
			expected: 1,
		},
		{
			name:     "out of range fallback clamps to first column",
			headers:  []string{"A"},
			fallback: 2,
			rules:    []Rule{Exact("quantity")},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindColumn(tt.headers, tt.fallback, tt.rules...))
		})
	}
}

func TestRules(t *testing.T) {
	exact := Exact("total", "amount")
	assert.True(t, exact("total"))
	assert.False(t, exact("grand total"))

	contains := Contains("total", "sales")
	assert.True(t, contains("grand total"))
	assert.True(t, contains("net sales"))
	assert.False(t, contains("revenue"))
}
