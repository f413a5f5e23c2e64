package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickersBySector(t *testing.T) {
	repo := NewUniverseRepository()

	healthcare := repo.TickersBySector("Healthcare")
	assert.Len(t, healthcare, 10)
	assert.Contains(t, healthcare, "LLY")
	assert.Contains(t, healthcare, "UNH")

	assert.Empty(t, repo.TickersBySector("Not A Sector"))

	// Mutating the returned slice must not affect later reads.
	energy := repo.TickersBySector("Energy")
	energy[0] = "HACKED"
	assert.Equal(t, "XOM", repo.TickersBySector("Energy")[0])
}

func TestDefaultTicker(t *testing.T) {
	repo := NewUniverseRepository()

	tests := []struct {
		sector   string
		expected string
	}{
		{"Healthcare", "LLY"},
		{"Financials", "JPM"},
		{"Technology", "MSFT"},
		{"Consumer Staples", "PG"},
		{"Industrials", "CAT"},
		{"Utilities", "MSFT"},
		{"", "MSFT"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, repo.DefaultTicker(tt.sector), "sector %q", tt.sector)
	}
}
