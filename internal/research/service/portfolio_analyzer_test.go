package service

import (
	"testing"

	"stock-research-service/internal/research/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSectorRepo serves a fixed ticker map and benchmark.
type stubSectorRepo struct {
	sectors    map[string]string
	benchmarks map[string]float64
	order      []string
}

func newStubSectorRepo() *stubSectorRepo {
	return &stubSectorRepo{
		sectors: map[string]string{
			"AAPL": "Technology",
			"MSFT": "Technology",
			"NVDA": "Technology",
			"JPM":  "Financials",
			"LLY":  "Healthcare",
			"XOM":  "Energy",
			"GLD":  "Materials",
			"IBIT": "Financials",
		},
		benchmarks: map[string]float64{
			"Technology": 29.0,
			"Healthcare": 13.0,
			"Financials": 13.0,
			"Energy":     4.0,
			"Materials":  2.5,
		},
		order: []string{"Technology", "Healthcare", "Financials", "Energy", "Materials"},
	}
}

func (r *stubSectorRepo) SectorOf(ticker string) string {
	if sector, ok := r.sectors[ticker]; ok {
		return sector
	}
	return "Technology"
}

func (r *stubSectorRepo) Sectors() []string { return r.order }

func (r *stubSectorRepo) BenchmarkWeight(sector string) float64 { return r.benchmarks[sector] }

func (r *stubSectorRepo) BenchmarkWeights() map[string]float64 { return r.benchmarks }

func TestAnalyzeValidatesHoldings(t *testing.T) {
	tests := []struct {
		name     string
		holdings dto.PortfolioHoldings
	}{
		{"empty holdings", dto.PortfolioHoldings{}},
		{"empty ticker", dto.PortfolioHoldings{"": 50}},
		{"zero weight", dto.PortfolioHoldings{"AAPL": 0}},
		{"negative weight", dto.PortfolioHoldings{"AAPL": -10}},
	}

	analyzer := NewPortfolioAnalyzer(newStubSectorRepo())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Analyze(tt.holdings)
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestAnalyzeSectorExposure(t *testing.T) {
	analyzer := NewPortfolioAnalyzer(newStubSectorRepo())
	analysis, err := analyzer.Analyze(dto.PortfolioHoldings{
		"AAPL": 30, "MSFT": 25, "NVDA": 15, "JPM": 20, "XOM": 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, analysis.TotalPositions)
	assert.InDelta(t, 70.0, analysis.SectorExposure["Technology"], 0.001)
	assert.InDelta(t, 20.0, analysis.SectorExposure["Financials"], 0.001)
	assert.InDelta(t, 10.0, analysis.SectorExposure["Energy"], 0.001)
}

func TestAnalyzeFindsOpportunitiesSortedByGap(t *testing.T) {
	analyzer := NewPortfolioAnalyzer(newStubSectorRepo())
	analysis, err := analyzer.Analyze(dto.PortfolioHoldings{
		"AAPL": 55, "MSFT": 40, "JPM": 5,
	})
	require.NoError(t, err)

	require.Len(t, analysis.Opportunities, 3)
	first := analysis.Opportunities[0]
	assert.Equal(t, "Healthcare", first.Sector)
	assert.InDelta(t, 13.0, first.Gap, 0.001)
	assert.Equal(t, "high", first.Priority)
	assert.Equal(t, "Critical gap: Healthcare exposure is significantly below market benchmark", first.Reason)

	second := analysis.Opportunities[1]
	assert.Equal(t, "Financials", second.Sector)
	assert.InDelta(t, 8.0, second.Gap, 0.001)
	assert.Equal(t, "medium", second.Priority)
	assert.Equal(t, "Major opportunity: Adding Financials would improve diversification", second.Reason)

	third := analysis.Opportunities[2]
	assert.Equal(t, "Energy", third.Sector)
	assert.Equal(t, "medium", third.Priority)
	assert.Equal(t, "Moderate gap: Consider small Energy allocation for balance", third.Reason)
}

func TestAnalyzeWeightStatuses(t *testing.T) {
	analyzer := NewPortfolioAnalyzer(newStubSectorRepo())
	analysis, err := analyzer.Analyze(dto.PortfolioHoldings{
		"AAPL": 45, "JPM": 15, "XOM": 5, "GLD": 1,
	})
	require.NoError(t, err)

	statuses := make(map[string]string)
	for _, w := range analysis.WeightAnalysis {
		statuses[w.Sector] = w.Status
	}

	assert.Equal(t, dto.WeightHeavilyOverweight, statuses["Technology"])
	assert.Equal(t, dto.WeightMissing, statuses["Healthcare"])
	assert.Equal(t, dto.WeightBalanced, statuses["Financials"])
	assert.Equal(t, dto.WeightBalanced, statuses["Energy"])
	assert.Equal(t, dto.WeightBalanced, statuses["Materials"])
}

func TestAnalyzeThemes(t *testing.T) {
	analyzer := NewPortfolioAnalyzer(newStubSectorRepo())
	analysis, err := analyzer.Analyze(dto.PortfolioHoldings{
		"AAPL": 30, "MSFT": 20, "GLD": 10, "IBIT": 10, "LLY": 30,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, analysis.Themes["Technology Exposure"])
	assert.Equal(t, []string{"GLD"}, analysis.Themes["Commodities & Precious Metals"])
	assert.Equal(t, []string{"IBIT"}, analysis.Themes["Crypto/Bitcoin Exposure"])
	assert.Equal(t, []string{"AAPL", "MSFT"}, analysis.Themes["Mega-Cap Tech"])
	assert.Equal(t, []string{"LLY"}, analysis.Themes["Healthcare Exposure"])
}

func TestConcentrationRisk(t *testing.T) {
	tests := []struct {
		name     string
		holdings dto.PortfolioHoldings
		expected string
	}{
		{
			name:     "very high concentration",
			holdings: dto.PortfolioHoldings{"AAPL": 50, "MSFT": 30, "NVDA": 20},
			expected: "VERY HIGH - Top 3 holdings exceed 70%",
		},
		{
			name:     "high concentration",
			holdings: dto.PortfolioHoldings{"AAPL": 25, "MSFT": 20, "NVDA": 15, "JPM": 5},
			expected: "HIGH - Top 3 holdings exceed 50%",
		},
		{
			name:     "moderate concentration",
			holdings: dto.PortfolioHoldings{"AAPL": 15, "MSFT": 12, "NVDA": 10, "JPM": 8, "XOM": 5},
			expected: "MODERATE - Top 3 holdings exceed 35%",
		},
		{
			name:     "well diversified",
			holdings: dto.PortfolioHoldings{"AAPL": 10, "MSFT": 10, "NVDA": 10, "JPM": 10, "XOM": 10},
			expected: "LOW - Well diversified",
		},
	}

	analyzer := NewPortfolioAnalyzer(newStubSectorRepo())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := analyzer.Analyze(tt.holdings)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, analysis.ConcentrationRisk)
		})
	}
}
