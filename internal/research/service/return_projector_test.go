package service

import (
	"context"
	"errors"
	"testing"

	"stock-research-service/internal/research/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMarketData serves fixed prices and fails for unknown tickers.
type stubMarketData struct {
	prices map[string]float64
}

func (m *stubMarketData) Kind() dto.SignalKind { return dto.SignalPrice }

func (m *stubMarketData) Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error) {
	snapshot, err := m.GetSnapshot(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return &dto.SignalResult{Kind: dto.SignalPrice, Price: snapshot}, nil
}

func (m *stubMarketData) GetSnapshot(_ context.Context, ticker string) (*dto.PriceSnapshot, error) {
	price, ok := m.prices[ticker]
	if !ok {
		return nil, errors.New("no quote")
	}
	return &dto.PriceSnapshot{Price: price}, nil
}

func TestRecommendedAllocation(t *testing.T) {
	tests := []struct {
		name       string
		tolerance  dto.RiskTolerance
		conviction int
		expected   float64
	}{
		{"conservative low conviction clamps to floor", dto.RiskToleranceConservative, 1, 3.8},
		{"moderate mid conviction", dto.RiskToleranceModerate, 5, 8.0},
		{"aggressive max conviction clamps to ceiling", dto.RiskToleranceAggressive, 10, 15.0},
		{"aggressive mid conviction", dto.RiskToleranceAggressive, 5, 12.0},
		{"unknown tolerance defaults to moderate", dto.RiskTolerance("reckless"), 10, 10.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, recommendedAllocation(tt.tolerance, tt.conviction), 0.001)
		})
	}
}

func TestGenerateDCASchedule(t *testing.T) {
	schedule := generateDCASchedule(10000, 4)
	require.Len(t, schedule, 4)
	for i, tranche := range schedule {
		assert.Equal(t, i+1, tranche.Week)
		assert.Equal(t, 2500.0, tranche.Amount)
		assert.Equal(t, 25.0, tranche.Percentage)
	}
}

func TestGenerateDCAScheduleDefaultsWeeks(t *testing.T) {
	schedule := generateDCASchedule(8000, 0)
	require.Len(t, schedule, 4)
	assert.Equal(t, 2000.0, schedule[0].Amount)
}

func TestProject(t *testing.T) {
	projector := NewReturnProjector(&stubMarketData{prices: map[string]float64{
		"AAPL": 200,
		"JPM":  150,
	}}, newTestLogger())

	research := &dto.ResearchReport{
		Ticker:       "LLY",
		Conviction:   10,
		CurrentPrice: 800,
		TargetPrice:  1000,
	}
	holdings := dto.PortfolioHoldings{"AAPL": 60, "JPM": 40}

	projection, err := projector.Project(context.Background(), holdings, research, dto.RiskToleranceModerate, 100000, 4)
	require.NoError(t, err)

	// Every existing holding projects to the flat 15% target.
	assert.InDelta(t, 15.0, projection.CurrentReturn, 0.01)
	assert.InDelta(t, 25.0, projection.NewStockReturn, 0.01)

	// Moderate at conviction 10 sizes the position at 10.4%.
	assert.InDelta(t, 10.4, projection.RecommendedAllocationPct, 0.001)
	assert.InDelta(t, 60*0.896, projection.NewWeights["AAPL"], 0.01)
	assert.InDelta(t, 10.4, projection.NewWeights["LLY"], 0.001)

	// 15% base drifts up because the new stock returns more.
	assert.InDelta(t, 16.04, projection.NewReturn, 0.01)
	assert.InDelta(t, 1.04, projection.Improvement, 0.01)
	assert.InDelta(t, 16.04, projection.ConvictionAdjustedReturn, 0.01)

	assert.Equal(t, 10400.0, projection.InvestmentAmount)
	require.Len(t, projection.Schedule, 4)
	assert.Equal(t, 2600.0, projection.Schedule[0].Amount)
	assert.Equal(t, "12 months", projection.Timeframe)
}

func TestProjectUsesFallbackPriceOnQuoteFailure(t *testing.T) {
	projector := NewReturnProjector(&stubMarketData{prices: map[string]float64{}}, newTestLogger())

	research := &dto.ResearchReport{Ticker: "LLY", Conviction: 5, CurrentPrice: 100, TargetPrice: 105}
	projection, err := projector.Project(context.Background(), dto.PortfolioHoldings{"ZZZZ": 100},
		research, dto.RiskToleranceConservative, 0, 0)
	require.NoError(t, err)

	// The fallback price still yields the flat 15% expected return.
	assert.InDelta(t, 15.0, projection.CurrentReturn, 0.01)

	// Portfolio value defaulted.
	allocation := projection.RecommendedAllocationPct
	assert.Equal(t, projection.InvestmentAmount, 100000*allocation/100)
}
