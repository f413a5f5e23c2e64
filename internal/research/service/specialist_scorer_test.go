package service

import (
	"testing"

	"stock-research-service/internal/research/dto"

	"github.com/stretchr/testify/assert"
)

func TestScoreFundamental(t *testing.T) {
	tests := []struct {
		name     string
		metrics  *dto.FinancialMetrics
		expected float64
	}{
		{
			name:     "missing financials stays neutral",
			metrics:  nil,
			expected: 5.0,
		},
		{
			name: "strong margins growth and profitability",
			metrics: &dto.FinancialMetrics{
				ProfitMargin:  22,
				RevenueGrowth: 35,
				EPS:           2.5,
				PERatio:       28,
				DebtToEquity:  0.8,
			},
			expected: 7.5,
		},
		{
			name: "expensive and levered",
			metrics: &dto.FinancialMetrics{
				ProfitMargin:  5,
				RevenueGrowth: 3,
				EPS:           -1.2,
				PERatio:       85,
				DebtToEquity:  3.1,
			},
			expected: 3.5,
		},
		{
			name: "everything positive and nothing penalized",
			metrics: &dto.FinancialMetrics{
				ProfitMargin:  30,
				RevenueGrowth: 40,
				EPS:           5,
				PERatio:       20,
				DebtToEquity:  0.5,
			},
			expected: 7.5,
		},
		{
			name:     "zero metrics stay near neutral",
			metrics:  &dto.FinancialMetrics{},
			expected: 5.0,
		},
	}

	scorer := NewSpecialistScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := bundleWith("ACME")
			if tt.metrics != nil {
				bundle = bundleWith("ACME", financialsSignal(*tt.metrics))
			}
			scores := scorer.Score(bundle)
			assert.InDelta(t, tt.expected, scores.Fundamental, 0.001)
		})
	}
}

func TestScoreTechnicalIsConstant(t *testing.T) {
	scorer := NewSpecialistScorer()
	scores := scorer.Score(bundleWith("ACME", priceSignal(120, 1.0)))
	assert.Equal(t, 6.0, scores.Technical)
}

func TestScoreSentimentSignals(t *testing.T) {
	tests := []struct {
		name     string
		results  []dto.SignalResult
		expected float64
	}{
		{
			name:     "no sentiment signals is neutral",
			results:  nil,
			expected: 5.0,
		},
		{
			name: "very bullish social plus strong institutional buying",
			results: []dto.SignalResult{
				sentimentSignal(dto.SignalReddit, 0.9),
				sentimentSignal(dto.SignalTwitter, 0.8),
				institutionalSignal(dto.ActivityStrongBuying),
			},
			expected: 9.8,
		},
		{
			name: "bearish social clamps at zero",
			results: []dto.SignalResult{
				sentimentSignal(dto.SignalReddit, 0.05),
				sentimentSignal(dto.SignalTwitter, 0.1),
				institutionalSignal(dto.ActivityStrongSelling),
			},
			expected: 0.0,
		},
		{
			name: "net selling drags neutral social down",
			results: []dto.SignalResult{
				sentimentSignal(dto.SignalReddit, 0.5),
				institutionalSignal(dto.ActivityNetSelling),
			},
			expected: 4.0,
		},
		{
			name: "failed sentiment signal is skipped",
			results: []dto.SignalResult{
				{Kind: dto.SignalReddit, Error: "search unavailable"},
				institutionalSignal(dto.ActivityNetBuying),
			},
			expected: 6.0,
		},
	}

	scorer := NewSpecialistScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := scorer.Score(bundleWith("ACME", tt.results...))
			assert.InDelta(t, tt.expected, scores.Sentiment, 0.001)
		})
	}
}
