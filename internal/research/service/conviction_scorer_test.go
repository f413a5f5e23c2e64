package service

import (
	"testing"

	"stock-research-service/internal/research/dto"

	"github.com/stretchr/testify/assert"
)

func TestConvictionScore(t *testing.T) {
	tests := []struct {
		name     string
		debate   dto.DebateResult
		signals  []dto.SignalResult
		expected int
	}{
		{
			name:     "bull win from confidence alone",
			debate:   dto.DebateResult{Winner: dto.SideBull, Confidence: 70},
			expected: 7,
		},
		{
			name:   "reddit euphoria boosts",
			debate: dto.DebateResult{Winner: dto.SideBull, Confidence: 70},
			signals: []dto.SignalResult{
				sentimentSignal(dto.SignalReddit, 0.8),
			},
			expected: 8,
		},
		{
			name:   "strong institutional buying and bullish options",
			debate: dto.DebateResult{Winner: dto.SideBull, Confidence: 60},
			signals: []dto.SignalResult{
				institutionalSignal(dto.ActivityStrongBuying),
				optionsSignal(true, dto.BiasBullish),
			},
			expected: 8,
		},
		{
			name:   "bear win inverts the scale",
			debate: dto.DebateResult{Winner: dto.SideBear, Confidence: 80},
			signals: []dto.SignalResult{
				sentimentSignal(dto.SignalReddit, 0.1),
			},
			expected: 3,
		},
		{
			name:     "clamped to one at the bottom",
			debate:   dto.DebateResult{Winner: dto.SideBear, Confidence: 100},
			expected: 1,
		},
		{
			name:   "clamped to ten at the top",
			debate: dto.DebateResult{Winner: dto.SideBull, Confidence: 100},
			signals: []dto.SignalResult{
				sentimentSignal(dto.SignalReddit, 0.9),
				institutionalSignal(dto.ActivityStrongBuying),
				optionsSignal(true, dto.BiasBullish),
			},
			expected: 10,
		},
		{
			name:   "undetected options flow is ignored",
			debate: dto.DebateResult{Winner: dto.SideBull, Confidence: 50},
			signals: []dto.SignalResult{
				optionsSignal(false, dto.BiasBearish),
			},
			expected: 5,
		},
		{
			name:   "strong selling drags a bull win down",
			debate: dto.DebateResult{Winner: dto.SideBull, Confidence: 65},
			signals: []dto.SignalResult{
				institutionalSignal(dto.ActivityStrongSelling),
			},
			expected: 5,
		},
	}

	scorer := NewConvictionScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conviction := scorer.Score(&tt.debate, bundleWith("ACME", tt.signals...))
			assert.Equal(t, tt.expected, conviction)
		})
	}
}
