package service

import (
	"testing"

	"stock-research-service/internal/research/dto"

	"github.com/stretchr/testify/assert"
)

func TestJudgeVerdictParser(t *testing.T) {
	tests := []struct {
		name           string
		response       string
		wantWinner     dto.Side
		wantConfidence int
		wantArgument   string
		wantKeyPoints  []string
	}{
		{
			name: "clean labeled reply",
			response: "WINNER: bear\n" +
				"CONFIDENCE: 72\n" +
				"BEST_ARGUMENT: Valuation leaves no margin of safety\n" +
				"KEY_POINT_1: Revenue growth is decelerating\n" +
				"KEY_POINT_2: Insiders are selling\n" +
				"KEY_POINT_3: Multiple compression risk",
			wantWinner:     dto.SideBear,
			wantConfidence: 72,
			wantArgument:   "Valuation leaves no margin of safety",
			wantKeyPoints: []string{
				"Revenue growth is decelerating",
				"Insiders are selling",
				"Multiple compression risk",
			},
		},
		{
			name: "markdown decorated labels",
			response: "**WINNER:** BULL\n" +
				"## CONFIDENCE: 85 out of 100\n" +
				"*BEST_ARGUMENT:* Durable pricing power",
			wantWinner:     dto.SideBull,
			wantConfidence: 85,
			wantArgument:   "Durable pricing power",
		},
		{
			name:           "labels with spaces instead of underscores",
			response:       "Winner: The bear side\nConfidence: 60\nBest Argument: Slowing demand",
			wantWinner:     dto.SideBear,
			wantConfidence: 60,
			wantArgument:   "Slowing demand",
		},
		{
			name:           "bracketed values",
			response:       "WINNER: [bull]\nCONFIDENCE: [55]",
			wantWinner:     dto.SideBull,
			wantConfidence: 55,
		},
		{
			name:           "empty reply falls back to defaults",
			response:       "",
			wantWinner:     dto.SideBull,
			wantConfidence: 50,
		},
		{
			name:           "prose without labels falls back to defaults",
			response:       "The debate was close but ultimately inconclusive.",
			wantWinner:     dto.SideBull,
			wantConfidence: 50,
		},
		{
			name:           "confidence above range is clamped",
			response:       "WINNER: bear\nCONFIDENCE: 250",
			wantWinner:     dto.SideBear,
			wantConfidence: 100,
		},
		{
			name:           "percent suffix on confidence",
			response:       "WINNER: bull\nCONFIDENCE: 64%",
			wantWinner:     dto.SideBull,
			wantConfidence: 64,
		},
		{
			name:           "non numeric confidence keeps default",
			response:       "WINNER: bear\nCONFIDENCE: very high",
			wantWinner:     dto.SideBear,
			wantConfidence: 50,
		},
		{
			name:           "empty key points are dropped",
			response:       "WINNER: bull\nCONFIDENCE: 70\nKEY_POINT_1: Strong cash flow\nKEY_POINT_2:\nKEY_POINT_3:",
			wantWinner:     dto.SideBull,
			wantConfidence: 70,
			wantKeyPoints:  []string{"Strong cash flow"},
		},
	}

	parser := NewJudgeVerdictParser(newTestLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := parser.Parse("ACME", tt.response)
			assert.Equal(t, tt.wantWinner, verdict.Winner)
			assert.Equal(t, tt.wantConfidence, verdict.Confidence)
			assert.Equal(t, tt.wantArgument, verdict.WinningArgument)
			assert.Equal(t, tt.wantKeyPoints, verdict.KeyPoints)
		})
	}
}
