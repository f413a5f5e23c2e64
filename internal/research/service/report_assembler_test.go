package service

import (
	"testing"

	"stock-research-service/internal/research/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionForConviction(t *testing.T) {
	tests := []struct {
		conviction int
		expected   string
	}{
		{10, dto.ActionStrongBuy},
		{8, dto.ActionStrongBuy},
		{7, dto.ActionBuy},
		{6, dto.ActionHold},
		{4, dto.ActionHold},
		{3, dto.ActionSell},
		{2, dto.ActionSell},
		{1, dto.ActionStrongSell},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, actionForConviction(tt.conviction), "conviction %d", tt.conviction)
	}
}

func TestAssembleReport(t *testing.T) {
	assembler := NewReportAssembler()
	bundle := bundleWith("ACME", priceSignal(200, 1.2))
	debate := &dto.DebateResult{
		Winner:          dto.SideBull,
		Confidence:      82,
		WinningArgument: "Category leadership with expanding margins",
	}
	scores := dto.SpecialistScores{Fundamental: 7.5, Technical: 6.0, Sentiment: 8.2}
	bull := dto.Case{Side: dto.SideBull, Text: "bull case"}
	bear := dto.Case{Side: dto.SideBear, Text: "bear case"}
	risk := dto.RiskAssessment{ValuationRisk: dto.RiskMedium, VolatilityRisk: dto.RiskLow, MarketRisk: dto.RiskLow}

	report := assembler.Assemble("ACME", dto.ModeStandard, bundle, scores, bull, bear, debate, 8, risk)

	require.NotNil(t, report)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "ACME", report.Ticker)
	assert.Equal(t, dto.ModeStandard, report.Mode)
	assert.Equal(t, dto.ActionStrongBuy, report.Action)
	assert.Equal(t, 8, report.Conviction)
	assert.Equal(t, 200.0, report.CurrentPrice)
	assert.Equal(t, 250.0, report.TargetPrice)
	assert.Equal(t, 25.0, report.UpsidePct)
	assert.Equal(t, "Category leadership with expanding margins", report.Headline)
	assert.Equal(t, bull, report.BullCase)
	assert.Equal(t, bear, report.BearCase)
	assert.Equal(t, scores, report.Scores)
	assert.Equal(t, risk, report.Risk)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestAssembleTargetPriceByAction(t *testing.T) {
	tests := []struct {
		name       string
		conviction int
		wantTarget float64
		wantUpside float64
	}{
		{"buy projects upside", 7, 125.0, 25.0},
		{"hold projects drift", 5, 105.0, 5.0},
		{"sell projects downside", 3, 85.0, -15.0},
	}

	assembler := NewReportAssembler()
	debate := &dto.DebateResult{Winner: dto.SideBull, Confidence: 50}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := bundleWith("ACME", priceSignal(100, 0))
			report := assembler.Assemble("ACME", dto.ModeQuick, bundle, dto.SpecialistScores{},
				dto.Case{}, dto.Case{}, debate, tt.conviction, dto.RiskAssessment{})
			assert.Equal(t, tt.wantTarget, report.TargetPrice)
			assert.Equal(t, tt.wantUpside, report.UpsidePct)
		})
	}
}

func TestAssembleWithoutPriceSignal(t *testing.T) {
	assembler := NewReportAssembler()
	debate := &dto.DebateResult{Winner: dto.SideBear, Confidence: 70}
	report := assembler.Assemble("ACME", dto.ModeQuick, bundleWith("ACME"), dto.SpecialistScores{},
		dto.Case{}, dto.Case{}, debate, 3, dto.RiskAssessment{})

	assert.Equal(t, 0.0, report.CurrentPrice)
	assert.Equal(t, 0.0, report.TargetPrice)
	assert.Equal(t, 0.0, report.UpsidePct)
	assert.Equal(t, dto.ActionSell, report.Action)
}
