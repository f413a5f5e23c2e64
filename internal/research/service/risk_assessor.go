package service

import (
	"math"

	"stock-research-service/internal/research/dto"
)

// RiskAssessor grades valuation, volatility and market risk. Pure: no
// calls, no state.
type RiskAssessor interface {
	Assess(bundle *dto.SignalBundle, conviction int) dto.RiskAssessment
}

type riskAssessor struct{}

// NewRiskAssessor creates the assessor.
func NewRiskAssessor() RiskAssessor {
	return riskAssessor{}
}

func (riskAssessor) Assess(bundle *dto.SignalBundle, conviction int) dto.RiskAssessment {
	return dto.RiskAssessment{
		ValuationRisk:  valuationRisk(bundle),
		VolatilityRisk: volatilityRisk(bundle),
		MarketRisk:     marketRisk(conviction),
	}
}

// valuationRisk grades the P/E derived from the current price and
// annualized EPS. Quarterly EPS is annualized by multiplying by four.
// When EPS is unusable the reported ratio is used instead.
func valuationRisk(bundle *dto.SignalBundle) dto.RiskLevel {
	pe := 0.0

	priceResult, priceOK := bundle.Payload(dto.SignalPrice)
	finResult, finOK := bundle.Payload(dto.SignalFinancials)

	if priceOK && finOK && finResult.Financials.EPS > 0 {
		eps := finResult.Financials.EPS
		if finResult.Financials.EPSPeriod == "quarterly" {
			eps *= 4
		}
		pe = priceResult.Price.Price / eps
	} else if finOK {
		pe = finResult.Financials.PERatio
	}

	switch {
	case pe >= 100:
		return dto.RiskExtreme
	case pe > 50:
		return dto.RiskVeryHigh
	case pe > 30:
		return dto.RiskHigh
	case pe > 15:
		return dto.RiskMedium
	default:
		return dto.RiskLow
	}
}

// volatilityRisk grades the absolute day move.
func volatilityRisk(bundle *dto.SignalBundle) dto.RiskLevel {
	change := 0.0
	if result, ok := bundle.Payload(dto.SignalPrice); ok {
		change = math.Abs(result.Price.ChangePercent)
	}

	switch {
	case change > 5:
		return dto.RiskHigh
	case change > 2:
		return dto.RiskMedium
	default:
		return dto.RiskLow
	}
}

// marketRisk reads low conviction as a risky call.
func marketRisk(conviction int) dto.RiskLevel {
	switch {
	case conviction < 4:
		return dto.RiskHigh
	case conviction < 7:
		return dto.RiskMedium
	default:
		return dto.RiskLow
	}
}
