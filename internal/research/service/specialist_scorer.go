package service

import (
	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/utils"
)

// SpecialistScorer turns raw signals into per-dimension 0..10 scores.
// All scoring is pure; the same bundle always yields the same scores.
type SpecialistScorer interface {
	Score(bundle *dto.SignalBundle) dto.SpecialistScores
}

type specialistScorer struct{}

// NewSpecialistScorer creates the scorer.
func NewSpecialistScorer() SpecialistScorer {
	return specialistScorer{}
}

func (s specialistScorer) Score(bundle *dto.SignalBundle) dto.SpecialistScores {
	return dto.SpecialistScores{
		Fundamental: scoreFundamental(bundle),
		Technical:   scoreTechnical(bundle),
		Sentiment:   scoreSentimentSignals(bundle),
	}
}

// scoreFundamental starts neutral and adjusts on margin, growth,
// profitability, valuation and leverage. Missing financials stay neutral.
func scoreFundamental(bundle *dto.SignalBundle) float64 {
	result, ok := bundle.Payload(dto.SignalFinancials)
	if !ok {
		return 5.0
	}
	f := result.Financials

	score := 5.0
	if f.ProfitMargin > 15 {
		score += 1
	}
	if f.RevenueGrowth > 20 {
		score += 1
	}
	if f.EPS > 0 {
		score += 0.5
	}
	if f.PERatio > 40 {
		score -= 1
	}
	if f.DebtToEquity > 2 {
		score -= 0.5
	}
	return utils.Clamp(score, 0, 10)
}

// scoreTechnical is a mildly positive placeholder until chart analysis
// lands.
func scoreTechnical(_ *dto.SignalBundle) float64 {
	return 6.0
}

// scoreSentimentSignals blends social sentiment with institutional flow.
func scoreSentimentSignals(bundle *dto.SignalBundle) float64 {
	score := 5.0

	if result, ok := bundle.Payload(dto.SignalReddit); ok {
		score += (result.Sentiment.Score - 0.5) * 4
	}
	if result, ok := bundle.Payload(dto.SignalTwitter); ok {
		score += (result.Sentiment.Score - 0.5) * 4
	}
	if result, ok := bundle.Payload(dto.SignalInstitutional); ok {
		switch result.Institutional.ActivityLevel {
		case dto.ActivityStrongBuying:
			score += 2
		case dto.ActivityNetBuying:
			score += 1
		case dto.ActivityNetSelling:
			score -= 1
		case dto.ActivityStrongSelling:
			score -= 2
		}
	}
	return utils.Clamp(score, 0, 10)
}
