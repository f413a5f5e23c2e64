package service

import (
	"math"

	"stock-research-service/internal/research/dto"
)

// ConvictionScorer derives the final 1..10 conviction from the debate
// outcome and the gathered signals.
type ConvictionScorer interface {
	Score(debate *dto.DebateResult, bundle *dto.SignalBundle) int
}

type convictionScorer struct{}

// NewConvictionScorer creates the scorer.
func NewConvictionScorer() ConvictionScorer {
	return convictionScorer{}
}

// Score starts from the judge's confidence, applies signal boosts, and
// inverts the scale for a bear win so 10 always means maximum conviction
// in the recommended direction.
func (convictionScorer) Score(debate *dto.DebateResult, bundle *dto.SignalBundle) int {
	base := float64(debate.Confidence) / 10.0
	boost := 0.0

	if result, ok := bundle.Payload(dto.SignalReddit); ok {
		if result.Sentiment.Score > 0.75 {
			boost += 1
		} else if result.Sentiment.Score < 0.25 {
			boost -= 1
		}
	}
	if result, ok := bundle.Payload(dto.SignalInstitutional); ok {
		switch result.Institutional.ActivityLevel {
		case dto.ActivityStrongBuying:
			boost += 1.5
		case dto.ActivityStrongSelling:
			boost -= 1.5
		}
	}
	if result, ok := bundle.Payload(dto.SignalOptions); ok && result.Options.Detected {
		switch result.Options.Bias {
		case dto.BiasBullish:
			boost += 0.5
		case dto.BiasBearish:
			boost -= 0.5
		}
	}

	raw := base + boost
	if debate.Winner == dto.SideBear {
		raw = 10 - raw
	}

	conviction := int(math.Round(raw))
	if conviction < 1 {
		conviction = 1
	}
	if conviction > 10 {
		conviction = 10
	}
	return conviction
}
