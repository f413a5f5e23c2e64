package service

import (
	"time"

	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/utils"

	"github.com/google/uuid"
)

// ReportAssembler folds every stage's output into the final report.
type ReportAssembler interface {
	Assemble(ticker string, mode dto.ResearchMode, bundle *dto.SignalBundle,
		scores dto.SpecialistScores, bullCase, bearCase dto.Case,
		debate *dto.DebateResult, conviction int, risk dto.RiskAssessment) *dto.ResearchReport
}

type reportAssembler struct{}

// NewReportAssembler creates the assembler.
func NewReportAssembler() ReportAssembler {
	return reportAssembler{}
}

// actionForConviction maps conviction to the recommended action.
func actionForConviction(conviction int) string {
	switch {
	case conviction >= 8:
		return dto.ActionStrongBuy
	case conviction >= 7:
		return dto.ActionBuy
	case conviction >= 4:
		return dto.ActionHold
	case conviction >= 2:
		return dto.ActionSell
	default:
		return dto.ActionStrongSell
	}
}

// targetMultiplier is a flat placeholder until price modeling lands: buys
// project 25% upside, holds 5%, sells 15% downside.
func targetMultiplier(action string) float64 {
	switch action {
	case dto.ActionStrongBuy, dto.ActionBuy:
		return 1.25
	case dto.ActionHold:
		return 1.05
	default:
		return 0.85
	}
}

func (reportAssembler) Assemble(ticker string, mode dto.ResearchMode, bundle *dto.SignalBundle,
	scores dto.SpecialistScores, bullCase, bearCase dto.Case,
	debate *dto.DebateResult, conviction int, risk dto.RiskAssessment) *dto.ResearchReport {

	action := actionForConviction(conviction)

	currentPrice := 0.0
	if result, ok := bundle.Payload(dto.SignalPrice); ok {
		currentPrice = result.Price.Price
	}

	targetPrice := utils.RoundTo(currentPrice*targetMultiplier(action), 2)
	upside := 0.0
	if currentPrice > 0 {
		upside = utils.RoundTo((targetPrice-currentPrice)/currentPrice*100, 2)
	}

	return &dto.ResearchReport{
		ID:           uuid.NewString(),
		Ticker:       ticker,
		Mode:         mode,
		Action:       action,
		Conviction:   conviction,
		CurrentPrice: currentPrice,
		TargetPrice:  targetPrice,
		UpsidePct:    upside,
		Headline:     debate.WinningArgument,
		BullCase:     bullCase,
		BearCase:     bearCase,
		Debate:       *debate,
		Scores:       scores,
		Risk:         risk,
		Signals:      *bundle,
		GeneratedAt:  time.Now().UTC(),
	}
}
