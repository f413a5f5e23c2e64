package service

import (
	"context"

	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/pkg/common"
	"stock-research-service/pkg/logger"
	"stock-research-service/pkg/utils"
)

// ReturnProjector models the portfolio's expected return before and after
// adding the recommended stock, and produces the DCA schedule.
type ReturnProjector interface {
	Project(ctx context.Context, holdings dto.PortfolioHoldings, research *dto.ResearchReport,
		riskTolerance dto.RiskTolerance, portfolioValue float64, weeks int) (*dto.Projection, error)
}

type returnProjector struct {
	marketData repository.MarketDataRepository
	logger     *logger.Logger
}

// NewReturnProjector creates the projector.
func NewReturnProjector(marketData repository.MarketDataRepository, log *logger.Logger) ReturnProjector {
	return &returnProjector{marketData: marketData, logger: log}
}

// Existing holdings are assumed to reach a flat 15% above today's price.
// The recommended stock uses its researched target instead.
const existingHoldingTargetMultiplier = 1.15

// fallbackPrice stands in when a quote cannot be fetched.
const fallbackPrice = 100.0

// recommendedAllocation sizes the new position from risk tolerance and
// conviction, clamped to 3..15 percent.
func recommendedAllocation(riskTolerance dto.RiskTolerance, conviction int) float64 {
	base := 8.0
	switch riskTolerance {
	case dto.RiskToleranceConservative:
		base = 5.0
	case dto.RiskToleranceModerate:
		base = 8.0
	case dto.RiskToleranceAggressive:
		base = 12.0
	}

	convictionFactor := 0.7 + (float64(conviction)/10)*0.6
	return utils.RoundTo(utils.Clamp(base*convictionFactor, 3.0, 15.0), 1)
}

// generateDCASchedule splits the investment into equal weekly tranches.
func generateDCASchedule(totalAmount float64, weeks int) []dto.DCATranche {
	if weeks <= 0 {
		weeks = common.DefaultDCAWeeks
	}
	amountPerWeek := utils.RoundTo(totalAmount/float64(weeks), 2)
	percentage := utils.RoundTo(100/float64(weeks), 1)

	schedule := make([]dto.DCATranche, 0, weeks)
	for week := 1; week <= weeks; week++ {
		schedule = append(schedule, dto.DCATranche{
			Week:       week,
			Amount:     amountPerWeek,
			Percentage: percentage,
		})
	}
	return schedule
}

func (p *returnProjector) Project(ctx context.Context, holdings dto.PortfolioHoldings, research *dto.ResearchReport,
	riskTolerance dto.RiskTolerance, portfolioValue float64, weeks int) (*dto.Projection, error) {

	if portfolioValue <= 0 {
		portfolioValue = common.DefaultPortfolioValue
	}

	allocation := recommendedAllocation(riskTolerance, research.Conviction)

	// Expected per-holding returns, existing positions toward the flat
	// target multiplier.
	returns := make(map[string]float64, len(holdings)+1)
	for ticker := range holdings {
		current := p.fetchPrice(ctx, ticker)
		target := current * existingHoldingTargetMultiplier
		returns[ticker] = (target - current) / current * 100
	}

	newStock := research.Ticker
	newStockReturn := 0.0
	if research.CurrentPrice > 0 {
		newStockReturn = (research.TargetPrice - research.CurrentPrice) / research.CurrentPrice * 100
	}
	returns[newStock] = newStockReturn

	currentReturn := 0.0
	for ticker, weight := range holdings {
		currentReturn += (weight / 100) * returns[ticker]
	}

	// Scale existing positions down to make room for the new one.
	scaleFactor := (100 - allocation) / 100
	newWeights := make(map[string]float64, len(holdings)+1)
	for ticker, weight := range holdings {
		newWeights[ticker] = utils.RoundTo(weight*scaleFactor, 2)
	}
	newWeights[newStock] = allocation

	newReturn := 0.0
	for ticker, weight := range holdings {
		newReturn += (weight * scaleFactor / 100) * returns[ticker]
	}
	newReturn += (allocation / 100) * newStockReturn

	investment := utils.RoundTo(portfolioValue*allocation/100, 2)

	return &dto.Projection{
		CurrentReturn:            utils.RoundTo(currentReturn, 2),
		NewReturn:                utils.RoundTo(newReturn, 2),
		Improvement:              utils.RoundTo(newReturn-currentReturn, 2),
		NewStockReturn:           utils.RoundTo(newStockReturn, 2),
		ConvictionAdjustedReturn: utils.RoundTo(newReturn*(float64(research.Conviction)/10), 2),
		NewWeights:               newWeights,
		RecommendedAllocationPct: allocation,
		InvestmentAmount:         investment,
		Schedule:                 generateDCASchedule(investment, weeks),
		Timeframe:                "12 months",
	}, nil
}

func (p *returnProjector) fetchPrice(ctx context.Context, ticker string) float64 {
	snapshot, err := p.marketData.GetSnapshot(ctx, ticker)
	if err != nil {
		p.logger.Warn("Could not fetch price, using fallback",
			logger.StringField("ticker", ticker), logger.ErrorField(err))
		return fallbackPrice
	}
	return snapshot.Price
}
