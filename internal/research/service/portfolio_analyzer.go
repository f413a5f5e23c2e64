package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/pkg/utils"
)

// PortfolioAnalyzer builds the structural view of a portfolio: sector
// exposure, benchmark gaps, themes and concentration.
type PortfolioAnalyzer interface {
	Analyze(holdings dto.PortfolioHoldings) (*dto.PortfolioAnalysis, error)
}

type portfolioAnalyzer struct {
	sectors repository.SectorRepository
}

// NewPortfolioAnalyzer creates the analyzer.
func NewPortfolioAnalyzer(sectors repository.SectorRepository) PortfolioAnalyzer {
	return &portfolioAnalyzer{sectors: sectors}
}

func validateHoldings(holdings dto.PortfolioHoldings) error {
	if len(holdings) == 0 {
		return &ConfigError{Reason: "holdings must not be empty"}
	}
	for ticker, weight := range holdings {
		if strings.TrimSpace(ticker) == "" {
			return &ConfigError{Reason: "holdings contain an empty ticker"}
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return &ConfigError{Reason: fmt.Sprintf("weight for %s is not a number", ticker)}
		}
		if weight <= 0 {
			return &ConfigError{Reason: fmt.Sprintf("weight for %s must be positive", ticker)}
		}
	}
	return nil
}

func (a *portfolioAnalyzer) Analyze(holdings dto.PortfolioHoldings) (*dto.PortfolioAnalysis, error) {
	if err := validateHoldings(holdings); err != nil {
		return nil, err
	}

	exposure := a.sectorExposure(holdings)

	return &dto.PortfolioAnalysis{
		Holdings:          holdings,
		TotalPositions:    len(holdings),
		SectorExposure:    exposure,
		WeightAnalysis:    a.analyzeWeights(exposure),
		Opportunities:     a.findOpportunities(exposure),
		Themes:            a.findThemes(holdings),
		ConcentrationRisk: concentrationRisk(holdings),
	}, nil
}

func (a *portfolioAnalyzer) sectorExposure(holdings dto.PortfolioHoldings) map[string]float64 {
	exposure := make(map[string]float64)
	for ticker, weight := range holdings {
		exposure[a.sectors.SectorOf(ticker)] += weight
	}
	return exposure
}

// findOpportunities flags sectors more than three points below benchmark,
// biggest gaps first.
func (a *portfolioAnalyzer) findOpportunities(exposure map[string]float64) []dto.DiversificationOpportunity {
	var opportunities []dto.DiversificationOpportunity
	for _, sector := range a.sectors.Sectors() {
		current := exposure[sector]
		benchmark := a.sectors.BenchmarkWeight(sector)
		gap := benchmark - current
		if gap <= 3.0 {
			continue
		}

		priority := "medium"
		if gap > 8 {
			priority = "high"
		}
		opportunities = append(opportunities, dto.DiversificationOpportunity{
			Sector:          sector,
			CurrentWeight:   utils.RoundTo(current, 1),
			BenchmarkWeight: utils.RoundTo(benchmark, 1),
			Gap:             utils.RoundTo(gap, 1),
			Priority:        priority,
			Reason:          diversificationReason(sector, gap),
		})
	}

	sort.Slice(opportunities, func(i, j int) bool {
		return opportunities[i].Gap > opportunities[j].Gap
	})
	return opportunities
}

func diversificationReason(sector string, gap float64) string {
	if gap > 10 {
		return fmt.Sprintf("Critical gap: %s exposure is significantly below market benchmark", sector)
	}
	if gap > 5 {
		return fmt.Sprintf("Major opportunity: Adding %s would improve diversification", sector)
	}
	return fmt.Sprintf("Moderate gap: Consider small %s allocation for balance", sector)
}

// analyzeWeights grades every sector against the benchmark, including the
// sectors the portfolio does not hold at all.
func (a *portfolioAnalyzer) analyzeWeights(exposure map[string]float64) []dto.SectorWeight {
	weights := make([]dto.SectorWeight, 0, len(a.sectors.Sectors()))
	for _, sector := range a.sectors.Sectors() {
		benchmark := a.sectors.BenchmarkWeight(sector)
		current, held := exposure[sector]
		diff := current - benchmark

		var status string
		switch {
		case !held:
			if benchmark > 3 {
				status = dto.WeightMissing
			} else {
				status = dto.WeightAbsent
			}
		case diff > 10:
			status = dto.WeightHeavilyOverweight
		case diff > 5:
			status = dto.WeightOverweight
		case diff < -10:
			status = dto.WeightHeavilyUnderweight
		case diff < -5:
			status = dto.WeightUnderweight
		default:
			status = dto.WeightBalanced
		}

		weights = append(weights, dto.SectorWeight{
			Sector:          sector,
			PortfolioWeight: utils.RoundTo(current, 1),
			BenchmarkWeight: utils.RoundTo(benchmark, 1),
			Difference:      utils.RoundTo(diff, 1),
			Status:          status,
		})
	}
	return weights
}

var (
	commodityTickers = map[string]bool{"URA": true, "IAU": true, "SLV": true, "GLD": true}
	cryptoTickers    = map[string]bool{"IBIT": true, "COIN": true, "MSTR": true}
	megaTechTickers  = map[string]bool{"AAPL": true, "MSFT": true, "GOOGL": true, "META": true, "AMZN": true, "NVDA": true, "TSLA": true}
)

// findThemes groups holdings by sector plus a few cross-sector themes.
func (a *portfolioAnalyzer) findThemes(holdings dto.PortfolioHoldings) map[string][]string {
	themes := make(map[string][]string)
	tickers := make([]string, 0, len(holdings))
	for ticker := range holdings {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		theme := a.sectors.SectorOf(ticker) + " Exposure"
		themes[theme] = append(themes[theme], ticker)
	}
	for _, ticker := range tickers {
		if commodityTickers[ticker] {
			themes["Commodities & Precious Metals"] = append(themes["Commodities & Precious Metals"], ticker)
		}
		if cryptoTickers[ticker] {
			themes["Crypto/Bitcoin Exposure"] = append(themes["Crypto/Bitcoin Exposure"], ticker)
		}
		if megaTechTickers[ticker] {
			themes["Mega-Cap Tech"] = append(themes["Mega-Cap Tech"], ticker)
		}
	}
	return themes
}

// concentrationRisk grades the combined weight of the three largest
// positions.
func concentrationRisk(holdings dto.PortfolioHoldings) string {
	weights := make([]float64, 0, len(holdings))
	for _, weight := range holdings {
		weights = append(weights, weight)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))

	top3 := 0.0
	for i, weight := range weights {
		if i >= 3 {
			break
		}
		top3 += weight
	}

	switch {
	case top3 > 70:
		return "VERY HIGH - Top 3 holdings exceed 70%"
	case top3 > 50:
		return "HIGH - Top 3 holdings exceed 50%"
	case top3 > 35:
		return "MODERATE - Top 3 holdings exceed 35%"
	default:
		return "LOW - Well diversified"
	}
}
