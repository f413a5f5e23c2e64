package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/pkg/logger"
	"stock-research-service/pkg/telegram"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// PortfolioService produces a full portfolio recommendation: sector gap
// analysis, sector debate, candidate research and return projection.
type PortfolioService interface {
	Recommend(ctx context.Context, req *dto.PortfolioRecommendationRequest) (*dto.PortfolioRecommendation, error)
}

type portfolioService struct {
	analyzer  PortfolioAnalyzer
	caller    OracleCaller
	universe  repository.UniverseRepository
	research  ResearchService
	projector ReturnProjector
	notifier  telegram.Notifier
	logger    *logger.Logger
}

// NewPortfolioService wires the portfolio pipeline. The notifier may be
// nil when notifications are disabled.
func NewPortfolioService(
	analyzer PortfolioAnalyzer,
	caller OracleCaller,
	universe repository.UniverseRepository,
	research ResearchService,
	projector ReturnProjector,
	notifier telegram.Notifier,
	log *logger.Logger,
) PortfolioService {
	return &portfolioService{
		analyzer:  analyzer,
		caller:    caller,
		universe:  universe,
		research:  research,
		projector: projector,
		notifier:  notifier,
		logger:    log,
	}
}

// Fallback sector pair when the portfolio has no meaningful gaps.
const (
	fallbackPrimarySector     = "Healthcare"
	fallbackAlternativeSector = "Financials"
)

func (s *portfolioService) Recommend(ctx context.Context, req *dto.PortfolioRecommendationRequest) (*dto.PortfolioRecommendation, error) {
	holdings := normalizeHoldings(req.Holdings)

	mode := dto.ResearchMode(req.Mode)
	if req.Mode == "" {
		mode = dto.ModeStandard
	}
	riskTolerance := dto.RiskTolerance(req.RiskTolerance)
	switch riskTolerance {
	case dto.RiskToleranceConservative, dto.RiskToleranceModerate, dto.RiskToleranceAggressive:
	case "":
		riskTolerance = dto.RiskToleranceModerate
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown risk tolerance %q", req.RiskTolerance)}
	}

	analysis, err := s.analyzer.Analyze(holdings)
	if err != nil {
		return nil, err
	}

	// Strategy is diversification-first: the two biggest benchmark gaps
	// frame the sector debate.
	primary, alternative := sectorPair(analysis)
	strategyReasoning := fmt.Sprintf(
		"Diversification-first: %s and %s are the largest benchmark gaps (concentration: %s)",
		primary, alternative, analysis.ConcentrationRisk)

	winner := s.runSectorDebate(ctx, primary, alternative, analysis)
	s.logger.Info("Sector debate concluded",
		logger.StringField("primary", primary),
		logger.StringField("alternative", alternative),
		logger.StringField("winner", winner),
	)

	candidates := s.filterCandidates(winner, alternative, holdings)
	ticker := s.pickCandidate(ctx, winner, candidates)

	research, err := s.research.Research(ctx, ticker, mode)
	if err != nil {
		return nil, err
	}

	projection, err := s.projector.Project(ctx, holdings, research, riskTolerance, req.PortfolioValue, 0)
	if err != nil {
		return nil, err
	}

	recommendation := &dto.PortfolioRecommendation{
		Analysis:          *analysis,
		Strategy:          "diversification",
		StrategyReasoning: strategyReasoning,
		WinningSector:     winner,
		RecommendedStock:  ticker,
		Research:          research,
		Projection:        *projection,
		RiskTolerance:     riskTolerance,
	}

	if s.notifier != nil {
		if err := s.notifier.SendMessage(telegram.FormatPortfolioRecommendation(recommendation)); err != nil {
			s.logger.Warn("Failed to send portfolio notification", logger.ErrorField(err))
		}
	}
	return recommendation, nil
}

func normalizeHoldings(holdings map[string]float64) dto.PortfolioHoldings {
	normalized := make(dto.PortfolioHoldings, len(holdings))
	for ticker, weight := range holdings {
		normalized[strings.ToUpper(strings.TrimSpace(ticker))] = weight
	}
	return normalized
}

// sectorPair picks the debate contenders from the gap analysis.
func sectorPair(analysis *dto.PortfolioAnalysis) (primary, alternative string) {
	primary = fallbackPrimarySector
	alternative = fallbackAlternativeSector
	if len(analysis.Opportunities) > 0 {
		primary = analysis.Opportunities[0].Sector
	}
	if len(analysis.Opportunities) > 1 {
		alternative = analysis.Opportunities[1].Sector
	} else if primary == alternative {
		alternative = fallbackPrimarySector
	}
	return primary, alternative
}

// runSectorDebate asks the oracle to pick between the two sectors. The
// reply is parsed as JSON first; a substring scan of the raw text is the
// low-confidence fallback, and any remaining ambiguity resolves to the
// primary sector.
func (s *portfolioService) runSectorDebate(ctx context.Context, primary, alternative string, analysis *dto.PortfolioAnalysis) string {
	prompt := repository.BuildSectorDebatePrompt(primary, alternative, *analysis)
	response, err := s.caller.Call(ctx, primary, StageSectorDebate, prompt, dto.OracleOptions{Temperature: 0.5, MaxTokens: 300})
	if err != nil {
		s.logger.Warn("Sector debate failed, using primary sector", logger.ErrorField(err))
		return primary
	}

	if winner, ok := parseSectorVerdict(response, primary, alternative); ok {
		return winner
	}

	s.logger.Warn("Sector verdict not parseable, scanning response text",
		logger.StringField("primary", primary))
	lower := strings.ToLower(response)
	primaryIdx := strings.Index(lower, strings.ToLower(primary))
	alternativeIdx := strings.Index(lower, strings.ToLower(alternative))
	if alternativeIdx >= 0 && (primaryIdx < 0 || alternativeIdx < primaryIdx) {
		return alternative
	}
	return primary
}

// parseSectorVerdict decodes the JSON verdict, tolerating the malformed
// JSON oracles tend to produce.
func parseSectorVerdict(response, primary, alternative string) (string, bool) {
	repaired, err := jsonrepair.RepairJSON(response)
	if err != nil {
		return "", false
	}

	var verdict dto.SectorVerdict
	if err := json.Unmarshal([]byte(repaired), &verdict); err != nil {
		return "", false
	}

	winner := strings.ToLower(strings.TrimSpace(verdict.Winner))
	switch {
	case winner == strings.ToLower(primary):
		return primary, true
	case winner == strings.ToLower(alternative):
		return alternative, true
	case strings.Contains(winner, strings.ToLower(primary)):
		return primary, true
	case strings.Contains(winner, strings.ToLower(alternative)):
		return alternative, true
	default:
		return "", false
	}
}

// filterCandidates returns the winning sector's universe members not
// already held, falling back to the alternative sector when empty.
func (s *portfolioService) filterCandidates(winner, alternative string, holdings dto.PortfolioHoldings) []string {
	filter := func(sector string) []string {
		var out []string
		for _, ticker := range s.universe.TickersBySector(sector) {
			if _, held := holdings[ticker]; !held {
				out = append(out, ticker)
			}
		}
		return out
	}

	candidates := filter(winner)
	if len(candidates) == 0 {
		candidates = filter(alternative)
	}
	return candidates
}

// pickCandidate narrows the candidate list to one ticker. With several
// candidates the oracle ranks the top three and the first is taken; this
// keeps the selection simple at the cost of ignoring ranks two and three.
func (s *portfolioService) pickCandidate(ctx context.Context, sector string, candidates []string) string {
	switch len(candidates) {
	case 0:
		return s.universe.DefaultTicker(sector)
	case 1:
		return candidates[0]
	}

	prompt := repository.BuildStockDebatePrompt(sector, candidates)
	response, err := s.caller.Call(ctx, sector, StageStockDebate, prompt, dto.OracleOptions{Temperature: 0.5, MaxTokens: 200})
	if err != nil {
		s.logger.Warn("Stock ranking failed, using first candidate", logger.ErrorField(err))
		return candidates[0]
	}

	if pick := parseTopPick(response, candidates); pick != "" {
		return pick
	}
	s.logger.Warn("Stock ranking not parseable, using first candidate",
		logger.StringField("sector", sector))
	return candidates[0]
}

// parseTopPick extracts the TOP_1 line, accepting only a known candidate.
func parseTopPick(response string, candidates []string) string {
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c] = true
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "*#` ")
		label, value, ok := splitLabel(line)
		if !ok || label != "TOP_1" {
			continue
		}
		ticker := strings.ToUpper(strings.Trim(value, "[] "))
		if known[ticker] {
			return ticker
		}
	}
	return ""
}
