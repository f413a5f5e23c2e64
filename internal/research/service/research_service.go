package service

import (
	"context"
	"strings"

	"stock-research-service/internal/research/config"
	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/pkg/logger"
	"stock-research-service/pkg/telegram"
)

// ResearchService runs the full research pipeline for a single ticker.
type ResearchService interface {
	Research(ctx context.Context, ticker string, mode dto.ResearchMode) (*dto.ResearchReport, error)
	GetLatestReport(ctx context.Context, ticker string) (*dto.ResearchReport, error)
}

type researchService struct {
	aggregator SignalAggregator
	scorer     SpecialistScorer
	cases      CaseBuilder
	debate     DebateEngine
	conviction ConvictionScorer
	risk       RiskAssessor
	assembler  ReportAssembler
	reports    repository.ReportRepository
	notifier   telegram.Notifier
	logger     *logger.Logger
}

// NewResearchService wires the pipeline stages together. The notifier may
// be nil when notifications are disabled.
func NewResearchService(
	aggregator SignalAggregator,
	scorer SpecialistScorer,
	cases CaseBuilder,
	debate DebateEngine,
	conviction ConvictionScorer,
	risk RiskAssessor,
	assembler ReportAssembler,
	reports repository.ReportRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) ResearchService {
	return &researchService{
		aggregator: aggregator,
		scorer:     scorer,
		cases:      cases,
		debate:     debate,
		conviction: conviction,
		risk:       risk,
		assembler:  assembler,
		reports:    reports,
		notifier:   notifier,
		logger:     log,
	}
}

// Research executes signal gathering, specialist scoring, the bull/bear
// debate and final assembly. Oracle failures abort the run; persistence
// and notification are best effort.
func (s *researchService) Research(ctx context.Context, ticker string, mode dto.ResearchMode) (*dto.ResearchReport, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, &ConfigError{Reason: "ticker must not be empty"}
	}

	settings, err := config.SettingsForMode(mode)
	if err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}

	s.logger.Info("Research started",
		logger.StringField("ticker", ticker),
		logger.StringField("mode", string(mode)),
		logger.IntField("rounds", settings.Rounds),
	)

	bundle, err := s.aggregator.Gather(ctx, ticker, mode)
	if err != nil {
		return nil, err
	}

	scores := s.scorer.Score(bundle)

	bullCase, bearCase, err := s.cases.BuildCases(ctx, ticker, bundle, scores)
	if err != nil {
		return nil, err
	}

	debate, err := s.debate.Run(ctx, ticker, bullCase, bearCase, settings.Rounds)
	if err != nil {
		return nil, err
	}

	conviction := s.conviction.Score(debate, bundle)
	risk := s.risk.Assess(bundle, conviction)
	report := s.assembler.Assemble(ticker, mode, bundle, scores, bullCase, bearCase, debate, conviction, risk)

	if err := s.reports.Save(ctx, report); err != nil {
		s.logger.Warn("Failed to persist research report",
			logger.ErrorField(err), logger.StringField("ticker", ticker))
	}
	s.notify(report)

	s.logger.Info("Research completed",
		logger.StringField("ticker", ticker),
		logger.StringField("action", report.Action),
		logger.IntField("conviction", report.Conviction),
	)
	return report, nil
}

func (s *researchService) GetLatestReport(ctx context.Context, ticker string) (*dto.ResearchReport, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, &ConfigError{Reason: "ticker must not be empty"}
	}
	return s.reports.GetLatest(ctx, ticker)
}

func (s *researchService) notify(report *dto.ResearchReport) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(telegram.FormatResearchReport(report)); err != nil {
		s.logger.Warn("Failed to send research notification",
			logger.ErrorField(err), logger.StringField("ticker", report.Ticker))
	}
}
