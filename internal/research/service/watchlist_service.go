package service

import (
	"context"
	"fmt"
	"sync"

	"stock-research-service/internal/research/config"
	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/pkg/logger"

	"github.com/robfig/cron/v3"
)

// WatchlistService manages the recurring research schedule for tracked
// tickers.
type WatchlistService interface {
	Start(ctx context.Context) error
	Stop()
	Add(ctx context.Context, ticker string, mode dto.ResearchMode) error
	Remove(ctx context.Context, ticker string) error
	RunOnce(ctx context.Context)
}

// NewWatchlistService creates the cron-driven watchlist runner.
func NewWatchlistService(
	watchlist repository.WatchlistRepository,
	research ResearchService,
	cfg config.Watchlist,
	log *logger.Logger,
) WatchlistService {
	return &watchlistService{
		watchlist: watchlist,
		research:  research,
		cfg:       cfg,
		logger:    log,
		runner:    cron.New(),
	}
}

type watchlistService struct {
	watchlist repository.WatchlistRepository
	research  ResearchService
	cfg       config.Watchlist
	logger    *logger.Logger
	runner    *cron.Cron

	mu      sync.Mutex
	running bool
}

// Start registers the cron schedule and launches the runner. It is a
// no-op when the watchlist is disabled in the configuration.
func (s *watchlistService) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("Watchlist scheduler disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	if _, err := s.runner.AddFunc(s.cfg.Schedule, func() {
		s.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("failed to register watchlist schedule %q: %w", s.cfg.Schedule, err)
	}

	s.runner.Start()
	s.running = true
	s.logger.Info("Watchlist scheduler started", logger.StringField("schedule", s.cfg.Schedule))
	return nil
}

// Stop halts the runner and waits for an in-flight run to finish.
func (s *watchlistService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	<-s.runner.Stop().Done()
	s.running = false
	s.logger.Info("Watchlist scheduler stopped")
}

// Add registers a ticker for recurring research.
func (s *watchlistService) Add(ctx context.Context, ticker string, mode dto.ResearchMode) error {
	if mode == "" {
		mode = dto.ResearchMode(s.cfg.Mode)
	}
	if _, err := config.SettingsForMode(mode); err != nil {
		return &ConfigError{Reason: err.Error()}
	}
	return s.watchlist.Add(ctx, ticker, string(mode))
}

// Remove deactivates a ticker.
func (s *watchlistService) Remove(ctx context.Context, ticker string) error {
	return s.watchlist.Remove(ctx, ticker)
}

// RunOnce researches every active watchlist entry sequentially. Entries
// run one at a time so a long watchlist does not overwhelm the oracle
// rate limits.
func (s *watchlistService) RunOnce(ctx context.Context) {
	entries, err := s.watchlist.GetActive(ctx)
	if err != nil {
		s.logger.Error("Failed to load watchlist", logger.ErrorField(err))
		return
	}
	if len(entries) == 0 {
		return
	}

	s.logger.Info("Watchlist run starting", logger.IntField("entries", len(entries)))
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		report, err := s.research.Research(ctx, entry.Ticker, dto.ResearchMode(entry.Mode))
		if err != nil {
			s.logger.Error("Watchlist research failed",
				logger.StringField("ticker", entry.Ticker),
				logger.ErrorField(err),
			)
			continue
		}
		s.logger.Info("Watchlist research completed",
			logger.StringField("ticker", report.Ticker),
			logger.StringField("action", report.Action),
			logger.IntField("conviction", report.Conviction),
		)
	}
}
