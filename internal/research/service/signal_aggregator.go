package service

import (
	"context"
	"fmt"
	"sync"

	"stock-research-service/internal/research/config"
	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/pkg/logger"
)

// SignalAggregator gathers every enabled signal for a ticker.
type SignalAggregator interface {
	Gather(ctx context.Context, ticker string, mode dto.ResearchMode) (*dto.SignalBundle, error)
}

type signalAggregator struct {
	registry *repository.SignalRegistry
	logger   *logger.Logger
}

// NewSignalAggregator creates the signal fan-out stage.
func NewSignalAggregator(registry *repository.SignalRegistry, log *logger.Logger) SignalAggregator {
	return &signalAggregator{registry: registry, logger: log}
}

// Gather fetches all signals enabled for the mode concurrently. A failed
// or missing provider never aborts the others; its error is recorded
// inline on the bundle.
func (a *signalAggregator) Gather(ctx context.Context, ticker string, mode dto.ResearchMode) (*dto.SignalBundle, error) {
	settings, err := config.SettingsForMode(mode)
	if err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}

	kinds := settings.Signals
	results := make([]dto.SignalResult, len(kinds))

	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind dto.SignalKind) {
			defer wg.Done()
			results[i] = a.fetchOne(ctx, ticker, kind)
		}(i, kind)
	}
	wg.Wait()

	bundle := &dto.SignalBundle{
		Ticker:  ticker,
		Signals: make(map[dto.SignalKind]dto.SignalResult, len(results)),
	}
	failed := 0
	for _, result := range results {
		bundle.Signals[result.Kind] = result
		if result.Failed() {
			failed++
		}
	}

	a.logger.Info("Gathered research signals",
		logger.StringField("ticker", ticker),
		logger.StringField("mode", string(mode)),
		logger.IntField("signals", len(results)),
		logger.IntField("failed", failed),
	)
	return bundle, nil
}

func (a *signalAggregator) fetchOne(ctx context.Context, ticker string, kind dto.SignalKind) dto.SignalResult {
	provider, ok := a.registry.Provider(kind)
	if !ok {
		return dto.SignalResult{Kind: kind, Error: fmt.Sprintf("no provider registered for %s", kind)}
	}

	result, err := provider.Fetch(ctx, ticker)
	if err != nil {
		a.logger.Warn("Signal fetch failed",
			logger.StringField("ticker", ticker),
			logger.StringField("signal", string(kind)),
			logger.ErrorField(err),
		)
		return dto.SignalResult{Kind: kind, Error: err.Error()}
	}
	if result == nil {
		return dto.SignalResult{Kind: kind, Error: "provider returned no data"}
	}
	result.Kind = kind
	return *result
}
