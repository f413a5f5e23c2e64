package service

import (
	"context"
	"time"

	"stock-research-service/internal/research/config"
	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/pkg/logger"
)

// OracleCaller wraps the oracle repository with a per-call timeout and
// bounded retry. Every failure comes back as an OracleError carrying the
// ticker and the stage that failed.
type OracleCaller interface {
	Call(ctx context.Context, ticker, stage, prompt string, opts dto.OracleOptions) (string, error)
}

type oracleCaller struct {
	oracle repository.OracleRepository
	cfg    config.Oracle
	logger *logger.Logger
}

// NewOracleCaller creates the retrying oracle wrapper.
func NewOracleCaller(oracle repository.OracleRepository, cfg config.Oracle, log *logger.Logger) OracleCaller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	return &oracleCaller{oracle: oracle, cfg: cfg, logger: log}
}

func (c *oracleCaller) Call(ctx context.Context, ticker, stage, prompt string, opts dto.OracleOptions) (string, error) {
	var lastErr error
	attempts := c.cfg.MaxRetries + 1

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.cfg.RetryDelay * time.Duration(1<<(attempt-1))
			c.logger.Warn("Retrying oracle call",
				logger.StringField("ticker", ticker),
				logger.StringField("stage", stage),
				logger.IntField("attempt", attempt+1),
				logger.ErrorField(lastErr),
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", &OracleError{Ticker: ticker, Stage: stage, Err: ctx.Err()}
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		text, err := c.oracle.Complete(callCtx, prompt, opts)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return "", &OracleError{Ticker: ticker, Stage: stage, Err: lastErr}
}
