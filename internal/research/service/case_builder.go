package service

import (
	"context"

	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/pkg/logger"
)

// CaseBuilder produces the opening bull and bear cases. The two calls are
// independent: neither side sees the other's text.
type CaseBuilder interface {
	BuildCases(ctx context.Context, ticker string, bundle *dto.SignalBundle, scores dto.SpecialistScores) (bull, bear dto.Case, err error)
}

type caseBuilder struct {
	caller OracleCaller
	logger *logger.Logger
}

// NewCaseBuilder creates the opening-case stage.
func NewCaseBuilder(caller OracleCaller, log *logger.Logger) CaseBuilder {
	return &caseBuilder{caller: caller, logger: log}
}

var caseOptions = dto.OracleOptions{Temperature: 0.7, MaxTokens: 1000}

func (b *caseBuilder) BuildCases(ctx context.Context, ticker string, bundle *dto.SignalBundle, scores dto.SpecialistScores) (dto.Case, dto.Case, error) {
	bullPrompt := repository.BuildBullCasePrompt(ticker, bundle, scores)
	bullText, err := b.caller.Call(ctx, ticker, StageBullCase, bullPrompt, caseOptions)
	if err != nil {
		return dto.Case{}, dto.Case{}, err
	}

	bearPrompt := repository.BuildBearCasePrompt(ticker, bundle, scores)
	bearText, err := b.caller.Call(ctx, ticker, StageBearCase, bearPrompt, caseOptions)
	if err != nil {
		return dto.Case{}, dto.Case{}, err
	}

	b.logger.Debug("Built opening cases",
		logger.StringField("ticker", ticker),
		logger.IntField("bull_len", len(bullText)),
		logger.IntField("bear_len", len(bearText)),
	)

	return dto.Case{Side: dto.SideBull, Text: bullText},
		dto.Case{Side: dto.SideBear, Text: bearText}, nil
}
