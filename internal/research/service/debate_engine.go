package service

import (
	"context"

	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/pkg/logger"
)

// DebateEngine runs the adversarial rounds and the judging call.
type DebateEngine interface {
	Run(ctx context.Context, ticker string, bullCase, bearCase dto.Case, rounds int) (*dto.DebateResult, error)
}

type debateEngine struct {
	caller OracleCaller
	parser JudgeVerdictParser
	logger *logger.Logger
}

// NewDebateEngine creates the debate stage.
func NewDebateEngine(caller OracleCaller, parser JudgeVerdictParser, log *logger.Logger) DebateEngine {
	return &debateEngine{caller: caller, parser: parser, logger: log}
}

var (
	rebuttalOptions = dto.OracleOptions{Temperature: 0.7, MaxTokens: 500}
	judgeOptions    = dto.OracleOptions{Temperature: 0.3, MaxTokens: 500}
)

// Run executes the debate strictly sequentially: within each round the
// bull rebuts first, then the bear; every rebuttal sees both opening
// cases and the full transcript so far. Oracle failures are fatal, a
// malformed judge reply is not.
func (e *debateEngine) Run(ctx context.Context, ticker string, bullCase, bearCase dto.Case, rounds int) (*dto.DebateResult, error) {
	if rounds < 1 {
		rounds = 1
	}
	if rounds > 3 {
		rounds = 3
	}

	transcript := make([]dto.DebateRound, 0, rounds)
	for round := 1; round <= rounds; round++ {
		e.logger.Debug("Debate round started",
			logger.StringField("ticker", ticker), logger.IntField("round", round))

		bullPrompt := repository.BuildRebuttalPrompt(ticker, dto.SideBull, round, bullCase, bearCase, transcript)
		bullRebuttal, err := e.caller.Call(ctx, ticker, StageBullRebuttal, bullPrompt, rebuttalOptions)
		if err != nil {
			return nil, err
		}

		bearPrompt := repository.BuildRebuttalPrompt(ticker, dto.SideBear, round, bullCase, bearCase, transcript)
		bearRebuttal, err := e.caller.Call(ctx, ticker, StageBearRebuttal, bearPrompt, rebuttalOptions)
		if err != nil {
			return nil, err
		}

		transcript = append(transcript, dto.DebateRound{
			Round:        round,
			BullRebuttal: bullRebuttal,
			BearRebuttal: bearRebuttal,
		})
	}

	judgePrompt := repository.BuildJudgePrompt(ticker, bullCase, bearCase, transcript)
	judgeResponse, err := e.caller.Call(ctx, ticker, StageJudging, judgePrompt, judgeOptions)
	if err != nil {
		return nil, err
	}

	verdict := e.parser.Parse(ticker, judgeResponse)
	e.logger.Info("Debate concluded",
		logger.StringField("ticker", ticker),
		logger.StringField("winner", string(verdict.Winner)),
		logger.IntField("confidence", verdict.Confidence),
		logger.IntField("rounds", len(transcript)),
	)

	return &dto.DebateResult{
		Transcript:      transcript,
		Winner:          verdict.Winner,
		Confidence:      verdict.Confidence,
		WinningArgument: verdict.WinningArgument,
		KeyPoints:       verdict.KeyPoints,
	}, nil
}
