package service

import (
	"context"
	"errors"

	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/logger"

	"go.uber.org/zap"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

type oracleCall struct {
	Stage  string
	Prompt string
	Opts   dto.OracleOptions
}

// scriptedOracle replays canned responses keyed by stage and records every
// call in order.
type scriptedOracle struct {
	responses map[string]string
	failures  map[string]error
	calls     []oracleCall
}

func newScriptedOracle() *scriptedOracle {
	return &scriptedOracle{
		responses: make(map[string]string),
		failures:  make(map[string]error),
	}
}

func (o *scriptedOracle) Call(_ context.Context, ticker, stage, prompt string, opts dto.OracleOptions) (string, error) {
	o.calls = append(o.calls, oracleCall{Stage: stage, Prompt: prompt, Opts: opts})
	if err, ok := o.failures[stage]; ok {
		return "", &OracleError{Ticker: ticker, Stage: stage, Err: err}
	}
	if text, ok := o.responses[stage]; ok {
		return text, nil
	}
	return "", &OracleError{Ticker: ticker, Stage: stage, Err: errors.New("no scripted response")}
}

func (o *scriptedOracle) stages() []string {
	stages := make([]string, 0, len(o.calls))
	for _, call := range o.calls {
		stages = append(stages, call.Stage)
	}
	return stages
}

func bundleWith(ticker string, results ...dto.SignalResult) *dto.SignalBundle {
	bundle := &dto.SignalBundle{
		Ticker:  ticker,
		Signals: make(map[dto.SignalKind]dto.SignalResult, len(results)),
	}
	for _, r := range results {
		bundle.Signals[r.Kind] = r
	}
	return bundle
}

func priceSignal(price, changePercent float64) dto.SignalResult {
	return dto.SignalResult{
		Kind:  dto.SignalPrice,
		Price: &dto.PriceSnapshot{Price: price, ChangePercent: changePercent},
	}
}

func financialsSignal(metrics dto.FinancialMetrics) dto.SignalResult {
	return dto.SignalResult{Kind: dto.SignalFinancials, Financials: &metrics}
}

func sentimentSignal(kind dto.SignalKind, score float64) dto.SignalResult {
	return dto.SignalResult{Kind: kind, Sentiment: &dto.SentimentReading{Score: score}}
}

func institutionalSignal(level string) dto.SignalResult {
	return dto.SignalResult{
		Kind:          dto.SignalInstitutional,
		Institutional: &dto.InstitutionalActivity{ActivityLevel: level},
	}
}

func optionsSignal(detected bool, bias string) dto.SignalResult {
	return dto.SignalResult{
		Kind:    dto.SignalOptions,
		Options: &dto.UnusualOptionsActivity{Detected: detected, Bias: bias},
	}
}
