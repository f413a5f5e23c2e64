package repository

import (
	"strings"
	"testing"

	"stock-research-service/internal/research/dto"

	"github.com/stretchr/testify/assert"
)

func digestBundle(results ...dto.SignalResult) *dto.SignalBundle {
	bundle := &dto.SignalBundle{
		Ticker:  "ACME",
		Signals: make(map[dto.SignalKind]dto.SignalResult),
	}
	for _, r := range results {
		bundle.Signals[r.Kind] = r
	}
	return bundle
}

func TestFormatSignalDigest(t *testing.T) {
	bundle := digestBundle(
		dto.SignalResult{Kind: dto.SignalPrice, Price: &dto.PriceSnapshot{
			Price: 187.50, ChangePercent: -1.2, Volume: 52000000, MarketCap: 2900000000000,
		}},
		dto.SignalResult{Kind: dto.SignalReddit, Sentiment: &dto.SentimentReading{
			Score: 0.82, Label: "VERY BULLISH", MentionVolume: 24, Trending: true,
		}},
		dto.SignalResult{Kind: dto.SignalOptions, Options: &dto.UnusualOptionsActivity{
			Detected: true, Bias: "BULLISH", ActivityTypes: []string{"call sweep", "block trade"},
		}},
		dto.SignalResult{Kind: dto.SignalNews, Error: "feed timeout"},
	)

	digest := FormatSignalDigest(bundle)

	assert.Contains(t, digest, "PRICE: $187.50 (-1.20% today)")
	assert.Contains(t, digest, "REDDIT SENTIMENT: 0.82 (VERY BULLISH), 24 mentions, trending=true")
	assert.Contains(t, digest, "UNUSUAL OPTIONS: detected, bias BULLISH (call sweep, block trade)")
	assert.Contains(t, digest, "UNAVAILABLE: news (feed timeout)")
	assert.NotContains(t, digest, "FUNDAMENTALS")
}

func TestFormatSignalDigestEmpty(t *testing.T) {
	assert.Equal(t, "No signal data available.\n", FormatSignalDigest(digestBundle()))
}

func TestFormatTranscript(t *testing.T) {
	assert.Equal(t, "No previous rounds.", FormatTranscript(nil))

	out := FormatTranscript([]dto.DebateRound{
		{Round: 1, BullRebuttal: "growth intact", BearRebuttal: "margins slipping"},
		{Round: 2, BullRebuttal: "buybacks", BearRebuttal: "valuation stretched"},
	})
	assert.Contains(t, out, "--- Round 1 ---")
	assert.Contains(t, out, "BULL: growth intact")
	assert.Contains(t, out, "BEAR: valuation stretched")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestBuildJudgePromptFormat(t *testing.T) {
	prompt := BuildJudgePrompt("ACME",
		dto.Case{Side: dto.SideBull, Text: "bull text"},
		dto.Case{Side: dto.SideBear, Text: "bear text"},
		nil)

	// The verdict parser keys on these labels.
	assert.Contains(t, prompt, "WINNER: [bull or bear]")
	assert.Contains(t, prompt, "CONFIDENCE: [number 0-100]")
	assert.Contains(t, prompt, "BEST_ARGUMENT:")
	assert.Contains(t, prompt, "KEY_POINT_3:")
	assert.Contains(t, prompt, "bull text")
	assert.Contains(t, prompt, "No previous rounds.")
}

func TestBuildSectorDebatePrompt(t *testing.T) {
	prompt := BuildSectorDebatePrompt("Healthcare", "Financials", dto.PortfolioAnalysis{
		SectorExposure:    map[string]float64{"Technology": 90.0},
		ConcentrationRisk: "EXTREME - Over 70% in top 3 holdings",
	})

	assert.Contains(t, prompt, "Analyst A argues for: Healthcare")
	assert.Contains(t, prompt, "Analyst B argues for: Financials")
	assert.Contains(t, prompt, "- Technology: 90.0%")
	assert.Contains(t, prompt, `{"winner": "<Healthcare or Financials>"`)
}

func TestBuildStockDebatePrompt(t *testing.T) {
	prompt := BuildStockDebatePrompt("Healthcare", []string{"LLY", "UNH", "JNJ"})

	assert.Contains(t, prompt, "CANDIDATES: LLY, UNH, JNJ")
	assert.Contains(t, prompt, "TOP_1: [ticker]")
}
