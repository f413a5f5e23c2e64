package repository

import (
	"context"
	"fmt"
	"strings"

	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/logger"
	"stock-research-service/pkg/utils"
)

var (
	redditBullishKeywords = []string{"bullish", "moon", "buy", "calls", "rocket", "yolo", "diamond hands", "hodl", "breakout", "pump"}
	redditBearishKeywords = []string{"bearish", "puts", "sell", "crash", "dump", "rip", "dead", "overvalued", "short"}

	twitterBullishKeywords = []string{"bullish", "long", "buy", "moon", "calls", "breakout", "undervalued"}
	twitterBearishKeywords = []string{"bearish", "short", "sell", "puts", "crash", "overvalued", "dump"}
)

// scoreSentiment counts keyword hits across documents and maps them to a
// 0..1 score. No hits at all reads as neutral.
func scoreSentiment(results []SearchResult, bullish, bearish []string) float64 {
	bullCount := 0
	bearCount := 0
	for _, r := range results {
		combined := strings.ToLower(r.Title + " " + r.Text)
		for _, word := range bullish {
			if strings.Contains(combined, word) {
				bullCount++
			}
		}
		for _, word := range bearish {
			if strings.Contains(combined, word) {
				bearCount++
			}
		}
	}
	total := bullCount + bearCount
	if total == 0 {
		return 0.5
	}
	return float64(bullCount) / float64(total)
}

// sentimentLabel maps a 0..1 score to its label.
func sentimentLabel(score float64) string {
	switch {
	case score >= 0.7:
		return "VERY BULLISH"
	case score >= 0.55:
		return "BULLISH"
	case score >= 0.45:
		return "NEUTRAL"
	case score >= 0.3:
		return "BEARISH"
	default:
		return "VERY BEARISH"
	}
}

type redditSentimentRepository struct {
	search SearchClient
	logger *logger.Logger
}

// NewRedditSentimentRepository creates the Reddit sentiment signal provider.
func NewRedditSentimentRepository(search SearchClient, log *logger.Logger) SignalProvider {
	return &redditSentimentRepository{search: search, logger: log}
}

func (r *redditSentimentRepository) Kind() dto.SignalKind {
	return dto.SignalReddit
}

func (r *redditSentimentRepository) Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error) {
	results, err := r.search.Search(ctx, SearchQuery{
		Query:          fmt.Sprintf("%s stock discussion sentiment reddit wallstreetbets investing", ticker),
		NumResults:     30,
		IncludeDomains: []string{"reddit.com"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reddit sentiment: %w", err)
	}

	score := utils.RoundTo(scoreSentiment(results, redditBullishKeywords, redditBearishKeywords), 2)
	return &dto.SignalResult{
		Kind: dto.SignalReddit,
		Sentiment: &dto.SentimentReading{
			Score:         score,
			Label:         sentimentLabel(score),
			MentionVolume: len(results),
			Trending:      len(results) > 20,
		},
	}, nil
}

type twitterSentimentRepository struct {
	search SearchClient
	logger *logger.Logger
}

// NewTwitterSentimentRepository creates the Twitter sentiment signal provider.
func NewTwitterSentimentRepository(search SearchClient, log *logger.Logger) SignalProvider {
	return &twitterSentimentRepository{search: search, logger: log}
}

func (r *twitterSentimentRepository) Kind() dto.SignalKind {
	return dto.SignalTwitter
}

func (r *twitterSentimentRepository) Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error) {
	results, err := r.search.Search(ctx, SearchQuery{
		Query:          fmt.Sprintf("%s stock fintwit twitter sentiment analysis", ticker),
		NumResults:     25,
		IncludeDomains: []string{"twitter.com", "x.com", "stocktwits.com"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan twitter sentiment: %w", err)
	}

	score := utils.RoundTo(scoreSentiment(results, twitterBullishKeywords, twitterBearishKeywords), 2)
	return &dto.SignalResult{
		Kind: dto.SignalTwitter,
		Sentiment: &dto.SentimentReading{
			Score:         score,
			Label:         sentimentLabel(score),
			MentionVolume: len(results),
			Trending:      len(results) > 15,
		},
	}, nil
}
