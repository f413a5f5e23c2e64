package dto

import "time"

// SignalKind identifies one research data source.
type SignalKind string

const (
	SignalPrice         SignalKind = "price"
	SignalFinancials    SignalKind = "financials"
	SignalNews          SignalKind = "news"
	SignalReddit        SignalKind = "reddit_sentiment"
	SignalTwitter       SignalKind = "twitter_sentiment"
	SignalInstitutional SignalKind = "institutional_activity"
	SignalInsider       SignalKind = "insider_trades"
	SignalOptions       SignalKind = "unusual_options"
)

// PriceSnapshot is the latest quote for a ticker.
type PriceSnapshot struct {
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	MarketCap     float64   `json:"market_cap"`
	Timestamp     time.Time `json:"timestamp"`
}

// FinancialMetrics holds the fundamentals used for scoring.
type FinancialMetrics struct {
	PERatio       float64 `json:"pe_ratio"`
	ProfitMargin  float64 `json:"profit_margin"`
	RevenueGrowth float64 `json:"revenue_growth"`
	EPS           float64 `json:"eps"`
	EPSPeriod     string  `json:"eps_period"`
	DebtToEquity  float64 `json:"debt_to_equity"`
}

// NewsArticle is one headline with optional extracted body text.
type NewsArticle struct {
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
	Excerpt   string    `json:"excerpt,omitempty"`
}

// NewsDigest is the recent news for a ticker.
type NewsDigest struct {
	Articles []NewsArticle `json:"articles"`
	Count    int           `json:"count"`
}

// SentimentReading is a social sentiment measurement on a 0..1 scale.
type SentimentReading struct {
	Score         float64 `json:"sentiment_score"`
	Label         string  `json:"sentiment_label"`
	MentionVolume int     `json:"mention_volume"`
	Trending      bool    `json:"trending"`
}

// Institutional activity levels derived from 13F position changes.
const (
	ActivityStrongBuying  = "STRONG BUYING"
	ActivityNetBuying     = "NET BUYING"
	ActivityNeutral       = "NEUTRAL"
	ActivityNetSelling    = "NET SELLING"
	ActivityStrongSelling = "STRONG SELLING"
)

// InstitutionalActivity summarizes 13F position changes for a quarter.
type InstitutionalActivity struct {
	ActivityLevel string `json:"activity_level"`
	NewPositions  int    `json:"new_positions"`
	Increased     int    `json:"increased_positions"`
	Decreased     int    `json:"decreased_positions"`
	Exited        int    `json:"exited_positions"`
}

// InsiderTrade is one reported insider transaction.
type InsiderTrade struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Type   string  `json:"transaction_type"`
	Shares int64   `json:"shares"`
	Value  float64 `json:"value"`
	Date   string  `json:"date"`
}

// InsiderActivity is the recent insider transactions for a ticker.
type InsiderActivity struct {
	Trades []InsiderTrade `json:"trades"`
	Count  int            `json:"count"`
}

// Directional bias of unusual options flow.
const (
	BiasBullish = "BULLISH"
	BiasBearish = "BEARISH"
	BiasMixed   = "MIXED"
)

// UnusualOptionsActivity flags abnormal options flow.
type UnusualOptionsActivity struct {
	Detected      bool     `json:"unusual_detected"`
	Bias          string   `json:"bias"`
	ActivityTypes []string `json:"activity_types"`
}

// SignalResult is the outcome of fetching one signal. Exactly one payload
// pointer is set on success; Error is set instead when the fetch failed.
type SignalResult struct {
	Kind          SignalKind              `json:"kind"`
	Price         *PriceSnapshot          `json:"price,omitempty"`
	Financials    *FinancialMetrics       `json:"financials,omitempty"`
	News          *NewsDigest             `json:"news,omitempty"`
	Sentiment     *SentimentReading       `json:"sentiment,omitempty"`
	Institutional *InstitutionalActivity  `json:"institutional,omitempty"`
	Insider       *InsiderActivity        `json:"insider,omitempty"`
	Options       *UnusualOptionsActivity `json:"options,omitempty"`
	Error         string                  `json:"error,omitempty"`
}

// Failed reports whether the fetch for this signal failed.
func (r SignalResult) Failed() bool {
	return r.Error != ""
}

// SignalBundle holds every gathered signal for one research run. It is
// built once by the aggregator and read-only afterwards.
type SignalBundle struct {
	Ticker  string                      `json:"ticker"`
	Signals map[SignalKind]SignalResult `json:"signals"`
}

// Get returns the result for a kind and whether it was gathered at all.
func (b *SignalBundle) Get(kind SignalKind) (SignalResult, bool) {
	if b == nil || b.Signals == nil {
		return SignalResult{}, false
	}
	r, ok := b.Signals[kind]
	return r, ok
}

// Payload returns the successful result for a kind, or false when the
// signal was skipped or failed.
func (b *SignalBundle) Payload(kind SignalKind) (SignalResult, bool) {
	r, ok := b.Get(kind)
	if !ok || r.Failed() {
		return SignalResult{}, false
	}
	return r, true
}
