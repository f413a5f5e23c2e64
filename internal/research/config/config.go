package config

import (
	"fmt"
	"time"

	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/config"
)

// Oracle selects the reasoning provider and its call policy.
type Oracle struct {
	Provider   string        `mapstructure:"provider"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// OpenAI holds the configuration for OpenAI-compatible chat APIs.
type OpenAI struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// MarketData holds the configuration for the price snapshot API.
type MarketData struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// SignalsAPI holds the configuration for the fundamentals and flow API
// (financial metrics, 13F changes, insider trades, options activity).
type SignalsAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// News holds the configuration for the news signal provider.
type News struct {
	FeedURL       string `mapstructure:"feed_url"`
	MaxArticles   int    `mapstructure:"max_articles"`
	FetchArticles bool   `mapstructure:"fetch_articles"`
}

// Search holds the configuration for the web search API backing the
// sentiment, institutional and options-flow providers.
type Search struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	MaxResults int    `mapstructure:"max_results"`
}

// Watchlist holds the configuration for scheduled re-research.
type Watchlist struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
	Mode     string `mapstructure:"mode"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the research service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	API        config.API      `mapstructure:"api"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	Oracle     Oracle          `mapstructure:"oracle"`
	Gemini     Gemini          `mapstructure:"gemini"`
	OpenAI     OpenAI          `mapstructure:"openai"`
	MarketData MarketData      `mapstructure:"market_data"`
	SignalsAPI SignalsAPI      `mapstructure:"signals_api"`
	News       News            `mapstructure:"news"`
	Search     Search          `mapstructure:"search"`
	Watchlist  Watchlist       `mapstructure:"watchlist"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

// Load loads the research service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Oracle.Timeout <= 0 {
		cfg.Oracle.Timeout = 90 * time.Second
	}
	if cfg.Oracle.MaxRetries < 0 {
		cfg.Oracle.MaxRetries = 0
	}
	if cfg.Oracle.RetryDelay <= 0 {
		cfg.Oracle.RetryDelay = 500 * time.Millisecond
	}
	return &cfg, nil
}

// ModeSettings describe how deep a research run goes for one mode.
type ModeSettings struct {
	Rounds  int
	Signals []dto.SignalKind
}

var modeTable = map[dto.ResearchMode]ModeSettings{
	dto.ModeQuick: {
		Rounds:  1,
		Signals: []dto.SignalKind{dto.SignalPrice, dto.SignalFinancials, dto.SignalNews},
	},
	dto.ModeStandard: {
		Rounds: 2,
		Signals: []dto.SignalKind{
			dto.SignalPrice, dto.SignalFinancials, dto.SignalNews,
			dto.SignalReddit, dto.SignalTwitter, dto.SignalInstitutional, dto.SignalInsider,
		},
	},
	dto.ModeDeep: {
		Rounds: 3,
		Signals: []dto.SignalKind{
			dto.SignalPrice, dto.SignalFinancials, dto.SignalNews,
			dto.SignalReddit, dto.SignalTwitter, dto.SignalInstitutional, dto.SignalInsider,
			dto.SignalOptions,
		},
	},
}

// SettingsForMode resolves the round count and enabled signals for a mode.
func SettingsForMode(mode dto.ResearchMode) (ModeSettings, error) {
	settings, ok := modeTable[mode]
	if !ok {
		return ModeSettings{}, fmt.Errorf("unknown research mode %q", mode)
	}
	return settings, nil
}
