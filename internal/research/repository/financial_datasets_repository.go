package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stock-research-service/internal/research/config"
	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/logger"
)

type financialDatasetsClient struct {
	client *http.Client
	cfg    *config.Config
	logger *logger.Logger
}

func (c *financialDatasetsClient) get(ctx context.Context, path string, out interface{}) error {
	apiURL := fmt.Sprintf("%s%s", c.cfg.SignalsAPI.BaseURL, path)
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.cfg.SignalsAPI.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to signals API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("received non-OK response from signals API: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode signals API response: %w", err)
	}
	return nil
}

type financialMetricsResponse struct {
	FinancialMetrics []struct {
		PriceToEarningsRatio float64 `json:"price_to_earnings_ratio"`
		NetMargin            float64 `json:"net_margin"`
		RevenueGrowth        float64 `json:"revenue_growth"`
		EarningsPerShare     float64 `json:"earnings_per_share"`
		DebtToEquity         float64 `json:"debt_to_equity"`
		Period               string  `json:"period"`
	} `json:"financial_metrics"`
}

type financialMetricsRepository struct {
	financialDatasetsClient
}

// NewFinancialMetricsRepository creates the fundamentals signal provider.
func NewFinancialMetricsRepository(cfg *config.Config, log *logger.Logger) SignalProvider {
	return &financialMetricsRepository{financialDatasetsClient{
		client: &http.Client{Timeout: 30 * time.Second},
		cfg:    cfg,
		logger: log,
	}}
}

func (r *financialMetricsRepository) Kind() dto.SignalKind {
	return dto.SignalFinancials
}

func (r *financialMetricsRepository) Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error) {
	var metricsResp financialMetricsResponse
	path := fmt.Sprintf("/financial-metrics/?ticker=%s&period=quarterly&limit=1", ticker)
	if err := r.get(ctx, path, &metricsResp); err != nil {
		return nil, fmt.Errorf("failed to fetch financial metrics: %w", err)
	}
	if len(metricsResp.FinancialMetrics) == 0 {
		return nil, fmt.Errorf("no financial metrics for %s", ticker)
	}

	m := metricsResp.FinancialMetrics[0]
	period := m.Period
	if period == "" {
		period = "quarterly"
	}
	return &dto.SignalResult{
		Kind: dto.SignalFinancials,
		Financials: &dto.FinancialMetrics{
			PERatio:       m.PriceToEarningsRatio,
			ProfitMargin:  m.NetMargin,
			RevenueGrowth: m.RevenueGrowth,
			EPS:           m.EarningsPerShare,
			EPSPeriod:     period,
			DebtToEquity:  m.DebtToEquity,
		},
	}, nil
}

type insiderTradesResponse struct {
	InsiderTrades []struct {
		Name            string  `json:"name"`
		Title           string  `json:"title"`
		TransactionType string  `json:"transaction_type"`
		Shares          int64   `json:"transaction_shares"`
		Value           float64 `json:"transaction_value"`
		Date            string  `json:"transaction_date"`
	} `json:"insider_trades"`
}

type insiderTradesRepository struct {
	financialDatasetsClient
}

// NewInsiderTradesRepository creates the insider trades signal provider.
func NewInsiderTradesRepository(cfg *config.Config, log *logger.Logger) SignalProvider {
	return &insiderTradesRepository{financialDatasetsClient{
		client: &http.Client{Timeout: 30 * time.Second},
		cfg:    cfg,
		logger: log,
	}}
}

func (r *insiderTradesRepository) Kind() dto.SignalKind {
	return dto.SignalInsider
}

func (r *insiderTradesRepository) Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error) {
	var tradesResp insiderTradesResponse
	path := fmt.Sprintf("/insider-trades/?ticker=%s&limit=10", ticker)
	if err := r.get(ctx, path, &tradesResp); err != nil {
		return nil, fmt.Errorf("failed to fetch insider trades: %w", err)
	}

	trades := make([]dto.InsiderTrade, 0, len(tradesResp.InsiderTrades))
	for _, t := range tradesResp.InsiderTrades {
		trades = append(trades, dto.InsiderTrade{
			Name:   t.Name,
			Title:  t.Title,
			Type:   t.TransactionType,
			Shares: t.Shares,
			Value:  t.Value,
			Date:   t.Date,
		})
	}

	return &dto.SignalResult{
		Kind: dto.SignalInsider,
		Insider: &dto.InsiderActivity{
			Trades: trades,
			Count:  len(trades),
		},
	}, nil
}
