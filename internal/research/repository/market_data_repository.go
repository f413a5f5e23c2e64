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

	"golang.org/x/time/rate"
)

// MarketDataRepository serves price snapshots, both as a raw quote lookup
// and as the price signal provider.
type MarketDataRepository interface {
	SignalProvider
	GetSnapshot(ctx context.Context, ticker string) (*dto.PriceSnapshot, error)
}

type marketDataRepository struct {
	client  *http.Client
	cfg     *config.Config
	logger  *logger.Logger
	limiter *rate.Limiter
}

// NewMarketDataRepository creates the price snapshot repository.
func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) (MarketDataRepository, error) {
	maxPerMinute := cfg.MarketData.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	return &marketDataRepository{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:     cfg,
		logger:  log,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1),
	}, nil
}

func (r *marketDataRepository) Kind() dto.SignalKind {
	return dto.SignalPrice
}

func (r *marketDataRepository) Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error) {
	snapshot, err := r.GetSnapshot(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return &dto.SignalResult{Kind: dto.SignalPrice, Price: snapshot}, nil
}

type snapshotResponse struct {
	Snapshot struct {
		Price            float64 `json:"price"`
		DayChange        float64 `json:"day_change"`
		DayChangePercent float64 `json:"day_change_percent"`
		Volume           int64   `json:"volume"`
		MarketCap        float64 `json:"market_cap"`
		Time             string  `json:"time"`
	} `json:"snapshot"`
}

// GetSnapshot fetches the latest quote for a ticker.
func (r *marketDataRepository) GetSnapshot(ctx context.Context, ticker string) (*dto.PriceSnapshot, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	apiURL := fmt.Sprintf("%s/prices/snapshot/?ticker=%s", r.cfg.MarketData.BaseURL, ticker)
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("X-API-KEY", r.cfg.MarketData.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from market data API: %d - %s", resp.StatusCode, string(body))
	}

	var snapResp snapshotResponse
	if err := json.NewDecoder(resp.Body).Decode(&snapResp); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot response: %w", err)
	}
	if snapResp.Snapshot.Price <= 0 {
		return nil, fmt.Errorf("no price data for %s", ticker)
	}

	timestamp, err := time.Parse(time.RFC3339, snapResp.Snapshot.Time)
	if err != nil {
		timestamp = time.Now().UTC()
	}

	return &dto.PriceSnapshot{
		Price:         snapResp.Snapshot.Price,
		Change:        snapResp.Snapshot.DayChange,
		ChangePercent: snapResp.Snapshot.DayChangePercent,
		Volume:        snapResp.Snapshot.Volume,
		MarketCap:     snapResp.Snapshot.MarketCap,
		Timestamp:     timestamp,
	}, nil
}
