package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stock-research-service/internal/research/config"
	"stock-research-service/pkg/logger"
)

// SearchResult is one document returned by the web search API.
type SearchResult struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// SearchQuery describes one web search request.
type SearchQuery struct {
	Query          string   `json:"query"`
	NumResults     int      `json:"num_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

// SearchClient queries the web search API that backs the sentiment,
// institutional and options-flow signals.
type SearchClient interface {
	Search(ctx context.Context, query SearchQuery) ([]SearchResult, error)
}

type searchClient struct {
	client *http.Client
	cfg    *config.Config
	logger *logger.Logger
}

// NewSearchClient creates the web search client.
func NewSearchClient(cfg *config.Config, log *logger.Logger) SearchClient {
	return &searchClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:    cfg,
		logger: log,
	}
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

func (c *searchClient) Search(ctx context.Context, query SearchQuery) ([]SearchResult, error) {
	if query.NumResults <= 0 {
		query.NumResults = c.cfg.Search.MaxResults
	}
	if query.NumResults <= 0 {
		query.NumResults = 20
	}

	jsonPayload, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	apiURL := fmt.Sprintf("%s/search", c.cfg.Search.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.cfg.Search.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from search API: %d - %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return searchResp.Results, nil
}
