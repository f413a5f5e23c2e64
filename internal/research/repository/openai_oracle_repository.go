package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stock-research-service/internal/research/config"
	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/logger"

	"golang.org/x/time/rate"
)

type openaiOracleRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewOpenAIOracleRepository creates an OracleRepository backed by an
// OpenAI-compatible chat completion API.
func NewOpenAIOracleRepository(cfg *config.Config, log *logger.Logger) (OracleRepository, error) {
	if cfg.OpenAI.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("openai max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.OpenAI.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &openaiOracleRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}, nil
}

// Complete sends one prompt to the chat completion API and returns the
// cleaned text.
func (r *openaiOracleRepository) Complete(ctx context.Context, prompt string, opts dto.OracleOptions) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.logger.Error("failed to wait for request limit", logger.ErrorField(err))
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.OpenAIChatRequest{
		Model: r.cfg.OpenAI.Model,
		Messages: []dto.OpenAIMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/chat/completions", r.cfg.OpenAI.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.OpenAI.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to chat API", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to chat API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from chat API", logger.IntField("status_code", resp.StatusCode))
		return "", fmt.Errorf("received non-OK response from chat API: %d - %s", resp.StatusCode, string(body))
	}

	var chatResp dto.OpenAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("invalid response from chat API: no choices found")
	}

	text := chatResp.Choices[0].Message.Content
	text = strings.Trim(text, "`json\n`")
	return strings.TrimSpace(text), nil
}
