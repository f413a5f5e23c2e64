package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stock-research-service/internal/entity"
	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/common"
	"stock-research-service/pkg/logger"
	"stock-research-service/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type reportRepository struct {
	redisClient *redis.Client
	db          *gorm.DB
	logger      *logger.Logger
}

// NewReportRepository creates the report store. The latest report per
// ticker lives in Redis (last write wins); every report is also appended
// to the history table.
func NewReportRepository(redisClient *redis.Client, db *gorm.DB, log *logger.Logger) ReportRepository {
	return &reportRepository{
		redisClient: redisClient,
		db:          db,
		logger:      log,
	}
}

func (r *reportRepository) Save(ctx context.Context, report *dto.ResearchReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal research report: %w", err)
	}

	key := common.RedisKeyResearchReport + report.Ticker
	if err := r.redisClient.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save research report to redis: %w", err)
	}

	row := &entity.ResearchReport{
		ReportID:     report.ID,
		Ticker:       report.Ticker,
		Mode:         string(report.Mode),
		Action:       report.Action,
		Conviction:   report.Conviction,
		CurrentPrice: report.CurrentPrice,
		TargetPrice:  report.TargetPrice,
		KeyPoints:    report.Debate.KeyPoints,
		Data:         payload,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		// History is best effort; the redis copy is authoritative.
		r.logger.Warn("Failed to append report history row",
			logger.ErrorField(err), logger.StringField("ticker", report.Ticker))
	}
	return nil
}

func (r *reportRepository) GetLatest(ctx context.Context, ticker string) (*dto.ResearchReport, error) {
	key := common.RedisKeyResearchReport + ticker
	payload, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get research report from redis: %w", err)
	}

	var report dto.ResearchReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal research report: %w", err)
	}
	return &report, nil
}
