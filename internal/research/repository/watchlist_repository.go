package repository

import (
	"context"
	"strings"

	"stock-research-service/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewWatchlistRepository creates a new GORM-based watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

type watchlistRepository struct {
	db *gorm.DB
}

// Add inserts a ticker or reactivates it with the given mode.
func (r *watchlistRepository) Add(ctx context.Context, ticker, mode string) error {
	item := &entity.WatchlistItem{
		Ticker:   strings.ToUpper(ticker),
		Mode:     mode,
		IsActive: true,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticker"}},
			DoUpdates: clause.AssignmentColumns([]string{"mode", "is_active"}),
		}).
		Create(item).Error
}

// Remove deactivates a ticker.
func (r *watchlistRepository) Remove(ctx context.Context, ticker string) error {
	return r.db.WithContext(ctx).
		Model(&entity.WatchlistItem{}).
		Where("ticker = ?", strings.ToUpper(ticker)).
		Update("is_active", false).Error
}

// GetActive retrieves all active watchlist entries.
func (r *watchlistRepository) GetActive(ctx context.Context) ([]WatchlistEntry, error) {
	var items []entity.WatchlistItem
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&items).Error; err != nil {
		return nil, err
	}
	entries := make([]WatchlistEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, WatchlistEntry{Ticker: item.Ticker, Mode: item.Mode})
	}
	return entries, nil
}
