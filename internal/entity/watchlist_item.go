package entity

import (
	"time"

	"gorm.io/gorm"
)

type WatchlistItem struct {
	ID        uint           `gorm:"primaryKey"`
	Ticker    string         `gorm:"not null;uniqueIndex"`
	Mode      string         `gorm:"not null;default:standard"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
