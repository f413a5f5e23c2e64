package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResearchReport struct {
	ID           int64          `json:"id"`
	ReportID     string         `json:"report_id" gorm:"uniqueIndex"`
	Ticker       string         `json:"ticker" gorm:"index"`
	Mode         string         `json:"mode"`
	Action       string         `json:"action"`
	Conviction   int            `json:"conviction"`
	CurrentPrice float64        `json:"current_price"`
	TargetPrice  float64        `json:"target_price"`
	KeyPoints    pq.StringArray `json:"key_points" gorm:"type:text[]"`
	Data         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at"`
}

func (ResearchReport) TableName() string {
	return "research_reports"
}
