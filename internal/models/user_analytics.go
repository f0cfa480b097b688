package models

import (
	"time"

	"github.com/lib/pq"
)

// UserAnalytics tracks per-user interaction counters
type UserAnalytics struct {
	ID              uint           `json:"-" gorm:"primaryKey;autoIncrement"`
	UserID          string         `json:"user_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	Language        string         `json:"language" gorm:"type:varchar(10);not null"`
	MessageCount    int            `json:"message_count" gorm:"default:1"`
	LastInteraction time.Time      `json:"last_interaction" gorm:"autoUpdateTime"`
	Topics          pq.StringArray `json:"topics,omitempty" gorm:"type:text[]"`
}

// TableName specifies the table name for UserAnalytics
func (UserAnalytics) TableName() string {
	return "user_analytics"
}
