package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatLog represents one recorded chat interaction
type ChatLog struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         string    `json:"user_id" gorm:"type:varchar(255);not null;index"`
	Message        string    `json:"message" gorm:"type:text;not null"`
	Response       string    `json:"response" gorm:"type:text;not null"`
	Language       string    `json:"language" gorm:"type:varchar(10);not null;index"`
	ProcessingTime float64   `json:"processing_time"` // seconds
	SessionID      *string   `json:"session_id,omitempty" gorm:"type:varchar(255)"`
	Timestamp      time.Time `json:"timestamp" gorm:"autoCreateTime;index:,sort:desc"`
}

// TableName specifies the table name for ChatLog
func (ChatLog) TableName() string {
	return "chat_logs"
}

// BeforeCreate sets UUID before creating
func (c *ChatLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ChatStats is the aggregate view over chat_logs for a time window
type ChatStats struct {
	TotalMessages         int64            `json:"total_messages"`
	UniqueUsers           int64            `json:"unique_users"`
	MessagesByLanguage    map[string]int64 `json:"messages_by_language"`
	AverageProcessingTime float64          `json:"average_processing_time"` // rounded to 2 decimals
	PeriodDays            int              `json:"period_days"`
}
