package models

import (
	"time"

	"gorm.io/datatypes"
)

// WorkflowExecutionRecord is the persisted form of one workflow run.
// Records are upserted by execution_id and never mutated afterwards.
type WorkflowExecutionRecord struct {
	ID           uint           `json:"-" gorm:"primaryKey;autoIncrement"`
	ExecutionID  string         `json:"execution_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	WorkflowID   string         `json:"workflow_id" gorm:"type:varchar(255);not null;index"`
	TriggerData  datatypes.JSON `json:"trigger_data" gorm:"type:jsonb"`
	Status       string         `json:"status" gorm:"type:varchar(20);not null;index"` // 'running', 'completed', 'failed'
	StartTime    time.Time      `json:"start_time" gorm:"not null;index:,sort:desc"`
	EndTime      *time.Time     `json:"end_time,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty" gorm:"type:text"`
	Results      datatypes.JSON `json:"results,omitempty" gorm:"type:jsonb"`
}

// TableName specifies the table name for WorkflowExecutionRecord
func (WorkflowExecutionRecord) TableName() string {
	return "workflow_executions"
}
