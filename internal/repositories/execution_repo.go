package repositories

import (
	"github.com/jokkoai/multilingual-chatbot-be/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExecutionRepo interface for workflow execution records
type ExecutionRepo interface {
	Upsert(record *models.WorkflowExecutionRecord) error
	FindByExecutionID(executionID string) (*models.WorkflowExecutionRecord, error)
	FindByWorkflowID(workflowID string, limit int) ([]models.WorkflowExecutionRecord, error)
}

type executionRepo struct {
	db *gorm.DB
}

// NewExecutionRepo creates a new execution repository
func NewExecutionRepo(db *gorm.DB) ExecutionRepo {
	return &executionRepo{db: db}
}

// Upsert inserts or replaces a record keyed by execution_id.
func (r *executionRepo) Upsert(record *models.WorkflowExecutionRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "execution_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"workflow_id", "trigger_data", "status",
			"start_time", "end_time", "error_message", "results",
		}),
	}).Create(record).Error
}

func (r *executionRepo) FindByExecutionID(executionID string) (*models.WorkflowExecutionRecord, error) {
	var record models.WorkflowExecutionRecord
	err := r.db.Where("execution_id = ?", executionID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *executionRepo) FindByWorkflowID(workflowID string, limit int) ([]models.WorkflowExecutionRecord, error) {
	var records []models.WorkflowExecutionRecord
	query := r.db.Where("workflow_id = ?", workflowID).Order("start_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}
