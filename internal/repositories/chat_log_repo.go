package repositories

import (
	"math"

	"github.com/jokkoai/multilingual-chatbot-be/internal/core/analytics"
	"github.com/jokkoai/multilingual-chatbot-be/internal/models"
	"gorm.io/gorm"
)

// ChatLogRepo interface for chat log database operations
type ChatLogRepo interface {
	Create(log *models.ChatLog) error
	FindByUserID(userID string, limit int) ([]models.ChatLog, error)
	Stats(days int) (*models.ChatStats, error)
}

type chatLogRepo struct {
	db         *gorm.DB
	aggregator *analytics.Aggregator
}

// NewChatLogRepo creates a new chat log repository
func NewChatLogRepo(db *gorm.DB) ChatLogRepo {
	return &chatLogRepo{
		db:         db,
		aggregator: analytics.NewAggregator(db),
	}
}

func (r *chatLogRepo) Create(log *models.ChatLog) error {
	return r.db.Create(log).Error
}

func (r *chatLogRepo) FindByUserID(userID string, limit int) ([]models.ChatLog, error) {
	var logs []models.ChatLog
	query := r.db.Where("user_id = ?", userID).Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&logs).Error
	return logs, err
}

// Stats aggregates chat activity over the last `days` days.
func (r *chatLogRepo) Stats(days int) (*models.ChatStats, error) {
	table := models.ChatLog{}.TableName()
	window := analytics.LastDays("timestamp", days)

	total, err := r.aggregator.Count(table, window)
	if err != nil {
		return nil, err
	}

	uniqueUsers, err := r.aggregator.CountDistinct(table, "user_id", window)
	if err != nil {
		return nil, err
	}

	byLanguageRows, err := r.aggregator.Aggregate(analytics.AggregateQuery{
		Table:      table,
		GroupBy:    []string{"language"},
		Aggregates: map[string]string{"total": "COUNT(*)"},
		DateRange:  window,
	})
	if err != nil {
		return nil, err
	}

	byLanguage := make(map[string]int64, len(byLanguageRows))
	for _, row := range byLanguageRows {
		if lang, ok := row["language"].(string); ok {
			byLanguage[lang] = rowCount(row["total"])
		}
	}

	avgTime, err := r.aggregator.Average(table, "processing_time", window)
	if err != nil {
		return nil, err
	}

	return &models.ChatStats{
		TotalMessages:         total,
		UniqueUsers:           uniqueUsers,
		MessagesByLanguage:    byLanguage,
		AverageProcessingTime: math.Round(avgTime*100) / 100,
		PeriodDays:            days,
	}, nil
}

func rowCount(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
