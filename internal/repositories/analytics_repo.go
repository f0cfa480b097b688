package repositories

import (
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/jokkoai/multilingual-chatbot-be/internal/models"
	"gorm.io/gorm"
)

// AnalyticsRepo interface for per-user analytics counters
type AnalyticsRepo interface {
	RecordInteraction(userID, language string, topics []string) error
	FindByUserID(userID string) (*models.UserAnalytics, error)
}

type analyticsRepo struct {
	db *gorm.DB
}

// NewAnalyticsRepo creates a new analytics repository
func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepo {
	return &analyticsRepo{db: db}
}

// RecordInteraction bumps the message counter for a user, creating the
// row on first contact.
func (r *analyticsRepo) RecordInteraction(userID, language string, topics []string) error {
	var existing models.UserAnalytics
	err := r.db.Where("user_id = ?", userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&models.UserAnalytics{
			UserID:          userID,
			Language:        language,
			MessageCount:    1,
			LastInteraction: time.Now(),
			Topics:          pq.StringArray(topics),
		}).Error
	}
	if err != nil {
		return err
	}

	return r.db.Model(&existing).Updates(map[string]interface{}{
		"message_count":    gorm.Expr("message_count + 1"),
		"last_interaction": time.Now(),
		"language":         language,
		"topics":           pq.StringArray(topics),
	}).Error
}

func (r *analyticsRepo) FindByUserID(userID string) (*models.UserAnalytics, error) {
	var analytics models.UserAnalytics
	err := r.db.Where("user_id = ?", userID).First(&analytics).Error
	if err != nil {
		return nil, err
	}
	return &analytics, nil
}
