package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

// ActivitySummary counts the learner-facing activity shown beside the course list.
type ActivitySummary struct {
	UnreadMessages int64 `json:"unreadMessages"`
	QuizAttempts   int64 `json:"quizAttempts"`
	QuizzesPassed  int64 `json:"quizzesPassed"`
}

func (r *DashboardRepository) ActivitySummary(userID uint) (*ActivitySummary, error) {
	var s ActivitySummary

	if err := r.DB.Model(&model.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&s.UnreadMessages).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ?", userID).
		Count(&s.QuizAttempts).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&s.QuizzesPassed).Error; err != nil {
		return nil, err
	}

	return &s, nil
}
