package repository

import (
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CalendarEventRepository struct {
	DB *gorm.DB
}

func NewCalendarEventRepository(db *gorm.DB) *CalendarEventRepository {
	return &CalendarEventRepository{DB: db}
}

func (r *CalendarEventRepository) Create(event *model.CalendarEvent) error {
	return r.DB.Create(event).Error
}

func (r *CalendarEventRepository) FindByID(id uint) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	err := r.DB.First(&event, id).Error
	return &event, err
}

func (r *CalendarEventRepository) ListByUser(userID uint) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.DB.Where("user_id = ?", userID).Order("start_time ASC").Find(&events).Error
	return events, err
}

// ListByUserBetween returns events starting in [from, to).
func (r *CalendarEventRepository) ListByUserBetween(userID uint, from, to time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.DB.Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *CalendarEventRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CalendarEvent{}, id).Error
}
