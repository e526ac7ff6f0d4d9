package repository

import (
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(msg *model.Message) error {
	return r.DB.Create(msg).Error
}

// Between returns the messages exchanged by two users, oldest first.
func (r *MessageRepository) Between(a, b uint, limit int) ([]model.Message, error) {
	var msgs []model.Message
	q := r.DB.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&msgs).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// ListForUser returns every message the user sent or received, newest first.
func (r *MessageRepository) ListForUser(userID uint) ([]model.Message, error) {
	var msgs []model.Message
	err := r.DB.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&msgs).Error
	return msgs, err
}

// MarkRead stamps unread messages from sender to recipient.
func (r *MessageRepository) MarkRead(senderID, recipientID uint) error {
	return r.DB.Model(&model.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", senderID, recipientID).
		Update("read_at", time.Now()).Error
}
