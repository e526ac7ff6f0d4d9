package model

import (
	"time"
)

// Message is a direct message between two users.
type Message struct {
	BaseModel
	SenderID    uint       `gorm:"index:idx_message_pair;not null" json:"senderId"`
	RecipientID uint       `gorm:"index:idx_message_pair;index;not null" json:"recipientId"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
