package model

import "time"

// swagger:model CalendarEvent
type CalendarEvent struct {
	BaseModel
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	StartTime time.Time `gorm:"index;not null" json:"startTime"`
	Type      string    `gorm:"size:20;default:'event'" json:"type"`
	Color     string    `gorm:"size:20" json:"color"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
