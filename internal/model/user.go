package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// User doubles as the learner profile.
// swagger:model User
type User struct {
	BaseModel
	Email       string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	FullName    string    `gorm:"size:100" json:"fullName"`
	AvatarURL   string    `gorm:"size:255" json:"avatarUrl"`
	Description string    `gorm:"type:text" json:"description"`
	Role        UserRole  `gorm:"size:20;default:'student'" json:"role"`
	LastSeen    time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
