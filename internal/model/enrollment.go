package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID      uint       `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID    uint       `gorm:"not null;uniqueIndex:idx_enrollment_user_course;index" json:"courseId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
