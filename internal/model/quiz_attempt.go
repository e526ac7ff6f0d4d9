package model

// QuizAttempt records the outcome of one completed quiz playthrough.
type QuizAttempt struct {
	BaseModel
	UserID   uint `gorm:"index;not null" json:"userId"`
	CourseID uint `gorm:"index" json:"courseId"`
	LessonID uint `gorm:"index;not null" json:"lessonId"`
	Score    int  `gorm:"not null" json:"score"`
	Total    int  `gorm:"not null" json:"total"`
	Passed   bool `gorm:"default:false" json:"passed"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
