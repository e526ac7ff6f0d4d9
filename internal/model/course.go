package model

// swagger:model Course
type Course struct {
	BaseModel
	Title          string `gorm:"size:255;not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	ThumbnailURL   string `gorm:"size:255" json:"thumbnailUrl"`
	InstructorID   *uint  `gorm:"index" json:"instructorId"`
	InstructorName string `gorm:"size:100" json:"instructorName"`
}

func (Course) TableName() string {
	return "courses"
}
