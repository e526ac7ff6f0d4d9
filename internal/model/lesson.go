package model

// Lesson is one unit of course content. VideoURL holds a URL for video and
// link lessons and a JSON question array for quiz lessons; decode it with
// content.Decode rather than reading it directly.
// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ContentType string `gorm:"size:20;default:'video'" json:"contentType"`
	VideoURL    string `gorm:"column:video_url;type:text" json:"-"`
	Order       int    `gorm:"column:sort_order;default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
