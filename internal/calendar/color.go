package calendar

const (
	TypeEvent    = "event"
	TypeDeadline = "deadline"
	TypeExam     = "exam"
	TypeMeeting  = "meeting"
)

// ColorFor returns the display color assigned to a new event of the given type.
func ColorFor(eventType string) string {
	switch eventType {
	case TypeExam:
		return "#fca5a5"
	case TypeDeadline:
		return "#fcd34d"
	default:
		return "#bfdbfe"
	}
}
