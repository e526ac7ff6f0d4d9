package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"learnhub_backend/internal/calendar"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

const (
	ViewMonth     = "month"
	ViewDashboard = "dashboard"
)

// ErrInvalidEventTime is returned when the date or clock fields don't parse.
var ErrInvalidEventTime = errors.New("invalid event date or time")

type CreateEventInput struct {
	Title string `json:"title" binding:"required,max=255"`
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Type  string `json:"type" binding:"omitempty,oneof=event deadline exam meeting"`
}

type GridView struct {
	Year      int             `json:"year"`
	Month     time.Month      `json:"month"`
	MonthName string          `json:"monthName"`
	WeekStart string          `json:"weekStart"`
	Cells     []calendar.Cell `json:"cells"`
}

type CalendarService struct {
	EventRepo *repository.CalendarEventRepository
	Location  *time.Location
	now       func() time.Time
}

func NewCalendarService(eventRepo *repository.CalendarEventRepository, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{
		EventRepo: eventRepo,
		Location:  loc,
		now:       time.Now,
	}
}

func (s *CalendarService) ListEvents(id util.Identity) ([]model.CalendarEvent, error) {
	return s.EventRepo.ListByUser(id.UserID)
}

// Grid lays out the caller's events for one month. view selects the weekday
// convention; selected may be zero.
func (s *CalendarService) Grid(id util.Identity, view string, year int, month time.Month, selected time.Time) (*GridView, error) {
	builder := calendar.MonthView
	if view == ViewDashboard {
		builder = calendar.DashboardView
	}
	builder = builder.In(s.Location)

	first := time.Date(year, month, 1, 0, 0, 0, 0, s.Location)
	next := first.AddDate(0, 1, 0)

	stored, err := s.EventRepo.ListByUserBetween(id.UserID, first, next)
	if err != nil {
		return nil, err
	}
	events := make([]calendar.Event, 0, len(stored))
	for _, e := range stored {
		events = append(events, calendar.Event{
			ID:    e.ID,
			Title: e.Title,
			Type:  e.Type,
			Color: e.Color,
			Start: e.StartTime,
		})
	}

	return &GridView{
		Year:      first.Year(),
		Month:     first.Month(),
		MonthName: first.Month().String(),
		WeekStart: builder.WeekStart.String(),
		Cells:     builder.Build(first.Year(), first.Month(), events, selected, s.now().In(s.Location)),
	}, nil
}

// CreateEvent stores a new event for the caller. The date and clock time are
// read in the calendar location and the color follows the event type.
func (s *CalendarService) CreateEvent(id util.Identity, in CreateEventInput) (*model.CalendarEvent, error) {
	start, err := time.ParseInLocation(util.DateFormat+" "+util.ClockFormat,
		strings.TrimSpace(in.Date)+" "+strings.TrimSpace(in.Time), s.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEventTime, err)
	}

	eventType := in.Type
	if eventType == "" {
		eventType = calendar.TypeEvent
	}

	event := &model.CalendarEvent{
		UserID:    id.UserID,
		Title:     strings.TrimSpace(in.Title),
		StartTime: start,
		Type:      eventType,
		Color:     calendar.ColorFor(eventType),
	}
	if err := s.EventRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes one of the caller's events. Admins may delete any event.
func (s *CalendarService) DeleteEvent(id util.Identity, eventID uint) error {
	event, err := s.EventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEventNotFound
		}
		return err
	}
	if event.UserID != id.UserID && !id.IsAdmin() {
		return util.ErrPermissionDenied
	}
	return s.EventRepo.Delete(eventID)
}
