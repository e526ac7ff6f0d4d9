package service

import (
	"context"
	"testing"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDashboard(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	teacher := f.user(t, "alan@example.com")

	active := f.course(t, "Algebra")
	done := f.course(t, "Geometry")
	f.course(t, "Unrelated")
	f.enroll(t, learner.UserID, active.ID)
	f.enroll(t, learner.UserID, done.ID)
	require.NoError(t, f.enrollments.MarkCompleted(context.Background(), learner.UserID, done.ID))

	require.NoError(t, f.messages.Create(&model.Message{SenderID: teacher.UserID, RecipientID: learner.UserID, Content: "hi"}))
	require.NoError(t, f.attempts.Create(context.Background(), &model.QuizAttempt{UserID: learner.UserID, LessonID: 1, Score: 1, Total: 2}))
	require.NoError(t, f.attempts.Create(context.Background(), &model.QuizAttempt{UserID: learner.UserID, LessonID: 1, Score: 2, Total: 2, Passed: true}))

	calendar := NewCalendarService(f.events, time.UTC)
	calendar.now = func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }

	svc := NewDashboardService(
		repository.NewDashboardRepository(f.db),
		NewUserService(f.users, NewStorageService(f.cfg)),
		NewCourseService(f.courses, f.lessons, f.enrollments, nil, time.Minute),
		calendar,
	)

	d, err := svc.GetUserDashboard(learner)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", d.Profile.Email)
	assert.Len(t, d.Courses, 2)
	assert.Equal(t, 1, d.Active)
	assert.Equal(t, 1, d.Completed)

	require.NotNil(t, d.Calendar)
	assert.Equal(t, 2024, d.Calendar.Year)
	assert.Equal(t, time.January, d.Calendar.Month)
	assert.Equal(t, "Monday", d.Calendar.WeekStart)
	var selected []int
	for _, c := range d.Calendar.Cells {
		if c.IsSelected {
			selected = append(selected, c.Day)
		}
	}
	assert.Equal(t, []int{10}, selected)

	require.NotNil(t, d.Activity)
	assert.Equal(t, int64(1), d.Activity.UnreadMessages)
	assert.Equal(t, int64(2), d.Activity.QuizAttempts)
	assert.Equal(t, int64(1), d.Activity.QuizzesPassed)
}
