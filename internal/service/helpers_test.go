package service

import (
	"testing"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/quiz"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/testutil"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	users       *repository.UserRepository
	courses     *repository.CourseRepository
	lessons     *repository.LessonRepository
	enrollments *repository.EnrollmentRepository
	events      *repository.CalendarEventRepository
	messages    *repository.MessageRepository
	attempts    *repository.QuizAttemptRepository
	cfg         *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = util.StorageLocal
	cfg.Storage.LocalPath = t.TempDir()
	return &fixture{
		db:          db,
		users:       repository.NewUserRepository(db),
		courses:     repository.NewCourseRepository(db),
		lessons:     repository.NewLessonRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
		events:      repository.NewCalendarEventRepository(db),
		messages:    repository.NewMessageRepository(db),
		attempts:    repository.NewQuizAttemptRepository(db),
		cfg:         cfg,
	}
}

func (f *fixture) user(t *testing.T, email string) util.Identity {
	t.Helper()
	u := &model.User{Email: email, FullName: email, Password: "x", Role: model.Student}
	require.NoError(t, f.users.Create(u))
	return util.Identity{UserID: u.ID, Role: u.Role, Email: u.Email}
}

func (f *fixture) course(t *testing.T, title string) *model.Course {
	t.Helper()
	c := &model.Course{Title: title}
	require.NoError(t, f.courses.Create(c))
	return c
}

func (f *fixture) lesson(t *testing.T, courseID uint, title, contentType, payload string, order int) *model.Lesson {
	t.Helper()
	l := &model.Lesson{CourseID: courseID, Title: title, ContentType: contentType, VideoURL: payload, Order: order}
	require.NoError(t, f.lessons.Create(l))
	return l
}

func (f *fixture) enroll(t *testing.T, userID, courseID uint) {
	t.Helper()
	require.NoError(t, f.enrollments.Create(&model.Enrollment{UserID: userID, CourseID: courseID}))
}

func quizPayload(t *testing.T, questions ...quiz.Question) string {
	t.Helper()
	raw, err := quiz.EncodeQuestions(questions)
	require.NoError(t, err)
	return raw
}

var (
	capitalQuestion = quiz.Question{Question: "Capital of France?", Options: []string{"Berlin", "Paris", "Rome"}, CorrectAnswer: 1}
	mathQuestion    = quiz.Question{Question: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: 1}
)
