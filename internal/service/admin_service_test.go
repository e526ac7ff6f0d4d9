package service

import (
	"context"
	"testing"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/quiz"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(f *fixture) *AdminService {
	courses := NewCourseService(f.courses, f.lessons, f.enrollments, nil, time.Minute)
	auth := NewAuthService(f.users, f.cfg)
	return NewAdminService(f.users, f.courses, f.lessons, f.enrollments, auth, courses)
}

func TestAdminEnroll(t *testing.T) {
	f := newFixture(t)
	svc := newAdminService(f)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Go")

	e, err := svc.Enroll(learner.UserID, course.ID)
	require.NoError(t, err)
	assert.False(t, e.Completed)

	_, err = svc.Enroll(learner.UserID, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	_, err = svc.Enroll(9999, course.ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	_, err = svc.Enroll(learner.UserID, 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, AdminStats{Users: 1, Courses: 1, Enrollments: 1}, *stats)
}

func TestAdminAddLesson(t *testing.T) {
	f := newFixture(t)
	svc := newAdminService(f)
	course, err := svc.CreateCourse(CreateCourseInput{Title: " Go "})
	require.NoError(t, err)
	assert.Equal(t, "Go", course.Title)
	ctx := context.Background()

	v, err := svc.AddLesson(ctx, course.ID, CreateLessonInput{Title: "Intro", URL: "https://youtu.be/dQw4w9WgXcQ"})
	require.NoError(t, err)
	assert.Equal(t, "video", v.ContentType)
	assert.Equal(t, 1, v.Order)

	_, err = svc.AddLesson(ctx, course.ID, CreateLessonInput{Title: "Elsewhere", ContentType: "video", URL: "https://vimeo.com/123"})
	assert.ErrorIs(t, err, util.ErrInvalidVideoURL)

	q, err := svc.AddLesson(ctx, course.ID, CreateLessonInput{
		Title:       "Check",
		ContentType: "quiz",
		Questions:   []quiz.Question{mathQuestion},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, q.Order)
	parsed, err := quiz.ParseQuestions(q.Payload)
	require.NoError(t, err)
	assert.Equal(t, []quiz.Question{mathQuestion}, parsed)

	_, err = svc.AddLesson(ctx, course.ID, CreateLessonInput{
		Title:       "Broken",
		ContentType: "quiz",
		Questions:   []quiz.Question{{Question: "?", Options: []string{"a"}, CorrectAnswer: 3}},
	})
	assert.ErrorIs(t, err, quiz.ErrMalformedQuizData)

	_, err = svc.AddLesson(ctx, course.ID, CreateLessonInput{Title: "Docs", ContentType: "link"})
	assert.ErrorIs(t, err, util.ErrInvalidLinkURL)

	_, err = svc.AddLesson(ctx, 9999, CreateLessonInput{Title: "Orphan", URL: "https://youtu.be/dQw4w9WgXcQ"})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	lessons, err := svc.ListLessons(course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", lessons[0].Payload)

	require.NoError(t, svc.DeleteLesson(ctx, v.ID))
	assert.ErrorIs(t, svc.DeleteLesson(ctx, v.ID), util.ErrLessonNotFound)

	require.NoError(t, svc.DeleteCourse(ctx, course.ID))
	assert.ErrorIs(t, svc.DeleteCourse(ctx, course.ID), util.ErrCourseNotFound)
}

func TestAdminCreateUserAndRole(t *testing.T) {
	f := newFixture(t)
	svc := newAdminService(f)
	users := NewUserService(f.users, NewStorageService(f.cfg))

	u, err := svc.CreateUser(CreateUserInput{Email: "Teacher@Example.com", Password: "secret1", FullName: "T"})
	require.NoError(t, err)
	assert.Equal(t, model.Student, u.Role)
	assert.Equal(t, "teacher@example.com", u.Email)

	require.NoError(t, users.ChangeRole(u.ID, model.Instructor))
	assert.ErrorIs(t, users.ChangeRole(u.ID, "wizard"), util.ErrInvalidRole)
	assert.ErrorIs(t, users.ChangeRole(9999, model.Admin), util.ErrUserNotFound)

	found, err := users.SearchUsers("teacher")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, model.Instructor, found[0].Role)
}
