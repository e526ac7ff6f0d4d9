package service

import (
	"context"
	"testing"
	"time"

	"learnhub_backend/internal/content"
	"learnhub_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseContentPartitionsLessons(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Go")
	f.lesson(t, course.ID, "Docs", "link", "https://go.dev/doc", 1)
	quizLesson := f.lesson(t, course.ID, "Check", "quiz", quizPayload(t, capitalQuestion), 3)
	intro := f.lesson(t, course.ID, "Intro", "", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 2)
	f.lesson(t, course.ID, "Broken", "video", "https://example.com/video", 4)

	svc := NewCourseService(f.courses, f.lessons, f.enrollments, nil, time.Minute)
	got, err := svc.GetCourseContent(context.Background(), learner, course.ID)
	require.NoError(t, err)

	require.Len(t, got.Lessons, 3)
	assert.Equal(t, intro.ID, got.Lessons[0].ID)
	assert.Equal(t, content.TypeVideo, got.Lessons[0].ContentType)
	assert.Equal(t, "dQw4w9WgXcQ", got.Lessons[0].VideoID)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", got.Lessons[0].EmbedURL)

	assert.Equal(t, quizLesson.ID, got.Lessons[1].ID)
	require.Len(t, got.Lessons[1].Questions, 1)
	assert.Equal(t, capitalQuestion.Options, got.Lessons[1].Questions[0].Options)

	assert.True(t, got.Lessons[2].Unavailable)

	require.Len(t, got.Materials, 1)
	assert.Equal(t, "https://go.dev/doc", got.Materials[0].URL)

	require.NotNil(t, got.ActiveLessonID)
	assert.Equal(t, intro.ID, *got.ActiveLessonID)
	assert.False(t, got.Enrolled)
}

func TestCourseContentWithoutPlayableLessons(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Reading list")
	f.lesson(t, course.ID, "Docs", "link", "https://go.dev/doc", 1)
	f.enroll(t, learner.UserID, course.ID)

	svc := NewCourseService(f.courses, f.lessons, f.enrollments, nil, time.Minute)
	got, err := svc.GetCourseContent(context.Background(), learner, course.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Lessons)
	assert.Nil(t, got.ActiveLessonID)
	assert.True(t, got.Enrolled)

	_, err = svc.GetCourseContent(context.Background(), learner, 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCourseContentFallsBackWhenRedisIsDown(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Go")
	f.lesson(t, course.ID, "Intro", "video", "https://youtu.be/dQw4w9WgXcQ", 1)

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })

	svc := NewCourseService(f.courses, f.lessons, f.enrollments, rdb, time.Minute)
	got, err := svc.GetCourseContent(context.Background(), learner, course.ID)
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, "dQw4w9WgXcQ", got.Lessons[0].VideoID)

	svc.InvalidateLessons(context.Background(), course.ID)
}

func TestListMyCourses(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	newcomer := f.user(t, "alan@example.com")
	goCourse := f.course(t, "Intro to Go")
	rust := f.course(t, "Rust Basics")
	f.course(t, "Not Enrolled")
	f.enroll(t, learner.UserID, goCourse.ID)
	f.enroll(t, learner.UserID, rust.ID)
	require.NoError(t, f.enrollments.MarkCompleted(context.Background(), learner.UserID, rust.ID))

	svc := NewCourseService(f.courses, f.lessons, f.enrollments, nil, time.Minute)

	all, err := svc.ListMyCourses(learner, FilterAll, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Intro to Go", all[0].Title)

	active, err := svc.ListMyCourses(learner, FilterActive, "")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, goCourse.ID, active[0].ID)

	done, err := svc.ListMyCourses(learner, FilterCompleted, "")
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.True(t, done[0].Completed)

	found, err := svc.ListMyCourses(learner, FilterAll, "RUST")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, rust.ID, found[0].ID)

	// no enrollments: whole catalog
	catalog, err := svc.ListMyCourses(newcomer, FilterAll, "")
	require.NoError(t, err)
	assert.Len(t, catalog, 3)
	for _, c := range catalog {
		assert.False(t, c.Enrolled)
	}
}

func TestParseCourseFilter(t *testing.T) {
	assert.Equal(t, FilterActive, ParseCourseFilter("active"))
	assert.Equal(t, FilterCompleted, ParseCourseFilter(" Completed "))
	assert.Equal(t, FilterAll, ParseCourseFilter(""))
	assert.Equal(t, FilterAll, ParseCourseFilter("bogus"))
}
