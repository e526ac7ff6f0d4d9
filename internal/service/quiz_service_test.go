package service

import (
	"testing"
	"time"

	"learnhub_backend/internal/quiz"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(f *fixture) *QuizService {
	return NewQuizService(f.lessons, f.enrollments, f.attempts, 60, time.Hour, 0)
}

func TestQuizPassMarksEnrollmentComplete(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Geography")
	lesson := f.lesson(t, course.ID, "Quiz", "quiz", quizPayload(t, capitalQuestion, mathQuestion), 1)
	f.enroll(t, learner.UserID, course.ID)

	svc := newQuizService(f)
	view, err := svc.Start(learner, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "answering", view.State)
	assert.Equal(t, 2, view.Total)
	require.NotNil(t, view.Question)
	assert.Equal(t, []string{"Berlin", "Paris", "Rome"}, view.Question.Options)

	_, err = svc.Advance(learner, view.SessionID)
	assert.ErrorIs(t, err, quiz.ErrNoSelection)

	view, err = svc.Select(learner, view.SessionID, 1)
	require.NoError(t, err)
	require.NotNil(t, view.Selected)
	assert.Equal(t, 1, *view.Selected)

	view, err = svc.Advance(learner, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Index)
	assert.Equal(t, 1, view.Score)
	assert.Nil(t, view.Selected)

	_, err = svc.Select(learner, view.SessionID, 1)
	require.NoError(t, err)
	view, err = svc.Advance(learner, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "completed", view.State)
	assert.Equal(t, 2, view.Score)
	require.NotNil(t, view.Passed)
	assert.True(t, *view.Passed)
	assert.Nil(t, view.Question)

	svc.Wait()

	e, err := f.enrollments.Find(learner.UserID, course.ID)
	require.NoError(t, err)
	assert.True(t, e.Completed)

	attempts, err := f.attempts.ListByUserLesson(learner.UserID, lesson.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Passed)
	assert.Equal(t, 2, attempts[0].Score)
}

func TestQuizFailLeavesEnrollmentOpen(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Geography")
	lesson := f.lesson(t, course.ID, "Quiz", "quiz", quizPayload(t, capitalQuestion, mathQuestion), 1)
	f.enroll(t, learner.UserID, course.ID)

	svc := newQuizService(f)
	view, err := svc.Start(learner, lesson.ID)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = svc.Select(learner, view.SessionID, 0)
		require.NoError(t, err)
		view, err = svc.Advance(learner, view.SessionID)
		require.NoError(t, err)
	}
	require.NotNil(t, view.Passed)
	assert.False(t, *view.Passed)

	view, err = svc.Retry(learner, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "answering", view.State)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 0, view.Score)

	svc.Wait()
	e, err := f.enrollments.Find(learner.UserID, course.ID)
	require.NoError(t, err)
	assert.False(t, e.Completed)

	attempts, err := f.attempts.ListByUserLesson(learner.UserID, lesson.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].Passed)
}

func TestQuizStartReplacesPreviousSession(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	other := f.user(t, "alan@example.com")
	course := f.course(t, "Geography")
	lesson := f.lesson(t, course.ID, "Quiz", "quiz", quizPayload(t, capitalQuestion), 1)

	svc := newQuizService(f)
	first, err := svc.Start(learner, lesson.ID)
	require.NoError(t, err)
	second, err := svc.Start(learner, lesson.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	_, err = svc.Get(learner, first.SessionID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	// sessions are private to their owner
	_, err = svc.Get(other, second.SessionID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	require.NoError(t, svc.Discard(learner, second.SessionID))
	_, err = svc.Get(learner, second.SessionID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestQuizStartRejectsNonQuizLessons(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Go")
	lesson := f.lesson(t, course.ID, "Intro", "video", "https://youtu.be/dQw4w9WgXcQ", 1)

	svc := newQuizService(f)
	_, err := svc.Start(learner, lesson.ID)
	assert.ErrorIs(t, err, util.ErrNotQuizLesson)

	_, err = svc.Start(learner, 9999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestQuizMalformedPayloadIsInvalid(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Go")
	lesson := f.lesson(t, course.ID, "Broken", "quiz", `{"not":"an array"}`, 1)

	svc := newQuizService(f)
	view, err := svc.Start(learner, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "invalid", view.State)
	assert.Nil(t, view.Question)

	_, err = svc.Select(learner, view.SessionID, 0)
	assert.Error(t, err)
}

func TestQuizSweepDropsIdleSessions(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Go")
	lesson := f.lesson(t, course.ID, "Quiz", "quiz", quizPayload(t, mathQuestion), 1)

	svc := newQuizService(f)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	view, err := svc.Start(learner, lesson.ID)
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	assert.Equal(t, 0, svc.Sweep())
	_, err = svc.Get(learner, view.SessionID)
	require.NoError(t, err)

	now = now.Add(61 * time.Minute)
	assert.Equal(t, 1, svc.Sweep())
	_, err = svc.Get(learner, view.SessionID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestQuizPassPercentApplies(t *testing.T) {
	f := newFixture(t)
	learner := f.user(t, "ada@example.com")
	course := f.course(t, "Go")
	lesson := f.lesson(t, course.ID, "Quiz", "quiz", quizPayload(t, capitalQuestion, mathQuestion), 1)

	svc := newQuizService(f)
	svc.SetPassPercent(50)
	assert.Equal(t, 50, svc.PassPercent())

	view, err := svc.Start(learner, lesson.ID)
	require.NoError(t, err)
	answers := []int{1, 0}
	for _, a := range answers {
		_, err = svc.Select(learner, view.SessionID, a)
		require.NoError(t, err)
		view, err = svc.Advance(learner, view.SessionID)
		require.NoError(t, err)
	}
	require.NotNil(t, view.Passed)
	assert.True(t, *view.Passed)
	svc.Wait()

	svc.SetPassPercent(0)
	assert.Equal(t, 60, svc.PassPercent())
}
