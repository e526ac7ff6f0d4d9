package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"learnhub_backend/internal/content"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/quiz"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// completionBackoff is the pause before the n-th retry of a completion write,
// multiplied by n.
const completionBackoff = 500 * time.Millisecond

// QuizView is the learner-facing snapshot of a quiz session.
type QuizView struct {
	SessionID string        `json:"sessionId"`
	LessonID  uint          `json:"lessonId"`
	CourseID  uint          `json:"courseId"`
	State     string        `json:"state"`
	Index     int           `json:"index"`
	Total     int           `json:"total"`
	Score     int           `json:"score"`
	Question  *QuestionView `json:"question,omitempty"`
	Selected  *int          `json:"selected,omitempty"`
	Passed    *bool         `json:"passed,omitempty"`
}

type quizSession struct {
	mu       sync.Mutex
	id       string
	userID   uint
	lessonID uint
	courseID uint
	engine   *quiz.Session
	lastUsed time.Time
}

func (qs *quizSession) view() *QuizView {
	v := &QuizView{
		SessionID: qs.id,
		LessonID:  qs.lessonID,
		CourseID:  qs.courseID,
		State:     qs.engine.State().String(),
		Index:     qs.engine.CurrentIndex(),
		Total:     qs.engine.Total(),
		Score:     qs.engine.Score(),
	}
	if q, err := qs.engine.CurrentQuestion(); err == nil {
		v.Question = &QuestionView{Question: q.Question, Options: q.Options}
	}
	if sel, ok := qs.engine.Selected(); ok {
		v.Selected = &sel
	}
	if passed, err := qs.engine.Passed(); err == nil {
		v.Passed = &passed
	}
	return v
}

// QuizService hosts quiz playthroughs in memory. Each user has at most one
// live session; starting another quiz discards the previous one.
type QuizService struct {
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AttemptRepo    *repository.QuizAttemptRepository

	ttl         time.Duration
	retries     int
	backoff     time.Duration
	passPercent atomic.Int32
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*quizSession
	byUser   map[uint]string

	pending  sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

func NewQuizService(
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	attemptRepo *repository.QuizAttemptRepository,
	passPercent int,
	ttl time.Duration,
	retries int,
) *QuizService {
	s := &QuizService{
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		AttemptRepo:    attemptRepo,
		ttl:            ttl,
		retries:        retries,
		backoff:        completionBackoff,
		now:            time.Now,
		stop:           make(chan struct{}),
		sessions:       make(map[string]*quizSession),
		byUser:         make(map[uint]string),
	}
	s.SetPassPercent(passPercent)
	return s
}

// SetPassPercent changes the threshold for sessions started afterwards.
func (s *QuizService) SetPassPercent(percent int) {
	if percent < 1 || percent > 100 {
		percent = quiz.DefaultPassPercent
	}
	s.passPercent.Store(int32(percent))
}

func (s *QuizService) PassPercent() int {
	return int(s.passPercent.Load())
}

// Start opens a fresh playthrough of a quiz lesson for the caller. A lesson
// whose payload is malformed yields a session in the invalid state.
func (s *QuizService) Start(id util.Identity, lessonID uint) (*QuizView, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if content.Normalize(lesson.ContentType) != content.TypeQuiz {
		return nil, util.ErrNotQuizLesson
	}

	userID, courseID := id.UserID, lesson.CourseID
	engine := quiz.FromPayload(lesson.VideoURL,
		quiz.WithPassPercent(s.PassPercent()),
		quiz.WithCompleteHook(func(r quiz.Result) {
			s.recordAttempt(userID, courseID, lessonID, r)
		}),
		quiz.WithPassHook(func(quiz.Result) {
			s.markEnrollmentComplete(userID, courseID, lessonID)
		}),
	)
	if engine.State() == quiz.StateInvalid {
		logger.Log.Warn("Quiz lesson has malformed payload", zap.Uint("lesson_id", lessonID))
	}

	qs := &quizSession{
		id:       uuid.NewString(),
		userID:   userID,
		lessonID: lessonID,
		courseID: courseID,
		engine:   engine,
		lastUsed: s.now(),
	}

	s.mu.Lock()
	if prev, ok := s.byUser[userID]; ok {
		delete(s.sessions, prev)
	}
	s.sessions[qs.id] = qs
	s.byUser[userID] = qs.id
	monitoring.ActiveQuizSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	return qs.view(), nil
}

// session returns the caller's session. Sessions owned by someone else are
// reported as missing.
func (s *QuizService) session(id util.Identity, sessionID string) (*quizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	qs, ok := s.sessions[sessionID]
	if !ok || qs.userID != id.UserID {
		return nil, util.ErrSessionNotFound
	}
	return qs, nil
}

func (s *QuizService) do(id util.Identity, sessionID string, fn func(*quiz.Session) error) (*QuizView, error) {
	qs, err := s.session(id, sessionID)
	if err != nil {
		return nil, err
	}
	qs.mu.Lock()
	defer qs.mu.Unlock()
	qs.lastUsed = s.now()
	if fn != nil {
		if err := fn(qs.engine); err != nil {
			return nil, err
		}
	}
	return qs.view(), nil
}

func (s *QuizService) Get(id util.Identity, sessionID string) (*QuizView, error) {
	return s.do(id, sessionID, nil)
}

func (s *QuizService) Select(id util.Identity, sessionID string, option int) (*QuizView, error) {
	return s.do(id, sessionID, func(e *quiz.Session) error {
		return e.SelectOption(option)
	})
}

// Advance confirms the pending answer. Completion side effects run in the
// background and never change the returned view.
func (s *QuizService) Advance(id util.Identity, sessionID string) (*QuizView, error) {
	return s.do(id, sessionID, func(e *quiz.Session) error {
		_, err := e.ConfirmAndAdvance()
		return err
	})
}

func (s *QuizService) Retry(id util.Identity, sessionID string) (*QuizView, error) {
	return s.do(id, sessionID, func(e *quiz.Session) error {
		return e.Retry()
	})
}

func (s *QuizService) Discard(id util.Identity, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	qs, ok := s.sessions[sessionID]
	if !ok || qs.userID != id.UserID {
		return util.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	if s.byUser[qs.userID] == sessionID {
		delete(s.byUser, qs.userID)
	}
	monitoring.ActiveQuizSessions.Set(float64(len(s.sessions)))
	return nil
}

// Sweep drops sessions idle for longer than the TTL and reports how many went.
func (s *QuizService) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for sid, qs := range s.sessions {
		qs.mu.Lock()
		idle := qs.lastUsed.Before(cutoff)
		qs.mu.Unlock()
		if !idle {
			continue
		}
		delete(s.sessions, sid)
		if s.byUser[qs.userID] == sid {
			delete(s.byUser, qs.userID)
		}
		removed++
	}
	monitoring.ActiveQuizSessions.Set(float64(len(s.sessions)))
	return removed
}

// RunSweeper sweeps idle sessions until ctx is done.
func (s *QuizService) RunSweeper(ctx context.Context) {
	interval := s.ttl / 2
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Log.Debug("Swept idle quiz sessions", zap.Int("count", n))
			}
		}
	}
}

// Stop abandons completion retries that are waiting out their backoff.
// A write already issued still finishes; call Wait afterwards.
func (s *QuizService) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Wait blocks until in-flight completion writes have finished.
func (s *QuizService) Wait() {
	s.pending.Wait()
}

func (s *QuizService) recordAttempt(userID, courseID, lessonID uint, r quiz.Result) {
	outcome := "failed"
	if r.Passed {
		outcome = "passed"
	}
	monitoring.QuizCompletions.WithLabelValues(outcome).Inc()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		attempt := &model.QuizAttempt{
			UserID:   userID,
			CourseID: courseID,
			LessonID: lessonID,
			Score:    r.Score,
			Total:    r.Total,
			Passed:   r.Passed,
		}
		if err := s.AttemptRepo.Create(context.Background(), attempt); err != nil {
			logger.Log.Warn("Quiz attempt not recorded",
				zap.Uint("user_id", userID),
				zap.Uint("lesson_id", lessonID),
				zap.Error(err),
			)
		}
	}()
}

func (s *QuizService) markEnrollmentComplete(userID, courseID, lessonID uint) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, span := tracing.Tracer.Start(context.Background(), "quiz.MarkEnrollmentComplete")
		defer span.End()
		span.SetAttributes(
			attribute.Int64("user_id", int64(userID)),
			attribute.Int64("course_id", int64(courseID)),
			attribute.Int64("lesson_id", int64(lessonID)),
		)

		var err error
		tries := 0
	retry:
		for attempt := 0; attempt <= s.retries; attempt++ {
			if attempt > 0 {
				timer := time.NewTimer(time.Duration(attempt) * s.backoff)
				select {
				case <-timer.C:
				case <-s.stop:
					timer.Stop()
					break retry
				}
			}
			tries++
			if err = s.EnrollmentRepo.MarkCompleted(ctx, userID, courseID); err == nil {
				break
			}
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "completion write failed")
			monitoring.CompletionWrites.WithLabelValues("failed").Inc()
			logger.Log.Error("CompletionWriteFailed",
				zap.Uint("user_id", userID),
				zap.Uint("course_id", courseID),
				zap.Uint("lesson_id", lessonID),
				zap.Int("attempts", tries),
				zap.Error(err),
			)
			return
		}
		monitoring.CompletionWrites.WithLabelValues("ok").Inc()
	}()
}
