package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"learnhub_backend/internal/content"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/internal/video"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseFilter string

const (
	FilterAll       CourseFilter = "All"
	FilterActive    CourseFilter = "Active"
	FilterCompleted CourseFilter = "Completed"
)

// ParseCourseFilter accepts the filter names case-insensitively; anything
// unrecognised means All.
func ParseCourseFilter(s string) CourseFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return FilterActive
	case "completed":
		return FilterCompleted
	default:
		return FilterAll
	}
}

type CourseSummary struct {
	model.Course
	Enrolled  bool `json:"enrolled"`
	Completed bool `json:"completed"`
}

// QuestionView is a quiz question as learners see it, without the answer.
type QuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type LessonView struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	ContentType  content.Type   `json:"contentType"`
	Order        int            `json:"order"`
	VideoID      string         `json:"videoId,omitempty"`
	EmbedURL     string         `json:"embedUrl,omitempty"`
	ThumbnailURL string         `json:"thumbnailUrl,omitempty"`
	URL          string         `json:"url,omitempty"`
	Questions    []QuestionView `json:"questions,omitempty"`
	Unavailable  bool           `json:"unavailable,omitempty"`
}

type CourseContent struct {
	Course         model.Course `json:"course"`
	Lessons        []LessonView `json:"lessons"`
	Materials      []LessonView `json:"materials"`
	ActiveLessonID *uint        `json:"activeLessonId"`
	Enrolled       bool         `json:"enrolled"`
	Completed      bool         `json:"completed"`
}

// cachedLesson mirrors model.Lesson including the payload column, which the
// model hides from JSON.
type cachedLesson struct {
	ID          uint   `json:"id"`
	CourseID    uint   `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"contentType"`
	Payload     string `json:"payload"`
	Order       int    `json:"order"`
}

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Redis          *redis.Client
	CacheTTL       time.Duration
}

// NewCourseService wires the catalog. rdb may be nil, which disables caching.
func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		Redis:          rdb,
		CacheTTL:       cacheTTL,
	}
}

func lessonCacheKey(courseID uint) string {
	return fmt.Sprintf("course:%d:lessons", courseID)
}

// ListMyCourses returns the learner's enrolled courses narrowed by filter and a
// case-insensitive title search. A learner with no enrollments gets the whole
// catalog instead.
func (s *CourseService) ListMyCourses(id util.Identity, filter CourseFilter, search string) ([]CourseSummary, error) {
	enrollments, err := s.EnrollmentRepo.ListByUser(id.UserID)
	if err != nil {
		return nil, err
	}

	summaries := []CourseSummary{}
	if len(enrollments) == 0 {
		courses, err := s.CourseRepo.List()
		if err != nil {
			return nil, err
		}
		for _, c := range courses {
			summaries = append(summaries, CourseSummary{Course: c})
		}
	} else {
		ids := make([]uint, 0, len(enrollments))
		done := make(map[uint]bool, len(enrollments))
		for _, e := range enrollments {
			ids = append(ids, e.CourseID)
			done[e.CourseID] = e.Completed
		}
		courses, err := s.CourseRepo.FindByIDs(ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[uint]model.Course, len(courses))
		for _, c := range courses {
			byID[c.ID] = c
		}
		// keep enrollment order
		for _, cid := range ids {
			c, ok := byID[cid]
			if !ok {
				continue
			}
			completed := done[cid]
			if filter == FilterActive && completed {
				continue
			}
			if filter == FilterCompleted && !completed {
				continue
			}
			summaries = append(summaries, CourseSummary{Course: c, Enrolled: true, Completed: completed})
		}
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return summaries, nil
	}
	matched := summaries[:0]
	for _, c := range summaries {
		if strings.Contains(strings.ToLower(c.Title), term) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// GetCourseContent loads a course with its lessons in playback order, split
// into playable lessons and link materials. The first playable lesson is active.
func (s *CourseService) GetCourseContent(ctx context.Context, id util.Identity, courseID uint) (*CourseContent, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	lessons, err := s.Lessons(ctx, courseID)
	if err != nil {
		return nil, err
	}

	out := &CourseContent{
		Course:    *course,
		Lessons:   []LessonView{},
		Materials: []LessonView{},
	}
	for _, l := range lessons {
		view := newLessonView(l)
		if view.ContentType.Playable() {
			out.Lessons = append(out.Lessons, view)
		} else {
			out.Materials = append(out.Materials, view)
		}
	}
	if len(out.Lessons) > 0 {
		active := out.Lessons[0].ID
		out.ActiveLessonID = &active
	}

	enrollment, err := s.EnrollmentRepo.Find(id.UserID, courseID)
	switch {
	case err == nil:
		out.Enrolled = true
		out.Completed = enrollment.Completed
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return out, nil
}

func newLessonView(l model.Lesson) LessonView {
	v := LessonView{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Order:       l.Order,
	}
	decoded := content.Decode(l.ContentType, l.VideoURL)
	v.ContentType = decoded.Type()

	switch c := decoded.(type) {
	case content.Video:
		v.URL = c.URL
		if c.Valid() {
			v.VideoID = c.ID
			v.EmbedURL = video.EmbedURL(c.ID)
			v.ThumbnailURL = video.ThumbnailURL(c.ID)
		} else {
			v.Unavailable = true
		}
	case content.Quiz:
		if !c.Valid() {
			v.Unavailable = true
			break
		}
		for _, q := range c.Questions {
			v.Questions = append(v.Questions, QuestionView{Question: q.Question, Options: q.Options})
		}
	case content.Link:
		v.URL = c.URL
	}
	return v
}

// Lessons returns a course's lessons in playback order, served from Redis
// when possible. Cache failures fall through to the database.
func (s *CourseService) Lessons(ctx context.Context, courseID uint) ([]model.Lesson, error) {
	if lessons, ok := s.cachedLessons(ctx, courseID); ok {
		return lessons, nil
	}

	lessons, err := s.LessonRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	s.storeLessons(ctx, courseID, lessons)
	return lessons, nil
}

func (s *CourseService) cachedLessons(ctx context.Context, courseID uint) ([]model.Lesson, bool) {
	if s.Redis == nil {
		return nil, false
	}
	raw, err := s.Redis.Get(ctx, lessonCacheKey(courseID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Lesson cache read failed", zap.Uint("course_id", courseID), zap.Error(err))
		}
		monitoring.LessonCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var cached []cachedLesson
	if err := json.Unmarshal(raw, &cached); err != nil {
		logger.Log.Warn("Lesson cache entry corrupt", zap.Uint("course_id", courseID), zap.Error(err))
		monitoring.LessonCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	monitoring.LessonCacheLookups.WithLabelValues("hit").Inc()

	lessons := make([]model.Lesson, 0, len(cached))
	for _, c := range cached {
		l := model.Lesson{
			CourseID:    c.CourseID,
			Title:       c.Title,
			Description: c.Description,
			ContentType: c.ContentType,
			VideoURL:    c.Payload,
			Order:       c.Order,
		}
		l.ID = c.ID
		lessons = append(lessons, l)
	}
	return lessons, true
}

func (s *CourseService) storeLessons(ctx context.Context, courseID uint, lessons []model.Lesson) {
	if s.Redis == nil {
		return
	}
	cached := make([]cachedLesson, 0, len(lessons))
	for _, l := range lessons {
		cached = append(cached, cachedLesson{
			ID:          l.ID,
			CourseID:    l.CourseID,
			Title:       l.Title,
			Description: l.Description,
			ContentType: l.ContentType,
			Payload:     l.VideoURL,
			Order:       l.Order,
		})
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, lessonCacheKey(courseID), raw, s.CacheTTL).Err(); err != nil {
		logger.Log.Warn("Lesson cache write failed", zap.Uint("course_id", courseID), zap.Error(err))
	}
}

// InvalidateLessons drops the cached lesson list after a write to the course.
func (s *CourseService) InvalidateLessons(ctx context.Context, courseID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, lessonCacheKey(courseID)).Err(); err != nil {
		logger.Log.Warn("Lesson cache invalidation failed", zap.Uint("course_id", courseID), zap.Error(err))
	}
}
