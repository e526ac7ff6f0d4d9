package service

import (
	"context"
	"errors"
	"strings"

	"learnhub_backend/internal/content"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/quiz"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/internal/video"

	"gorm.io/gorm"
)

type AdminStats struct {
	Users       int64 `json:"users"`
	Courses     int64 `json:"courses"`
	Enrollments int64 `json:"enrollments"`
}

type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=student instructor admin"`
}

type CreateCourseInput struct {
	Title          string `json:"title" binding:"required,max=255"`
	Description    string `json:"description"`
	ThumbnailURL   string `json:"thumbnailUrl" binding:"omitempty,max=255"`
	InstructorName string `json:"instructorName" binding:"max=100"`
}

// CreateLessonInput carries a URL for video and link lessons and a question
// list for quiz lessons.
type CreateLessonInput struct {
	Title       string          `json:"title" binding:"required,max=255"`
	Description string          `json:"description"`
	ContentType string          `json:"contentType" binding:"omitempty,oneof=video quiz link"`
	URL         string          `json:"url"`
	Questions   []quiz.Question `json:"questions"`
}

// AdminLesson exposes the stored payload, answers included.
type AdminLesson struct {
	model.Lesson
	Payload string `json:"payload"`
}

type AdminService struct {
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AuthService    *AuthService
	CourseService  *CourseService
}

func NewAdminService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	authService *AuthService,
	courseService *CourseService,
) *AdminService {
	return &AdminService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		AuthService:    authService,
		CourseService:  courseService,
	}
}

func (s *AdminService) Stats() (*AdminStats, error) {
	var stats AdminStats
	var err error
	if stats.Users, err = s.UserRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Courses, err = s.CourseRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Enrollments, err = s.EnrollmentRepo.Count(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) CreateUser(in CreateUserInput) (*model.User, error) {
	return s.AuthService.CreateUser(in.Email, in.Password, in.FullName, model.UserRole(in.Role))
}

// Enroll adds a user to a course. Enrolling twice is ErrAlreadyEnrolled.
func (s *AdminService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.findCourse(courseID); err != nil {
		return nil, err
	}

	_, err := s.EnrollmentRepo.Find(userID, courseID)
	if err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		// lost a race with a concurrent enroll
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}
	return enrollment, nil
}

func (s *AdminService) findCourse(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *AdminService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.List()
}

func (s *AdminService) CreateCourse(in CreateCourseInput) (*model.Course, error) {
	course := &model.Course{
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		ThumbnailURL:   strings.TrimSpace(in.ThumbnailURL),
		InstructorName: strings.TrimSpace(in.InstructorName),
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *AdminService) DeleteCourse(ctx context.Context, courseID uint) error {
	if err := s.CourseRepo.Delete(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	s.CourseService.InvalidateLessons(ctx, courseID)
	return nil
}

func (s *AdminService) ListLessons(courseID uint) ([]AdminLesson, error) {
	if _, err := s.findCourse(courseID); err != nil {
		return nil, err
	}
	lessons, err := s.LessonRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	out := make([]AdminLesson, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, AdminLesson{Lesson: l, Payload: l.VideoURL})
	}
	return out, nil
}

// AddLesson appends a lesson to the end of the course. Video lessons must
// point at YouTube and quiz lessons must carry answerable questions.
func (s *AdminService) AddLesson(ctx context.Context, courseID uint, in CreateLessonInput) (*AdminLesson, error) {
	if _, err := s.findCourse(courseID); err != nil {
		return nil, err
	}

	contentType := content.Normalize(in.ContentType)
	var payload string
	switch contentType {
	case content.TypeVideo:
		payload = strings.TrimSpace(in.URL)
		if !video.IsYouTubeURL(payload) {
			return nil, util.ErrInvalidVideoURL
		}
	case content.TypeQuiz:
		encoded, err := quiz.EncodeQuestions(in.Questions)
		if err != nil {
			return nil, err
		}
		payload = encoded
	case content.TypeLink:
		payload = strings.TrimSpace(in.URL)
		if payload == "" {
			return nil, util.ErrInvalidLinkURL
		}
	}

	count, err := s.LessonRepo.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:    courseID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		ContentType: string(contentType),
		VideoURL:    payload,
		Order:       int(count) + 1,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	s.CourseService.InvalidateLessons(ctx, courseID)
	return &AdminLesson{Lesson: *lesson, Payload: payload}, nil
}

func (s *AdminService) DeleteLesson(ctx context.Context, lessonID uint) error {
	courseID, err := s.LessonRepo.Delete(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	s.CourseService.InvalidateLessons(ctx, courseID)
	return nil
}
