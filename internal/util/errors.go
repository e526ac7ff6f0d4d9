package util

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrSessionNotFound   = errors.New("quiz session not found or expired")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrAlreadyEnrolled   = errors.New("user is already enrolled in this course")
	ErrNotQuizLesson     = errors.New("lesson is not a quiz")
	ErrInvalidVideoURL   = errors.New("please enter a valid YouTube URL")
	ErrSelfMessage       = errors.New("cannot message yourself")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidLinkURL    = errors.New("link lessons need a URL")
)
