package controller

import (
	"errors"
	"net/http"

	"learnhub_backend/internal/quiz"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

var (
	notFoundErrors = []error{
		util.ErrNotFound,
		util.ErrUserNotFound,
		util.ErrCourseNotFound,
		util.ErrLessonNotFound,
		util.ErrEventNotFound,
		util.ErrSessionNotFound,
	}
	conflictErrors = []error{
		util.ErrAlreadyEnrolled,
		util.ErrEmailRegistered,
	}
	badRequestErrors = []error{
		util.ErrNotQuizLesson,
		util.ErrInvalidVideoURL,
		util.ErrInvalidLinkURL,
		util.ErrSelfMessage,
		util.ErrInvalidRole,
		quiz.ErrMalformedQuizData,
		quiz.ErrNoSelection,
		quiz.ErrOptionOutOfRange,
		quiz.ErrNotAnswering,
		quiz.ErrNotCompleted,
		service.ErrInvalidEventTime,
		service.ErrAvatarTooLarge,
		service.ErrInvalidAvatar,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError maps service errors onto the response envelope.
func respondError(ctx *gin.Context, err error) {
	switch {
	case isAny(err, notFoundErrors):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case isAny(err, conflictErrors):
		util.Conflict(ctx, err.Error())
	case isAny(err, badRequestErrors):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidCredential):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// identity returns the authenticated caller or writes a 401.
func identity(ctx *gin.Context) (util.Identity, bool) {
	id, ok := util.IdentityFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
	}
	return id, ok
}

// pathID parses a numeric path parameter or writes a 400.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}
