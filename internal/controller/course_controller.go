package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// ListMyCourses godoc
// @Summary List the caller's courses
// @Description Enrolled courses narrowed by status and title; learners without enrollments see the full catalog.
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param filter query string false "Active, Completed or All" default(All)
// @Param search query string false "Title search"
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /api/courses [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}

	courses, err := c.CourseService.ListMyCourses(id, service.ParseCourseFilter(ctx.Query("filter")), ctx.Query("search"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourseContent godoc
// @Summary Load a course's lessons and materials
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseContent}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourseContent(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	content, err := c.CourseService.GetCourseContent(ctx.Request.Context(), id, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, content)
}
