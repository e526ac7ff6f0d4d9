package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
	UserService  *service.UserService
}

func NewAdminController(adminService *service.AdminService, userService *service.UserService) *AdminController {
	return &AdminController{
		AdminService: adminService,
		UserService:  userService,
	}
}

// swagger:model ChangeRoleRequest
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student instructor admin"`
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	UserID   uint `json:"userId" binding:"required"`
	CourseID uint `json:"courseId" binding:"required"`
}

// Stats godoc
// @Summary Platform counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AdminStats}
// @Router /api/admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.AdminService.Stats()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ListUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or email"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.SearchUsers(ctx.Query("search"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// CreateUser godoc
// @Summary Create a user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateUserInput true "New user"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 409 {object} util.Response
// @Router /api/admin/users [post]
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req service.CreateUserInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, err := c.AdminService.CreateUser(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// ChangeRole godoc
// @Summary Change a user's role
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body ChangeRoleRequest true "New role"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/role [put]
func (c *AdminController) ChangeRole(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.UserService.ChangeRole(userID, model.UserRole(req.Role)); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Enroll godoc
// @Summary Enroll a user in a course
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EnrollRequest true "User and course"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 409 {object} util.Response "Already enrolled"
// @Router /api/admin/enrollments [post]
func (c *AdminController) Enroll(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	enrollment, err := c.AdminService.Enroll(req.UserID, req.CourseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// ListCourses godoc
// @Summary List all courses
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/admin/courses [get]
func (c *AdminController) ListCourses(ctx *gin.Context) {
	courses, err := c.AdminService.ListCourses()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateCourseInput true "Course"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req service.CreateCourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.AdminService.CreateCourse(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course with its lessons and enrollments
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AdminService.DeleteCourse(ctx.Request.Context(), courseID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListLessons godoc
// @Summary List a course's lessons with their stored payloads
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]service.AdminLesson}
// @Router /api/admin/courses/{id}/lessons [get]
func (c *AdminController) ListLessons(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	lessons, err := c.AdminService.ListLessons(courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// AddLesson godoc
// @Summary Append a lesson to a course
// @Description Video lessons need a YouTube URL, quiz lessons a list of questions.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body service.CreateLessonInput true "Lesson"
// @Success 201 {object} util.Response{data=service.AdminLesson}
// @Failure 400 {object} util.Response
// @Router /api/admin/courses/{id}/lessons [post]
func (c *AdminController) AddLesson(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.CreateLessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.AdminService.AddLesson(ctx.Request.Context(), courseID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Router /api/admin/lessons/{id} [delete]
func (c *AdminController) DeleteLesson(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AdminService.DeleteLesson(ctx.Request.Context(), lessonID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
