package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model SelectOptionRequest
type SelectOptionRequest struct {
	Option *int `json:"option" binding:"required"`
}

// Start godoc
// @Summary Start a quiz lesson
// @Description Opens a new playthrough; any quiz the caller had open is discarded.
// @Tags Quiz
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 201 {object} util.Response{data=service.QuizView}
// @Failure 400 {object} util.Response "Not a quiz lesson"
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/quiz [post]
func (c *QuizController) Start(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.QuizService.Start(id, lessonID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// Get godoc
// @Summary Current state of a quiz session
// @Tags Quiz
// @Produce json
// @Security BearerAuth
// @Param session path string true "Session ID"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Failure 404 {object} util.Response
// @Router /api/quiz/{session} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	c.respond(ctx)(c.QuizService.Get(id, ctx.Param("session")))
}

// Select godoc
// @Summary Select an option for the current question
// @Tags Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session path string true "Session ID"
// @Param body body SelectOptionRequest true "Zero-based option index"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Failure 400 {object} util.Response
// @Router /api/quiz/{session}/select [post]
func (c *QuizController) Select(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	var req SelectOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx)(c.QuizService.Select(id, ctx.Param("session"), *req.Option))
}

// Advance godoc
// @Summary Confirm the selected option and move on
// @Tags Quiz
// @Produce json
// @Security BearerAuth
// @Param session path string true "Session ID"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Failure 400 {object} util.Response "No option selected"
// @Router /api/quiz/{session}/next [post]
func (c *QuizController) Advance(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	c.respond(ctx)(c.QuizService.Advance(id, ctx.Param("session")))
}

// Retry godoc
// @Summary Restart a completed quiz
// @Tags Quiz
// @Produce json
// @Security BearerAuth
// @Param session path string true "Session ID"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Router /api/quiz/{session}/retry [post]
func (c *QuizController) Retry(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	c.respond(ctx)(c.QuizService.Retry(id, ctx.Param("session")))
}

// Discard godoc
// @Summary Leave a quiz
// @Tags Quiz
// @Security BearerAuth
// @Param session path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/quiz/{session} [delete]
func (c *QuizController) Discard(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	if err := c.QuizService.Discard(id, ctx.Param("session")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *QuizController) respond(ctx *gin.Context) func(*service.QuizView, error) {
	return func(view *service.QuizView, err error) {
		if err != nil {
			respondError(ctx, err)
			return
		}
		util.Success(ctx, view)
	}
}
