package controller

import (
	"strconv"
	"time"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CalendarController struct {
	CalendarService *service.CalendarService
}

func NewCalendarController(calendarService *service.CalendarService) *CalendarController {
	return &CalendarController{CalendarService: calendarService}
}

// ListEvents godoc
// @Summary List the caller's calendar events
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CalendarEvent}
// @Router /api/calendar/events [get]
func (c *CalendarController) ListEvents(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	events, err := c.CalendarService.ListEvents(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// Grid godoc
// @Summary Month grid with the caller's events
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year, defaults to the current year"
// @Param month query int false "Month 1-12, defaults to the current month"
// @Param view query string false "month (Sunday first) or dashboard (Monday first)" default(month)
// @Param selected query string false "Selected date, YYYY-MM-DD"
// @Success 200 {object} util.Response{data=service.GridView}
// @Failure 400 {object} util.Response
// @Router /api/calendar [get]
func (c *CalendarController) Grid(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}

	now := time.Now().In(c.CalendarService.Location)
	year, month := now.Year(), now.Month()
	if v := ctx.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			util.BadRequest(ctx, "invalid year")
			return
		}
		year = y
	}
	if v := ctx.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			util.BadRequest(ctx, "invalid month")
			return
		}
		month = time.Month(m)
	}

	var selected time.Time
	if v := ctx.Query("selected"); v != "" {
		s, err := time.ParseInLocation(util.DateFormat, v, c.CalendarService.Location)
		if err != nil {
			util.BadRequest(ctx, "invalid selected date")
			return
		}
		selected = s
	}

	view := ctx.DefaultQuery("view", service.ViewMonth)
	if view != service.ViewMonth && view != service.ViewDashboard {
		util.BadRequest(ctx, "view must be month or dashboard")
		return
	}

	grid, err := c.CalendarService.Grid(id, view, year, month, selected)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, grid)
}

// CreateEvent godoc
// @Summary Add a calendar event
// @Tags Calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateEventInput true "Title, date (YYYY-MM-DD), time (HH:MM) and type"
// @Success 201 {object} util.Response{data=model.CalendarEvent}
// @Failure 400 {object} util.Response
// @Router /api/calendar/events [post]
func (c *CalendarController) CreateEvent(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	var req service.CreateEventInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.CalendarService.CreateEvent(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, event)
}

// DeleteEvent godoc
// @Summary Delete one of the caller's events
// @Tags Calendar
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/calendar/events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.CalendarService.DeleteEvent(id, eventID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
