package handler

import (
	"net/http"

	"taxoffice/internal/middleware"
	"taxoffice/internal/service"
	"taxoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	calendarService service.CalendarService
	auth            *middleware.Auth
}

func NewCalendarHandler(calendarService service.CalendarService, auth *middleware.Auth) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService, auth: auth}
}

func (h *CalendarHandler) RegisterRoutes(router *gin.RouterGroup) {
	holidays := router.Group("/api/holidays")
	{
		holidays.GET("", h.auth.RequireRole(readRoles...), h.ListHolidays)
		holidays.POST("", h.auth.RequireRole(middleware.RoleAdmin), h.AddHoliday)
	}
	router.GET("/api/business-days", h.auth.RequireRole(readRoles...), h.CheckBusinessDay)

	rules := router.Group("/api/deadline-rules")
	{
		rules.GET("", h.auth.RequireRole(readRoles...), h.ListDeadlineRules)
		rules.PUT("", h.auth.RequireRole(middleware.RoleAdmin), h.SetDeadlineRule)
	}
	router.POST("/api/due-dates/preview", h.auth.RequireRole(readRoles...), h.PreviewDueDate)
}

// ListHolidays returns the holidays of one jurisdiction and year
// @Summary      List holidays
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Param        jurisdiction  query  string  true  "Jurisdiction code"
// @Param        year          query  int     true  "Calendar year"
// @Success      200  {object}  response.Response{data=[]service.HolidayResponse}
// @Router       /api/holidays [get]
func (h *CalendarHandler) ListHolidays(c *gin.Context) {
	year, err := service.ParseYear(c.Query("year"))
	if err != nil {
		respondError(c, err)
		return
	}
	holidays, err := h.calendarService.ListHolidays(c.Request.Context(), c.Query("jurisdiction"), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, holidays))
}

// AddHoliday appends a holiday; stored due dates are not moved
// @Summary      Add holiday
// @Tags         calendar
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.AddHolidayRequest  true  "Holiday"
// @Success      201  {object}  response.Response{data=service.AddHolidayResponse}
// @Success      200  {object}  response.Response{data=service.AddHolidayResponse}
// @Router       /api/holidays [post]
func (h *CalendarHandler) AddHoliday(c *gin.Context) {
	var req service.AddHolidayRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.calendarService.AddHoliday(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, response.Success(status, res))
}

// CheckBusinessDay reports whether a date is a business day
// @Summary      Check business day
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Param        jurisdiction  query  string  true  "Jurisdiction code"
// @Param        date          query  string  true  "Date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=service.BusinessDayResponse}
// @Router       /api/business-days [get]
func (h *CalendarHandler) CheckBusinessDay(c *gin.Context) {
	res, err := h.calendarService.CheckBusinessDay(c.Request.Context(), c.Query("jurisdiction"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ListDeadlineRules returns every statutory deadline rule
// @Summary      List deadline rules
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.DeadlineRuleResponse}
// @Router       /api/deadline-rules [get]
func (h *CalendarHandler) ListDeadlineRules(c *gin.Context) {
	rules, err := h.calendarService.ListDeadlineRules(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rules))
}

// SetDeadlineRule registers or replaces the rule of a tax type
// @Summary      Set deadline rule
// @Tags         calendar
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.SetDeadlineRuleRequest  true  "Deadline rule"
// @Success      200  {object}  response.Response{data=service.DeadlineRuleResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/deadline-rules [put]
func (h *CalendarHandler) SetDeadlineRule(c *gin.Context) {
	var req service.SetDeadlineRuleRequest
	if !bindJSON(c, &req) {
		return
	}
	rule, err := h.calendarService.SetDeadlineRule(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// PreviewDueDate computes a due date without opening a filing period
// @Summary      Preview due date
// @Tags         calendar
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.DueDateRequest  true  "Period"
// @Success      200  {object}  response.Response{data=service.DueDateResponse}
// @Failure      422  {object}  response.Response
// @Router       /api/due-dates/preview [post]
func (h *CalendarHandler) PreviewDueDate(c *gin.Context) {
	var req service.DueDateRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.calendarService.PreviewDueDate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
