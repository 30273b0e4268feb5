package handler

import (
	"net/http"

	"taxoffice/internal/middleware"
	"taxoffice/internal/repository"
	"taxoffice/internal/service"
	"taxoffice/pkg/pagination"
	"taxoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FilingHandler struct {
	filingService service.FilingService
	auth          *middleware.Auth
}

func NewFilingHandler(filingService service.FilingService, auth *middleware.Auth) *FilingHandler {
	return &FilingHandler{filingService: filingService, auth: auth}
}

func (h *FilingHandler) RegisterRoutes(router *gin.RouterGroup) {
	writers := []string{middleware.RoleAdmin, middleware.RoleClerk, middleware.RoleAssessor}

	periods := router.Group("/api/filing-periods")
	{
		periods.GET("", h.auth.RequireRole(readRoles...), h.ListPeriods)
		periods.GET("/:id", h.auth.RequireRole(readRoles...), h.GetPeriod)
		periods.POST("", h.auth.RequireRole(writers...), h.OpenPeriod)
		periods.POST("/:id/file", h.auth.RequireRole(writers...), h.FileReturn)
		periods.POST("/:id/payments", h.auth.RequireRole(writers...), h.RecordPayment)
		periods.POST("/:id/documents", h.auth.RequireRole(writers...), h.SubmitDocument)
		periods.GET("/:id/extensions", h.auth.RequireRole(readRoles...), h.ListExtensions)
		periods.POST("/:id/extensions", h.auth.RequireRole(middleware.RoleManager, middleware.RoleAdmin), h.GrantExtension)
		periods.POST("/:id/recompute-due-date", h.auth.RequireRole(middleware.RoleAdmin, middleware.RoleManager), h.RecomputeDueDate)
		periods.POST("/:id/assess", h.auth.RequireRole(middleware.RoleAssessor, middleware.RoleAdmin), h.Assess)
	}
}

// ListPeriods returns filing periods
// @Summary      List filing periods
// @Tags         filing-periods
// @Security     BearerAuth
// @Produce      json
// @Param        taxpayer_id  query  string  false  "Taxpayer ID"
// @Param        tax_type     query  string  false  "Tax type"
// @Param        status       query  string  false  "OPEN, FILED, ASSESSED or PAID"
// @Param        page         query  int     false  "Page number (default: 1)"
// @Param        limit        query  int     false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response{data=[]service.FilingPeriodResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/filing-periods [get]
func (h *FilingHandler) ListPeriods(c *gin.Context) {
	p := pagination.Parse(c)
	filter := repository.FilingPeriodFilter{
		TaxType: c.Query("tax_type"),
		Status:  c.Query("status"),
		Page:    p.Page,
		Limit:   p.Limit,
	}
	if raw := c.Query("taxpayer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid taxpayer_id"))
			return
		}
		filter.TaxpayerID = &id
	}

	periods, total, err := h.filingService.ListPeriods(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, periods, p, total))
}

// GetPeriod returns one filing period
// @Summary      Get filing period
// @Tags         filing-periods
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Filing period ID"
// @Success      200  {object}  response.Response{data=service.FilingPeriodResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/filing-periods/{id} [get]
func (h *FilingHandler) GetPeriod(c *gin.Context) {
	period, err := h.filingService.GetPeriod(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, period))
}

// OpenPeriod opens a period and fixes its statutory due date
// @Summary      Open filing period
// @Tags         filing-periods
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.OpenFilingPeriodRequest  true  "Period"
// @Success      201  {object}  response.Response{data=service.FilingPeriodResponse}
// @Failure      422  {object}  response.Response
// @Router       /api/filing-periods [post]
func (h *FilingHandler) OpenPeriod(c *gin.Context) {
	var req service.OpenFilingPeriodRequest
	if !bindJSON(c, &req) {
		return
	}
	period, err := h.filingService.OpenPeriod(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, period))
}

// FileReturn records the filing of a return
// @Summary      File return
// @Tags         filing-periods
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Filing period ID"
// @Param        payload  body  service.FileReturnRequest  true  "Declaration"
// @Success      200  {object}  response.Response{data=service.FilingPeriodResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/filing-periods/{id}/file [post]
func (h *FilingHandler) FileReturn(c *gin.Context) {
	var req service.FileReturnRequest
	if !bindJSON(c, &req) {
		return
	}
	period, err := h.filingService.FileReturn(c.Request.Context(), c.Param("id"), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, period))
}

// RecordPayment adds a payment against the amount due
// @Summary      Record payment
// @Tags         filing-periods
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Filing period ID"
// @Param        payload  body  service.RecordPaymentRequest  true  "Payment"
// @Success      200  {object}  response.Response{data=service.FilingPeriodResponse}
// @Router       /api/filing-periods/{id}/payments [post]
func (h *FilingHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	period, err := h.filingService.RecordPayment(c.Request.Context(), c.Param("id"), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, period))
}

// SubmitDocument marks a required document as received
// @Summary      Submit document
// @Tags         filing-periods
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Filing period ID"
// @Param        payload  body  service.SubmitDocumentRequest  true  "Document"
// @Success      200  {object}  response.Response{data=service.FilingPeriodResponse}
// @Router       /api/filing-periods/{id}/documents [post]
func (h *FilingHandler) SubmitDocument(c *gin.Context) {
	var req service.SubmitDocumentRequest
	if !bindJSON(c, &req) {
		return
	}
	period, err := h.filingService.SubmitDocument(c.Request.Context(), c.Param("id"), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, period))
}

// ListExtensions returns the extensions granted on a period
// @Summary      List extensions
// @Tags         filing-periods
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Filing period ID"
// @Success      200  {object}  response.Response{data=[]service.ExtensionResponse}
// @Router       /api/filing-periods/{id}/extensions [get]
func (h *FilingHandler) ListExtensions(c *gin.Context) {
	exts, err := h.filingService.ListExtensions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, exts))
}

// GrantExtension approves a deadline extension. The caller is recorded as approver.
// @Summary      Grant extension
// @Tags         filing-periods
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Filing period ID"
// @Param        payload  body  service.GrantExtensionRequest  true  "Extension"
// @Success      201  {object}  response.Response{data=service.GrantExtensionResponse}
// @Failure      422  {object}  response.Response
// @Router       /api/filing-periods/{id}/extensions [post]
func (h *FilingHandler) GrantExtension(c *gin.Context) {
	var req service.GrantExtensionRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.filingService.GrantExtension(c.Request.Context(), c.Param("id"), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// RecomputeDueDate re-evaluates the due date against the current calendar
// @Summary      Recompute due date
// @Tags         filing-periods
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Filing period ID"
// @Success      200  {object}  response.Response{data=service.FilingPeriodResponse}
// @Router       /api/filing-periods/{id}/recompute-due-date [post]
func (h *FilingHandler) RecomputeDueDate(c *gin.Context) {
	period, err := h.filingService.RecomputeDueDate(c.Request.Context(), c.Param("id"), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, period))
}

// Assess computes liability, penalties and interest for a period
// @Summary      Assess filing period
// @Tags         filing-periods
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "Filing period ID"
// @Param        payload  body  service.AssessRequest  true  "Assessment date"
// @Success      200  {object}  response.Response{data=service.AssessmentResponse}
// @Failure      422  {object}  response.Response
// @Router       /api/filing-periods/{id}/assess [post]
func (h *FilingHandler) Assess(c *gin.Context) {
	var req service.AssessRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.filingService.Assess(c.Request.Context(), c.Param("id"), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
