package handler

import (
	"net/http"

	"taxoffice/internal/middleware"
	"taxoffice/internal/repository"
	"taxoffice/internal/service"
	"taxoffice/pkg/pagination"
	"taxoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type PenaltyHandler struct {
	penaltyService service.PenaltyService
	auth           *middleware.Auth
}

func NewPenaltyHandler(penaltyService service.PenaltyService, auth *middleware.Auth) *PenaltyHandler {
	return &PenaltyHandler{penaltyService: penaltyService, auth: auth}
}

func (h *PenaltyHandler) RegisterRoutes(router *gin.RouterGroup) {
	rules := router.Group("/api/penalty-rules")
	{
		rules.GET("", h.auth.RequireRole(readRoles...), h.ListPenaltyRules)
		rules.POST("", h.auth.RequireRole(middleware.RoleAdmin), h.CreatePenaltyRule)
		rules.POST("/supersede", h.auth.RequireRole(middleware.RoleAdmin), h.SupersedePenaltyRule)
	}

	router.POST("/api/penalties/quote", h.auth.RequireRole(readRoles...), h.QuotePenalty)
}

// ListPenaltyRules returns stored penalty rule versions
// @Summary      List penalty rules
// @Tags         penalty-rules
// @Security     BearerAuth
// @Produce      json
// @Param        tax_type      query  string  false  "Tax type"
// @Param        jurisdiction  query  string  false  "Jurisdiction code"
// @Param        bracket       query  string  false  "LATE_FILER, NON_FILER, UNDER_DECLARATION or LATE_PAYMENT_INTEREST"
// @Param        page          query  int     false  "Page number (default: 1)"
// @Param        limit         query  int     false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response{data=[]service.PenaltyRuleResponse}
// @Router       /api/penalty-rules [get]
func (h *PenaltyHandler) ListPenaltyRules(c *gin.Context) {
	p := pagination.Parse(c)
	rules, total, err := h.penaltyService.ListPenaltyRules(c.Request.Context(), repository.PenaltyRuleFilter{
		TaxType:      c.Query("tax_type"),
		Jurisdiction: c.Query("jurisdiction"),
		Bracket:      c.Query("bracket"),
		Page:         p.Page,
		Limit:        p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, rules, p, total))
}

// CreatePenaltyRule appends a penalty rule version
// @Summary      Create penalty rule
// @Tags         penalty-rules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreatePenaltyRuleRequest  true  "Penalty rule"
// @Success      201  {object}  response.Response{data=service.PenaltyRuleResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/penalty-rules [post]
func (h *PenaltyHandler) CreatePenaltyRule(c *gin.Context) {
	var req service.CreatePenaltyRuleRequest
	if !bindJSON(c, &req) {
		return
	}
	rule, err := h.penaltyService.CreatePenaltyRule(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rule))
}

// SupersedePenaltyRule closes the open version and appends a new one
// @Summary      Supersede penalty rule
// @Tags         penalty-rules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreatePenaltyRuleRequest  true  "New version"
// @Success      201  {object}  response.Response{data=service.SupersedePenaltyRuleResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/penalty-rules/supersede [post]
func (h *PenaltyHandler) SupersedePenaltyRule(c *gin.Context) {
	var req service.CreatePenaltyRuleRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.penaltyService.SupersedePenaltyRule(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// QuotePenalty previews penalty and interest for a late filing
// @Summary      Quote penalty
// @Tags         penalties
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.PenaltyQuoteRequest  true  "Filing facts"
// @Success      200  {object}  response.Response{data=service.PenaltyQuoteResponse}
// @Failure      422  {object}  response.Response
// @Router       /api/penalties/quote [post]
func (h *PenaltyHandler) QuotePenalty(c *gin.Context) {
	var req service.PenaltyQuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.penaltyService.QuotePenalty(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
