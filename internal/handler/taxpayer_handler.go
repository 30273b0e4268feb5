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

type TaxpayerHandler struct {
	taxpayerService service.TaxpayerService
	auth            *middleware.Auth
}

func NewTaxpayerHandler(taxpayerService service.TaxpayerService, auth *middleware.Auth) *TaxpayerHandler {
	return &TaxpayerHandler{taxpayerService: taxpayerService, auth: auth}
}

func (h *TaxpayerHandler) RegisterRoutes(router *gin.RouterGroup) {
	taxpayers := router.Group("/api/taxpayers")
	{
		taxpayers.GET("", h.auth.RequireRole(readRoles...), h.ListTaxpayers)
		taxpayers.GET("/:id", h.auth.RequireRole(readRoles...), h.GetTaxpayer)
		taxpayers.POST("", h.auth.RequireRole(middleware.RoleAdmin, middleware.RoleClerk), h.CreateTaxpayer)
		taxpayers.PATCH("/:id", h.auth.RequireRole(middleware.RoleAdmin, middleware.RoleClerk), h.UpdateTaxpayer)
	}
}

// ListTaxpayers returns paginated taxpayers
// @Summary      List taxpayers
// @Tags         taxpayers
// @Security     BearerAuth
// @Produce      json
// @Param        jurisdiction  query  string  false  "Jurisdiction code"
// @Param        category      query  string  false  "LARGE, MEDIUM, SMALL or MICRO"
// @Param        search        query  string  false  "Search by name or tax code"
// @Param        page          query  int     false  "Page number (default: 1)"
// @Param        limit         query  int     false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response{data=[]service.TaxpayerResponse}
// @Router       /api/taxpayers [get]
func (h *TaxpayerHandler) ListTaxpayers(c *gin.Context) {
	p := pagination.Parse(c)
	taxpayers, total, err := h.taxpayerService.GetTaxpayers(c.Request.Context(), repository.TaxpayerFilter{
		Jurisdiction: c.Query("jurisdiction"),
		Category:     c.Query("category"),
		Search:       c.Query("search"),
		Page:         p.Page,
		Limit:        p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, taxpayers, p, total))
}

// GetTaxpayer returns one taxpayer
// @Summary      Get taxpayer
// @Tags         taxpayers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Taxpayer ID"
// @Success      200  {object}  response.Response{data=service.TaxpayerResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/taxpayers/{id} [get]
func (h *TaxpayerHandler) GetTaxpayer(c *gin.Context) {
	tp, err := h.taxpayerService.GetTaxpayer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, tp))
}

// CreateTaxpayer registers a taxpayer; the category follows from turnover
// @Summary      Create taxpayer
// @Tags         taxpayers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateTaxpayerRequest  true  "Taxpayer"
// @Success      201  {object}  response.Response{data=service.TaxpayerResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/taxpayers [post]
func (h *TaxpayerHandler) CreateTaxpayer(c *gin.Context) {
	var req service.CreateTaxpayerRequest
	if !bindJSON(c, &req) {
		return
	}
	tp, err := h.taxpayerService.CreateTaxpayer(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tp))
}

// UpdateTaxpayer applies a partial update; a turnover change recategorizes
// @Summary      Update taxpayer
// @Tags         taxpayers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Taxpayer ID"
// @Param        payload  body  service.UpdateTaxpayerRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=service.TaxpayerResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/taxpayers/{id} [patch]
func (h *TaxpayerHandler) UpdateTaxpayer(c *gin.Context) {
	var req service.UpdateTaxpayerRequest
	if !bindJSON(c, &req) {
		return
	}
	tp, err := h.taxpayerService.UpdateTaxpayer(c.Request.Context(), c.Param("id"), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, tp))
}
