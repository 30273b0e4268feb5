package handler

import (
	"net/http"

	"taxoffice/internal/middleware"
	"taxoffice/internal/service"
	"taxoffice/pkg/pagination"
	"taxoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

// Roles allowed to read configuration and records.
var readRoles = []string{middleware.RoleAdmin, middleware.RoleManager, middleware.RoleAssessor, middleware.RoleClerk}

type TaxHandler struct {
	taxService service.TaxService
	auth       *middleware.Auth
}

func NewTaxHandler(taxService service.TaxService, auth *middleware.Auth) *TaxHandler {
	return &TaxHandler{taxService: taxService, auth: auth}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/api/rate-books")
	{
		books.GET("", h.auth.RequireRole(readRoles...), h.ListRateBooks)
		books.GET("/resolve", h.auth.RequireRole(readRoles...), h.ResolveRateBook)
		books.GET("/:id", h.auth.RequireRole(readRoles...), h.GetRateBook)
		books.POST("", h.auth.RequireRole(middleware.RoleAdmin), h.CreateRateBook)
		books.POST("/supersede", h.auth.RequireRole(middleware.RoleAdmin), h.SupersedeRateBook)
	}

	router.POST("/api/calculations", h.auth.RequireRole(readRoles...), h.CalculateLiability)
}

// ListRateBooks returns stored rate-book versions, newest first
// @Summary      List rate books
// @Tags         rate-books
// @Security     BearerAuth
// @Produce      json
// @Param        tax_type      query  string  false  "INCOME, CORPORATE, GST, WHT or EXCISE"
// @Param        jurisdiction  query  string  false  "Jurisdiction code"
// @Param        page          query  int     false  "Page number (default: 1)"
// @Param        limit         query  int     false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response{data=[]service.RateBookResponse}
// @Router       /api/rate-books [get]
func (h *TaxHandler) ListRateBooks(c *gin.Context) {
	p := pagination.Parse(c)
	books, total, err := h.taxService.ListRateBooks(c.Request.Context(), c.Query("tax_type"), c.Query("jurisdiction"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, books, p, total))
}

// GetRateBook returns one stored version
// @Summary      Get rate book
// @Tags         rate-books
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Rate book ID"
// @Success      200  {object}  response.Response{data=service.RateBookResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/rate-books/{id} [get]
func (h *TaxHandler) GetRateBook(c *gin.Context) {
	book, err := h.taxService.GetRateBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, book))
}

// ResolveRateBook returns the version in force on a date
// @Summary      Resolve rate book
// @Tags         rate-books
// @Security     BearerAuth
// @Produce      json
// @Param        tax_type      query  string  true  "Tax type"
// @Param        jurisdiction  query  string  true  "Jurisdiction code"
// @Param        as_of         query  string  true  "Date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=service.RateBookResponse}
// @Failure      422  {object}  response.Response
// @Router       /api/rate-books/resolve [get]
func (h *TaxHandler) ResolveRateBook(c *gin.Context) {
	book, err := h.taxService.ResolveRateBook(c.Request.Context(), c.Query("tax_type"), c.Query("jurisdiction"), c.Query("as_of"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, book))
}

// CreateRateBook appends a new version; it must not overlap any stored version
// @Summary      Create rate book
// @Tags         rate-books
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateRateBookRequest  true  "Rate book"
// @Success      201  {object}  response.Response{data=service.RateBookResponse}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/rate-books [post]
func (h *TaxHandler) CreateRateBook(c *gin.Context) {
	var req service.CreateRateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	book, err := h.taxService.CreateRateBook(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, book))
}

// SupersedeRateBook closes the open version and appends a new one in one step
// @Summary      Supersede rate book
// @Tags         rate-books
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateRateBookRequest  true  "New version"
// @Success      201  {object}  response.Response{data=service.SupersedeRateBookResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/rate-books/supersede [post]
func (h *TaxHandler) SupersedeRateBook(c *gin.Context) {
	var req service.CreateRateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.taxService.SupersedeRateBook(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// CalculateLiability computes the tax on a declaration without storing anything
// @Summary      Calculate liability
// @Tags         calculations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CalculateRequest  true  "Declaration"
// @Success      200  {object}  response.Response{data=service.LiabilityResponse}
// @Failure      422  {object}  response.Response
// @Router       /api/calculations [post]
func (h *TaxHandler) CalculateLiability(c *gin.Context) {
	var req service.CalculateRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.taxService.CalculateLiability(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
