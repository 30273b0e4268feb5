package handler

import (
	"net/http"

	"taxoffice/internal/middleware"
	"taxoffice/internal/service"
	"taxoffice/pkg/pagination"
	"taxoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type ComplianceHandler struct {
	complianceService service.ComplianceService
	auth              *middleware.Auth
}

func NewComplianceHandler(complianceService service.ComplianceService, auth *middleware.Auth) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService, auth: auth}
}

func (h *ComplianceHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/compliance")
	{
		group.POST("/score", h.auth.RequireRole(middleware.RoleAdmin, middleware.RoleAssessor, middleware.RoleManager), h.Score)
		group.POST("/recompute", h.auth.RequireRole(middleware.RoleAdmin), h.RecomputeAll)
		group.GET("/:taxpayer_id/history", h.auth.RequireRole(readRoles...), h.History)
	}
}

// Score computes and stores a compliance snapshot for one taxpayer
// @Summary      Score taxpayer
// @Tags         compliance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.ScoreRequest  true  "Taxpayer and period"
// @Success      201  {object}  response.Response{data=service.ComplianceSnapshotResponse}
// @Success      200  {object}  response.Response{data=service.ComplianceSnapshotResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/compliance/score [post]
func (h *ComplianceHandler) Score(c *gin.Context) {
	var req service.ScoreRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.complianceService.Score(c.Request.Context(), req, middleware.Actor(c))
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

// RecomputeAll rescores a batch of taxpayers; a failure on one does not stop the rest
// @Summary      Recompute compliance
// @Tags         compliance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.RecomputeRequest  true  "Batch"
// @Success      200  {object}  response.Response{data=service.RecomputeResponse}
// @Router       /api/compliance/recompute [post]
func (h *ComplianceHandler) RecomputeAll(c *gin.Context) {
	var req service.RecomputeRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.complianceService.RecomputeAll(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// History returns stored snapshots, newest first
// @Summary      Compliance history
// @Tags         compliance
// @Security     BearerAuth
// @Produce      json
// @Param        taxpayer_id  path   string  true   "Taxpayer ID"
// @Param        page         query  int     false  "Page number (default: 1)"
// @Param        limit        query  int     false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response{data=[]service.ComplianceSnapshotResponse}
// @Router       /api/compliance/{taxpayer_id}/history [get]
func (h *ComplianceHandler) History(c *gin.Context) {
	p := pagination.Parse(c)
	snaps, total, err := h.complianceService.History(c.Request.Context(), c.Param("taxpayer_id"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, snaps, p, total))
}
