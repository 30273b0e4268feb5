package handler

import (
	"errors"
	"net/http"

	"taxoffice/internal/engine"
	"taxoffice/internal/logger"
	"taxoffice/internal/service"
	"taxoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// statusFor maps service and engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrConfigurationConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, engine.ErrNoApplicableRule),
		errors.Is(err, engine.ErrStatutoryMinimumViolation),
		errors.Is(err, engine.ErrUnitBasisMismatch),
		errors.Is(err, engine.ErrInvalidDeclaration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err in the standard envelope. Internal errors are logged and
// their detail is withheld from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromGin(c).Error("request failed", zap.Error(err))
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.JSON(status, response.Error(status, msg))
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return false
	}
	return true
}
