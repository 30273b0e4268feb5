package app

import (
	"net/http"

	"taxoffice/internal/config"
	"taxoffice/internal/handler"
	"taxoffice/internal/logger"
	"taxoffice/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the gin engine with every API route registered.
func NewRouter(a *App, cfg *config.Config) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logger.GinMiddleware(a.Log), logger.Recovery(a.Log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	auth := middleware.NewAuth(cfg.JWT.Secret)
	api := router.Group("")
	handler.NewTaxHandler(a.Tax, auth).RegisterRoutes(api)
	handler.NewPenaltyHandler(a.Penalty, auth).RegisterRoutes(api)
	handler.NewCalendarHandler(a.Calendar, auth).RegisterRoutes(api)
	handler.NewTaxpayerHandler(a.Taxpayer, auth).RegisterRoutes(api)
	handler.NewFilingHandler(a.Filing, auth).RegisterRoutes(api)
	handler.NewComplianceHandler(a.Compliance, auth).RegisterRoutes(api)
	handler.NewAuditHandler(a.Audit, auth).RegisterRoutes(api)

	return router
}
