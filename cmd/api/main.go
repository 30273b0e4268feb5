package main

import (
	"context"
	"log"

	_ "taxoffice/api/swagger" // swagger docs
	"taxoffice/internal/app"
	"taxoffice/internal/config"
	"taxoffice/internal/logger"

	"go.uber.org/zap"
)

// @title           Tax Office API
// @version         1.0
// @description     Tax calculation, deadline, penalty and compliance scoring service.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer func() { _ = zlog.Sync() }()

	a, err := app.New(context.Background(), cfg, zlog)
	if err != nil {
		zlog.Fatal("Startup failed", zap.Error(err))
	}
	defer func() { _ = a.Close() }()

	router := app.NewRouter(a, cfg)

	zlog.Info("Server listening", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		zlog.Fatal("Server failed", zap.Error(err))
	}
}
