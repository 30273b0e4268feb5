// Package app wires repositories, the calculation engine and services together so
// the HTTP server and the command-line tool share one composition root.
package app

import (
	"context"
	"fmt"

	"taxoffice/internal/config"
	"taxoffice/internal/database"
	"taxoffice/internal/repository"
	"taxoffice/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	DB     *gorm.DB
	Engine *service.Engine
	Log    *zap.Logger

	Tax        service.TaxService
	Penalty    service.PenaltyService
	Calendar   service.CalendarService
	Taxpayer   service.TaxpayerService
	Filing     service.FilingService
	Compliance service.ComplianceService
	Audit      service.AuditService
}

// New opens the database, hydrates the engine from stored configuration and builds
// every service.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.NewConnection(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return Build(ctx, db, cfg.Engine, log)
}

// Build wires services on an already migrated database.
func Build(ctx context.Context, db *gorm.DB, engineCfg config.EngineConfig, log *zap.Logger) (*App, error) {
	eng, err := service.NewEngine(engineCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	rateBookRepo := repository.NewRateBookRepository(db)
	penaltyRuleRepo := repository.NewPenaltyRuleRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	taxpayerRepo := repository.NewTaxpayerRepository(db)
	filingRepo := repository.NewFilingRepository(db)
	complianceRepo := repository.NewComplianceRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	loader := service.NewRegistryLoader(rateBookRepo, penaltyRuleRepo, calendarRepo, log.Named("registry"))
	if err := loader.Load(ctx, eng); err != nil {
		return nil, err
	}

	return &App{
		DB:         db,
		Engine:     eng,
		Log:        log,
		Tax:        service.NewTaxService(rateBookRepo, taxpayerRepo, auditRepo, txManager, eng, log),
		Penalty:    service.NewPenaltyService(penaltyRuleRepo, taxpayerRepo, auditRepo, txManager, eng, log),
		Calendar:   service.NewCalendarService(calendarRepo, taxpayerRepo, auditRepo, txManager, eng, log),
		Taxpayer:   service.NewTaxpayerService(taxpayerRepo, auditRepo, txManager, eng, log),
		Filing:     service.NewFilingService(filingRepo, taxpayerRepo, auditRepo, txManager, eng, log),
		Compliance: service.NewComplianceService(complianceRepo, filingRepo, taxpayerRepo, auditRepo, txManager, eng, log),
		Audit:      service.NewAuditService(auditRepo),
	}, nil
}

// Close releases the underlying connection pool.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
