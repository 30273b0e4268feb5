package service

import (
	"context"
	"testing"

	"taxoffice/internal/config"
	"taxoffice/internal/database"
	"taxoffice/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	engine *Engine

	rateBooks    repository.RateBookRepository
	penaltyRules repository.PenaltyRuleRepository
	calendars    repository.CalendarRepository
	taxpayers    repository.TaxpayerRepository
	filings      repository.FilingRepository
	compliance   repository.ComplianceRepository
	audit        repository.AuditRepository
	tx           repository.TransactionManager

	tax          TaxService
	penalty      PenaltyService
	calendar     CalendarService
	taxpayer     TaxpayerService
	filing       FilingService
	complianceSv ComplianceService
	auditSv      AuditService
}

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		DefaultJurisdiction:    "NT",
		LateFilerThresholdDays: 30,
		NeutralScore:           "50",
		TimelinessHorizonDays:  90,
		BatchConcurrency:       3,
		CategoryBands:          config.CategoryBandsConfig{Large: "50000000", Medium: "10000000", Small: "1000000"},
		Weights: config.WeightsConfig{
			Name:                 "default",
			FilingCompleteness:   "0.30",
			PaymentTimeliness:    "0.30",
			DocumentCompleteness: "0.20",
			GeneralTimeliness:    "0.20",
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewConnection(config.DatabaseConfig{Driver: "sqlite", DBName: ":memory:", LogLevel: "silent"}, zap.NewNop())
	require.NoError(t, err)
	eng, err := NewEngine(testEngineConfig())
	require.NoError(t, err)

	env := &testEnv{
		db:           db,
		engine:       eng,
		rateBooks:    repository.NewRateBookRepository(db),
		penaltyRules: repository.NewPenaltyRuleRepository(db),
		calendars:    repository.NewCalendarRepository(db),
		taxpayers:    repository.NewTaxpayerRepository(db),
		filings:      repository.NewFilingRepository(db),
		compliance:   repository.NewComplianceRepository(db),
		audit:        repository.NewAuditRepository(db),
		tx:           repository.NewTransactionManager(db),
	}
	log := zap.NewNop()
	env.tax = NewTaxService(env.rateBooks, env.taxpayers, env.audit, env.tx, eng, log)
	env.penalty = NewPenaltyService(env.penaltyRules, env.taxpayers, env.audit, env.tx, eng, log)
	env.calendar = NewCalendarService(env.calendars, env.taxpayers, env.audit, env.tx, eng, log)
	env.taxpayer = NewTaxpayerService(env.taxpayers, env.audit, env.tx, eng, log)
	env.filing = NewFilingService(env.filings, env.taxpayers, env.audit, env.tx, eng, log)
	env.complianceSv = NewComplianceService(env.compliance, env.filings, env.taxpayers, env.audit, env.tx, eng, log)
	env.auditSv = NewAuditService(env.audit)
	return env
}

func (e *testEnv) auditCount(t *testing.T, action string) int64 {
	t.Helper()
	_, total, err := e.audit.List(context.Background(), repository.AuditFilter{Action: action, Page: 1, Limit: 100})
	require.NoError(t, err)
	return total
}

func (e *testEnv) createTaxpayer(t *testing.T, name, turnover string) TaxpayerResponse {
	t.Helper()
	tp, err := e.taxpayer.CreateTaxpayer(context.Background(), CreateTaxpayerRequest{
		Name:     name,
		TaxCode:  "TC-" + name,
		Turnover: turnover,
	}, "clerk-1")
	require.NoError(t, err)
	return tp
}

func incomeBookRequest(from string) CreateRateBookRequest {
	return CreateRateBookRequest{
		TaxType:       "INCOME",
		Jurisdiction:  "NT",
		EffectiveFrom: from,
		Entries: []RateEntryPayload{
			{Threshold: "0", Rate: "0"},
			{Threshold: "50000", Rate: "0.15"},
			{Threshold: "100000", Rate: "0.25"},
		},
	}
}
