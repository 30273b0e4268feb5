package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"taxoffice/internal/config"
	"taxoffice/internal/database"
	"taxoffice/internal/engine"
	"taxoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewConnection(config.DatabaseConfig{Driver: "sqlite", DBName: ":memory:", LogLevel: "silent"}, zap.NewNop())
	require.NoError(t, err)
	return db
}

func incomeBook(from time.Time, to *time.Time) *model.RateBook {
	return &model.RateBook{
		TaxType:       "INCOME",
		Jurisdiction:  "NT",
		EffectiveFrom: from,
		EffectiveTo:   to,
		Entries: []model.RateEntry{
			{Position: 1, Threshold: decimal.Zero, Rate: decimal.Zero},
			{Position: 0, Threshold: decimal.NewFromInt(50000), Rate: decimal.RequireFromString("0.15")},
		},
	}
}

func TestRateBookRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewRateBookRepository(db)
	ctx := context.Background()

	jan := engine.NewDate(2024, time.January, 1)
	jul := engine.NewDate(2024, time.July, 1)

	first := incomeBook(jan, nil)
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)

	t.Run("find by id loads entries in position order", func(t *testing.T) {
		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, found.Entries, 2)
		assert.Equal(t, 0, found.Entries[0].Position)
		assert.True(t, found.Entries[0].Rate.Equal(decimal.RequireFromString("0.15")))
	})

	t.Run("overlap detection is half-open", func(t *testing.T) {
		n, err := repo.FindOverlapping(ctx, "INCOME", "NT", jul, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, "open version overlaps everything after it")

		require.NoError(t, repo.CloseVersion(ctx, first.ID, jul))
		n, err = repo.FindOverlapping(ctx, "INCOME", "NT", jul, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n, "a version ending on the new start does not overlap")

		n, err = repo.FindOverlapping(ctx, "INCOME", "NT", jul, nil, &first.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("closing twice fails", func(t *testing.T) {
		err := repo.CloseVersion(ctx, first.ID, jul)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	second := incomeBook(jul, nil)
	second.Entries[0].Rate = decimal.RequireFromString("0.05")
	require.NoError(t, repo.Create(ctx, second))

	t.Run("find active honours the exclusive end date", func(t *testing.T) {
		got, err := repo.FindActive(ctx, "INCOME", "NT", engine.NewDate(2024, time.June, 30))
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)

		got, err = repo.FindActive(ctx, "INCOME", "NT", jul)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)

		_, err = repo.FindActive(ctx, "INCOME", "NT", engine.NewDate(2023, time.December, 31))
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("list all is oldest first", func(t *testing.T) {
		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID, all[0].ID)
		require.NotNil(t, all[0].EffectiveTo)
		assert.True(t, engine.Date(*all[0].EffectiveTo).Equal(jul))
	})

	t.Run("paged list filters by scope", func(t *testing.T) {
		books, total, err := repo.List(ctx, "INCOME", "", 1, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, books, 1)

		_, total, err = repo.List(ctx, "GST", "", 1, 10)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestCalendarRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCalendarRepository(db)
	ctx := context.Background()

	day := engine.NewDate(2024, time.April, 30)
	written, err := repo.AddHoliday(ctx, &model.Holiday{Jurisdiction: "NT", Date: day, Name: "Founders Day"})
	require.NoError(t, err)
	assert.True(t, written)

	written, err = repo.AddHoliday(ctx, &model.Holiday{Jurisdiction: "NT", Date: day, Name: "Duplicate"})
	require.NoError(t, err)
	assert.False(t, written, "holidays are append-only, a duplicate date is ignored")

	_, err = repo.AddHoliday(ctx, &model.Holiday{Jurisdiction: "NT", Date: engine.NewDate(2025, time.January, 1), Name: "New Year"})
	require.NoError(t, err)

	holidays, err := repo.ListHolidays(ctx, "NT", 2024)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Founders Day", holidays[0].Name)

	all, err := repo.ListAllHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	rule := &model.DeadlineRule{TaxType: "GST", Base: "DAYS_AFTER_PERIOD_END", Days: 30, RollConvention: "NEXT_BUSINESS_DAY"}
	require.NoError(t, repo.UpsertDeadlineRule(ctx, rule))
	replacement := &model.DeadlineRule{TaxType: "GST", Base: "DAYS_AFTER_PERIOD_END", Days: 21, RollConvention: "PREVIOUS_BUSINESS_DAY"}
	require.NoError(t, repo.UpsertDeadlineRule(ctx, replacement))

	rules, err := repo.ListDeadlineRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 21, rules[0].Days)
	assert.Equal(t, "PREVIOUS_BUSINESS_DAY", rules[0].RollConvention)
}

func TestFilingRepository(t *testing.T) {
	db := newTestDB(t)
	taxpayers := NewTaxpayerRepository(db)
	repo := NewFilingRepository(db)
	ctx := context.Background()

	tp := &model.Taxpayer{Name: "Acme", TaxCode: "TC-1", Jurisdiction: "NT", Category: "LARGE", IsActive: true}
	require.NoError(t, taxpayers.Create(ctx, tp))

	q1 := &model.FilingPeriod{
		TaxpayerID:  tp.ID,
		TaxType:     "GST",
		Label:       "2024-Q1",
		PeriodStart: engine.NewDate(2024, time.January, 1),
		PeriodEnd:   engine.NewDate(2024, time.March, 31),
		DueDate:     engine.NewDate(2024, time.May, 1),
	}
	require.NoError(t, repo.Create(ctx, q1))
	assert.Equal(t, "[]", q1.RequiredDocuments)

	dup := *q1
	dup.ID = uuid.Nil
	assert.Error(t, repo.Create(ctx, &dup), "one period per taxpayer, tax type and range")

	found, err := repo.FindByID(ctx, q1.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Taxpayer)
	assert.Equal(t, "Acme", found.Taxpayer.Name)
	assert.Equal(t, "2024-01-01/2024-03-31", found.Period().Key())

	ext := &model.DeadlineExtension{
		FilingPeriodID: q1.ID, TaxpayerID: tp.ID, TaxType: "GST", PeriodKey: found.Period().Key(),
		ExtendedTo: engine.NewDate(2024, time.May, 20), ApprovedBy: "manager-1",
	}
	require.NoError(t, repo.CreateExtension(ctx, ext))
	gotExt, err := repo.FindExtension(ctx, ext.ID)
	require.NoError(t, err)
	assert.Equal(t, "manager-1", gotExt.ApprovedBy)

	exts, err := repo.ListExtensions(ctx, q1.ID)
	require.NoError(t, err)
	assert.Len(t, exts, 1)

	within, err := repo.ListWithin(ctx, tp.ID, engine.NewDate(2024, time.January, 1), engine.NewDate(2024, time.December, 31))
	require.NoError(t, err)
	assert.Len(t, within, 1)

	within, err = repo.ListWithin(ctx, tp.ID, engine.NewDate(2024, time.April, 1), engine.NewDate(2024, time.December, 31))
	require.NoError(t, err)
	assert.Empty(t, within)

	ids, err := taxpayers.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tp.ID}, ids)
}

func TestComplianceRepository_SaveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewComplianceRepository(db)
	ctx := context.Background()
	taxpayerID := uuid.New()

	snap := model.ComplianceSnapshot{
		TaxpayerID:  taxpayerID,
		PeriodKey:   "2024-01-01/2024-12-31",
		AsOf:        engine.NewDate(2024, time.December, 31),
		Overall:     decimal.RequireFromString("70.5"),
		WeightsName: "default",
		Digest:      "abc123",
	}
	first := snap
	written, err := repo.Save(ctx, &first)
	require.NoError(t, err)
	assert.True(t, written)

	again := snap
	written, err = repo.Save(ctx, &again)
	require.NoError(t, err)
	assert.False(t, written)

	history, total, err := repo.History(ctx, taxpayerID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, history, 1)
	assert.True(t, history[0].Overall.Equal(decimal.RequireFromString("70.50")))

	byDigest, err := repo.FindByDigest(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byDigest.ID)
}

func TestTransactionManager_RollsBack(t *testing.T) {
	db := newTestDB(t)
	tx := NewTransactionManager(db)
	audit := NewAuditRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, audit.Log(txCtx, &model.AuditLog{Actor: "tester", Action: model.ActionAddHoliday, Details: "{}"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := audit.List(ctx, AuditFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, tx.RunInTx(ctx, func(txCtx context.Context) error {
		return audit.Log(txCtx, &model.AuditLog{Actor: "tester", Action: model.ActionAddHoliday, EntityID: "NT", Details: "{}"})
	}))
	logs, total, err := audit.List(ctx, AuditFilter{Action: model.ActionAddHoliday, EntityID: "NT", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "tester", logs[0].Actor)
}

func TestTransactionManager_NestedCallsJoinTheOuterTx(t *testing.T) {
	db := newTestDB(t)
	tx := NewTransactionManager(db)
	audit := NewAuditRepository(db)
	ctx := context.Background()

	assert.False(t, InTx(ctx))
	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(outer context.Context) error {
		assert.True(t, InTx(outer))
		require.NoError(t, tx.RunInTx(outer, func(inner context.Context) error {
			return audit.Log(inner, &model.AuditLog{Actor: "tester", Action: model.ActionAddHoliday, Details: "{}"})
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := audit.List(ctx, AuditFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total, "the inner write rolls back with the outer transaction")

	t.Run("actor filter", func(t *testing.T) {
		require.NoError(t, audit.Log(ctx, &model.AuditLog{Actor: "alice", Action: model.ActionAddHoliday, Details: "{}"}))
		require.NoError(t, audit.Log(ctx, &model.AuditLog{Actor: "bob", Action: model.ActionAddHoliday, Details: "{}"}))
		logs, total, err := audit.List(ctx, AuditFilter{Actor: "bob"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "bob", logs[0].Actor)
	})
}
