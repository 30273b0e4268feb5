package service

import (
	"context"
	"errors"
	"testing"

	"taxoffice/internal/engine"
	"taxoffice/internal/model"
	"taxoffice/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedIncomeRules configures an NT income regime: returns due 90 days after the
// period end, rolled forward, with filing, under-declaration and interest rules.
func seedIncomeRules(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	_, err := env.tax.CreateRateBook(ctx, incomeBookRequest("2024-01-01"), "admin-1")
	require.NoError(t, err)
	_, err = env.calendar.SetDeadlineRule(ctx, SetDeadlineRuleRequest{
		TaxType:        "INCOME",
		Base:           "DAYS_AFTER_PERIOD_END",
		Days:           90,
		RollConvention: "NEXT_BUSINESS_DAY",
	}, "admin-1")
	require.NoError(t, err)

	for _, r := range []CreatePenaltyRuleRequest{
		{Bracket: "LATE_FILER", FlatAmount: "100", Percentage: "0.05"},
		{Bracket: "NON_FILER", FlatAmount: "500", Percentage: "0.25"},
		{Bracket: "UNDER_DECLARATION", Percentage: "0.20"},
		{Bracket: "LATE_PAYMENT_INTEREST", Percentage: "0.0365"},
	} {
		r.TaxType = "INCOME"
		r.Jurisdiction = "NT"
		r.EffectiveFrom = "2024-01-01"
		_, err := env.penalty.CreatePenaltyRule(ctx, r, "admin-1")
		require.NoError(t, err, r.Bracket)
	}
}

func TestFilingService_DueDatesAndExtensions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedIncomeRules(t, env)
	tp := env.createTaxpayer(t, "Bob", "2000000")

	// 2024-12-31 + 90 days is Monday 2025-03-31.
	_, err := env.calendar.AddHoliday(ctx, AddHolidayRequest{Jurisdiction: "NT", Date: "2025-03-31", Name: "Founders Day"}, "admin-1")
	require.NoError(t, err)

	fp, err := env.filing.OpenPeriod(ctx, OpenFilingPeriodRequest{
		TaxpayerID:  tp.ID,
		TaxType:     "INCOME",
		Label:       "FY2024",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-12-31",
	}, "clerk-1")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-31", fp.BaseDueDate)
	assert.Equal(t, "2025-04-01", fp.DueDate, "a holiday due date rolls to the next business day")
	assert.Equal(t, model.FilingStatusOpen, fp.Status)

	t.Run("opening the same period twice fails", func(t *testing.T) {
		_, err := env.filing.OpenPeriod(ctx, OpenFilingPeriodRequest{
			TaxpayerID: tp.ID, TaxType: "INCOME", PeriodStart: "2024-01-01", PeriodEnd: "2024-12-31",
		}, "clerk-1")
		assert.Error(t, err)
	})

	_, err = env.calendar.AddHoliday(ctx, AddHolidayRequest{Jurisdiction: "NT", Date: "2025-04-01", Name: "Bridge Day"}, "admin-1")
	require.NoError(t, err)

	t.Run("stored due dates do not move on their own", func(t *testing.T) {
		got, err := env.filing.GetPeriod(ctx, fp.ID)
		require.NoError(t, err)
		assert.Equal(t, "2025-04-01", got.DueDate)
	})

	t.Run("recompute picks up the new holiday", func(t *testing.T) {
		got, err := env.filing.RecomputeDueDate(ctx, fp.ID, "clerk-1")
		require.NoError(t, err)
		assert.Equal(t, "2025-04-02", got.DueDate)
		assert.Equal(t, int64(1), env.auditCount(t, model.ActionRecomputeDueDate))
	})

	t.Run("an extension before the statutory date is rejected", func(t *testing.T) {
		_, err := env.filing.GrantExtension(ctx, fp.ID, GrantExtensionRequest{ExtendedTo: "2025-03-20", Reason: "audit"}, "manager-1")
		var target *engine.StatutoryMinimumViolationError
		assert.True(t, errors.As(err, &target))

		exts, err := env.filing.ListExtensions(ctx, fp.ID)
		require.NoError(t, err)
		assert.Empty(t, exts, "nothing is stored for a rejected grant")
	})

	t.Run("an extension on a weekend rolls forward", func(t *testing.T) {
		res, err := env.filing.GrantExtension(ctx, fp.ID, GrantExtensionRequest{ExtendedTo: "2025-04-19", Reason: "illness"}, "manager-1")
		require.NoError(t, err)
		assert.Equal(t, "2025-04-21", res.Period.DueDate)
		assert.True(t, res.Period.ExtensionApplied)
		assert.Equal(t, "manager-1", res.Extension.ApprovedBy)

		logs, _, err := env.audit.List(ctx, repository.AuditFilter{Action: model.ActionGrantExtension, Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "manager-1", logs[0].Actor)
	})

	t.Run("recompute keeps the extension", func(t *testing.T) {
		got, err := env.filing.RecomputeDueDate(ctx, fp.ID, "clerk-1")
		require.NoError(t, err)
		assert.Equal(t, "2025-04-21", got.DueDate)
		assert.Equal(t, "2025-04-02", got.StatutoryDueDate)
	})

	t.Run("an extension needs an approver", func(t *testing.T) {
		_, err := env.filing.GrantExtension(ctx, fp.ID, GrantExtensionRequest{ExtendedTo: "2025-05-01", Reason: "x"}, "")
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

func TestFilingService_FileAssessAndPay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedIncomeRules(t, env)
	tp := env.createTaxpayer(t, "Carol", "2000000")

	// Due Monday 2025-03-31.
	fp, err := env.filing.OpenPeriod(ctx, OpenFilingPeriodRequest{
		TaxpayerID:        tp.ID,
		TaxType:           "INCOME",
		PeriodStart:       "2024-01-01",
		PeriodEnd:         "2024-12-31",
		RequiredDocuments: []string{"payslips"},
	}, "clerk-1")
	require.NoError(t, err)
	require.Equal(t, "2025-03-31", fp.DueDate)

	filed, err := env.filing.FileReturn(ctx, fp.ID, FileReturnRequest{
		FiledAt:     "2025-04-10",
		Declaration: DeclarationPayload{GrossIncome: "120000"},
	}, "clerk-1")
	require.NoError(t, err)
	require.NotNil(t, filed.DeclaredAmount)
	assert.Equal(t, "12500.00", *filed.DeclaredAmount, "declared tax is computed from the declaration")
	assert.Equal(t, model.FilingStatusFiled, filed.Status)

	t.Run("filing twice is rejected", func(t *testing.T) {
		_, err := env.filing.FileReturn(ctx, fp.ID, FileReturnRequest{FiledAt: "2025-04-11"}, "clerk-1")
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("the filed declaration is assessed when none is sent", func(t *testing.T) {
		res, err := env.filing.Assess(ctx, fp.ID, AssessRequest{AsOf: "2025-04-10"}, "assessor-1")
		require.NoError(t, err)
		assert.Equal(t, "12500.00", res.Liability.Total)
		assert.Equal(t, string(engine.BracketLateFiler), res.Penalty.Bracket)
		assert.Equal(t, 10, res.Penalty.LatenessDays)
		// greater of 100 flat and 5% of 12500
		assert.Equal(t, "625.00", res.Penalty.Amount)
		// 12500 × 0.0365 × 10 / 365
		assert.Equal(t, "12.50", res.Interest.Amount)
		require.NotNil(t, res.UnderDeclaration)
		assert.Equal(t, "0.00", res.UnderDeclaration.Amount)
	})

	res, err := env.filing.Assess(ctx, fp.ID, AssessRequest{
		AsOf:        "2025-04-20",
		Declaration: &DeclarationPayload{GrossIncome: "130000"},
	}, "assessor-1")
	require.NoError(t, err)

	t.Run("a corrected declaration triggers an under-declaration penalty", func(t *testing.T) {
		assert.Equal(t, "15000.00", res.Liability.Total)
		assert.Equal(t, "750.00", res.Penalty.Amount)
		require.NotNil(t, res.UnderDeclaration)
		// 20% of the 2500 difference, not of the total
		assert.Equal(t, "500.00", res.UnderDeclaration.Amount)
		// 15000 × 0.0365 × 20 / 365
		assert.Equal(t, "30.00", res.Interest.Amount)
		assert.Equal(t, "16280.00", res.TotalDue)
		assert.Equal(t, "16280.00", res.Outstanding)
		assert.Equal(t, model.FilingStatusAssessed, res.Period.Status)
		assert.Equal(t, "2025-04-20", *res.Period.AssessedAt)
	})

	t.Run("partial payment leaves the period unpaid", func(t *testing.T) {
		got, err := env.filing.RecordPayment(ctx, fp.ID, RecordPaymentRequest{Amount: "10000", PaidAt: "2025-04-21"}, "clerk-1")
		require.NoError(t, err)
		assert.Nil(t, got.PaidAt)
		assert.Equal(t, model.FilingStatusAssessed, got.Status)
	})

	t.Run("the payment that covers the liability settles it", func(t *testing.T) {
		got, err := env.filing.RecordPayment(ctx, fp.ID, RecordPaymentRequest{Amount: "5000", PaidAt: "2025-04-22"}, "clerk-1")
		require.NoError(t, err)
		require.NotNil(t, got.PaidAt)
		assert.Equal(t, "2025-04-22", *got.PaidAt)
		assert.Equal(t, model.FilingStatusPaid, got.Status)
		assert.Equal(t, "15000.00", got.PaidAmount)
	})

	t.Run("documents are recorded once", func(t *testing.T) {
		_, err := env.filing.SubmitDocument(ctx, fp.ID, SubmitDocumentRequest{Document: "payslips"}, "clerk-1")
		require.NoError(t, err)
		got, err := env.filing.SubmitDocument(ctx, fp.ID, SubmitDocumentRequest{Document: "payslips"}, "clerk-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"payslips"}, got.SubmittedDocuments)
		assert.Equal(t, int64(1), env.auditCount(t, model.ActionSubmitDocument))
	})

	assert.Equal(t, int64(2), env.auditCount(t, model.ActionAssessLiability))
}

func TestFilingService_NonFilerAssessment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedIncomeRules(t, env)
	tp := env.createTaxpayer(t, "Dan", "2000000")

	fp, err := env.filing.OpenPeriod(ctx, OpenFilingPeriodRequest{
		TaxpayerID: tp.ID, TaxType: "INCOME", PeriodStart: "2024-01-01", PeriodEnd: "2024-12-31",
	}, "clerk-1")
	require.NoError(t, err)

	t.Run("nothing filed and nothing sent", func(t *testing.T) {
		_, err := env.filing.Assess(ctx, fp.ID, AssessRequest{AsOf: "2025-06-30"}, "assessor-1")
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("an unfiled return past due is a non-filer", func(t *testing.T) {
		res, err := env.filing.Assess(ctx, fp.ID, AssessRequest{
			AsOf:        "2025-04-05",
			Declaration: &DeclarationPayload{GrossIncome: "100000"},
		}, "assessor-1")
		require.NoError(t, err)
		assert.Equal(t, string(engine.BracketNonFiler), res.Penalty.Bracket)
		// greater of 500 flat and 25% of 7500
		assert.Equal(t, "1875.00", res.Penalty.Amount)
		assert.Nil(t, res.UnderDeclaration, "nothing was declared")
	})
}

func TestFilingService_PaidBeforeFiling(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedIncomeRules(t, env)
	tp := env.createTaxpayer(t, "Erin", "2000000")

	// Due Monday 2025-03-31.
	fp, err := env.filing.OpenPeriod(ctx, OpenFilingPeriodRequest{
		TaxpayerID: tp.ID, TaxType: "INCOME", PeriodStart: "2024-01-01", PeriodEnd: "2024-12-31",
	}, "clerk-1")
	require.NoError(t, err)

	paid, err := env.filing.RecordPayment(ctx, fp.ID, RecordPaymentRequest{Amount: "12500", PaidAt: "2025-03-01"}, "clerk-1")
	require.NoError(t, err)
	assert.Nil(t, paid.PaidAt, "nothing is owed before the return is filed")

	filed, err := env.filing.FileReturn(ctx, fp.ID, FileReturnRequest{
		FiledAt:     "2025-03-10",
		Declaration: DeclarationPayload{GrossIncome: "120000"},
	}, "clerk-1")
	require.NoError(t, err)
	require.NotNil(t, filed.PaidAt, "filing settles money already received")
	assert.Equal(t, "2025-03-01", *filed.PaidAt)
	assert.Equal(t, model.FilingStatusPaid, filed.Status)

	res, err := env.filing.Assess(ctx, fp.ID, AssessRequest{AsOf: "2025-07-29"}, "assessor-1")
	require.NoError(t, err)
	assert.Equal(t, string(engine.BracketOnTime), res.Penalty.Bracket)
	assert.Equal(t, "0.00", res.Penalty.Amount)
	assert.Equal(t, "0.00", res.Interest.Amount)
	assert.Equal(t, "2025-03-01", *res.Period.PaidAt)
	assert.Equal(t, model.FilingStatusPaid, res.Period.Status)
	assert.Equal(t, "0.00", res.Outstanding)

	t.Run("compliance sees an on-time payer", func(t *testing.T) {
		snap, err := env.complianceSv.Score(ctx, ScoreRequest{
			TaxpayerID: tp.ID, PeriodStart: "2024-01-01", PeriodEnd: "2024-12-31", AsOf: "2025-07-29",
		}, "assessor-1")
		require.NoError(t, err)
		assert.Equal(t, "100.00", snap.PaymentTimeliness)
	})
}
