package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"taxoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// complianceFixture creates three taxpayers for FY2024 income tax, due 2025-03-31:
// "good" filed, paid and documented on time, "empty" has no obligations and "late"
// never filed.
func complianceFixture(t *testing.T, env *testEnv) (good, empty, late TaxpayerResponse) {
	t.Helper()
	ctx := context.Background()
	seedIncomeRules(t, env)

	good = env.createTaxpayer(t, "Good", "200000")
	empty = env.createTaxpayer(t, "Empty", "200000")
	late = env.createTaxpayer(t, "Late", "200000")

	open := func(tp TaxpayerResponse, docs ...string) FilingPeriodResponse {
		fp, err := env.filing.OpenPeriod(ctx, OpenFilingPeriodRequest{
			TaxpayerID:        tp.ID,
			TaxType:           "INCOME",
			Label:             "FY2024",
			PeriodStart:       "2024-01-01",
			PeriodEnd:         "2024-12-31",
			RequiredDocuments: docs,
		}, "clerk-1")
		require.NoError(t, err)
		require.Equal(t, "2025-03-31", fp.DueDate)
		return fp
	}

	fp := open(good, "payslips")
	_, err := env.filing.FileReturn(ctx, fp.ID, FileReturnRequest{FiledAt: "2025-03-31", DeclaredAmount: "1000"}, "clerk-1")
	require.NoError(t, err)
	paid, err := env.filing.RecordPayment(ctx, fp.ID, RecordPaymentRequest{Amount: "1000", PaidAt: "2025-03-31"}, "clerk-1")
	require.NoError(t, err)
	require.Equal(t, model.FilingStatusPaid, paid.Status)
	_, err = env.filing.SubmitDocument(ctx, fp.ID, SubmitDocumentRequest{Document: "payslips"}, "clerk-1")
	require.NoError(t, err)

	open(late)
	return good, empty, late
}

func scoreRequest(tp TaxpayerResponse, asOf string) ScoreRequest {
	return ScoreRequest{
		TaxpayerID:  tp.ID,
		Label:       "FY2024",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-12-31",
		AsOf:        asOf,
	}
}

func TestComplianceService_Score(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	good, empty, late := complianceFixture(t, env)

	t.Run("fully compliant taxpayer", func(t *testing.T) {
		snap, err := env.complianceSv.Score(ctx, scoreRequest(good, "2025-06-30"), "scorer")
		require.NoError(t, err)
		assert.True(t, snap.Created)
		assert.Equal(t, "100.00", snap.FilingCompleteness)
		assert.Equal(t, "100.00", snap.PaymentTimeliness)
		assert.Equal(t, "100.00", snap.DocumentCompleteness)
		assert.Equal(t, "100.00", snap.GeneralTimeliness)
		assert.Equal(t, "100.00", snap.Overall)
		assert.Equal(t, "default", snap.WeightsName)
		assert.Equal(t, "2024-01-01/2024-12-31", snap.PeriodKey)
		assert.Len(t, snap.Digest, 64)
	})

	t.Run("no records scores neutral", func(t *testing.T) {
		snap, err := env.complianceSv.Score(ctx, scoreRequest(empty, "2025-06-30"), "scorer")
		require.NoError(t, err)
		assert.Equal(t, "50.00", snap.FilingCompleteness)
		assert.Equal(t, "50.00", snap.PaymentTimeliness)
		assert.Equal(t, "50.00", snap.DocumentCompleteness)
		assert.Equal(t, "50.00", snap.GeneralTimeliness)
		assert.Equal(t, "50.00", snap.Overall)
	})

	t.Run("unfiled return past the horizon", func(t *testing.T) {
		snap, err := env.complianceSv.Score(ctx, scoreRequest(late, "2025-06-30"), "scorer")
		require.NoError(t, err)
		assert.Equal(t, "0.00", snap.FilingCompleteness)
		assert.Equal(t, "50.00", snap.PaymentTimeliness, "nothing declared means nothing to pay")
		assert.Equal(t, "50.00", snap.DocumentCompleteness)
		assert.Equal(t, "0.00", snap.GeneralTimeliness, "91 days late is beyond the 90 day horizon")
		assert.Equal(t, "25.00", snap.Overall)
	})

	t.Run("scoring before the due date ignores the obligation", func(t *testing.T) {
		snap, err := env.complianceSv.Score(ctx, scoreRequest(late, "2025-03-01"), "scorer")
		require.NoError(t, err)
		assert.Equal(t, "50.00", snap.FilingCompleteness)
		assert.Equal(t, "50.00", snap.GeneralTimeliness)
	})

	t.Run("rescoring unchanged records reuses the snapshot", func(t *testing.T) {
		first, err := env.complianceSv.Score(ctx, scoreRequest(good, "2025-06-30"), "scorer")
		require.NoError(t, err)
		assert.False(t, first.Created)

		history, total, err := env.complianceSv.History(ctx, good.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, first.ID, history[0].ID)
	})

	t.Run("unknown taxpayer", func(t *testing.T) {
		_, err := env.complianceSv.Score(ctx, ScoreRequest{
			TaxpayerID:  uuid.NewString(),
			PeriodStart: "2024-01-01",
			PeriodEnd:   "2024-12-31",
			AsOf:        "2025-06-30",
		}, "scorer")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	// one per distinct snapshot: good, empty, late at two dates
	assert.Equal(t, int64(4), env.auditCount(t, model.ActionComplianceSnapshot))
}

func TestComplianceService_RecomputeAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	good, empty, late := complianceFixture(t, env)

	req := RecomputeRequest{
		TaxpayerIDs: []string{good.ID, uuid.NewString(), empty.ID},
		Label:       "FY2024",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-12-31",
		AsOf:        "2025-07-01",
	}

	res, err := env.complianceSv.RecomputeAll(ctx, req, "batch")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed, "one missing taxpayer does not stop the batch")
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Results, 3)

	byID := map[string]RecomputeItemResponse{}
	for _, item := range res.Results {
		byID[item.TaxpayerID] = item
	}
	require.NotNil(t, byID[good.ID].Snapshot)
	assert.Equal(t, "100.00", byID[good.ID].Snapshot.Overall)
	require.NotNil(t, byID[empty.ID].Snapshot)
	assert.Equal(t, "50.00", byID[empty.ID].Snapshot.Overall)
	assert.NotEmpty(t, byID[req.TaxpayerIDs[1]].Error)
	assert.Nil(t, byID[req.TaxpayerIDs[1]].Snapshot)

	t.Run("a rerun writes nothing new", func(t *testing.T) {
		var calls atomic.Int32
		rerun := req
		rerun.Progress = func(total int) {
			assert.Equal(t, 3, total)
			calls.Add(1)
		}
		again, err := env.complianceSv.RecomputeAll(ctx, rerun, "batch")
		require.NoError(t, err)
		assert.Equal(t, 2, again.Succeeded)
		assert.Equal(t, 0, again.Created)
		assert.Equal(t, int32(3), calls.Load(), "progress fires for failures too")

		_, total, err := env.complianceSv.History(ctx, good.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("no ids means every active taxpayer", func(t *testing.T) {
		all := req
		all.TaxpayerIDs = nil
		res, err := env.complianceSv.RecomputeAll(ctx, all, "batch")
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, 0, res.Failed)
		assert.Equal(t, 1, res.Created, "only the late taxpayer is new")

		for _, item := range res.Results {
			if item.TaxpayerID == late.ID {
				require.NotNil(t, item.Snapshot)
				assert.Equal(t, "25.00", item.Snapshot.Overall)
			}
		}
	})

	t.Run("a malformed id rejects the whole request", func(t *testing.T) {
		bad := req
		bad.TaxpayerIDs = []string{"not-a-uuid"}
		_, err := env.complianceSv.RecomputeAll(ctx, bad, "batch")
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	assert.Equal(t, int64(3), env.auditCount(t, model.ActionComplianceSnapshot))
}
